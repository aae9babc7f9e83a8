package domain

import (
	"chat-courier/errors"
	"encoding/json"
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// inputSchema carries the rules that go-playground/validator can check on its own.
// Payload and cross-field rules are checked by hand in ValidateSchema.
// The lte bound is 2^53-1 so integers stay exact for JSON clients.
type inputSchema struct {
	ClientMsgID     string  `json:"clientMsgId" validate:"required,max=128"`
	ConversationID  string  `json:"conversationId" validate:"required,max=256"`
	ProtocolVersion int     `json:"protocolVersion" validate:"eq=1"`
	MessageID       *string `json:"messageId" validate:"omitnil,min=1"`
	SenderID        *string `json:"senderId" validate:"omitnil,min=1"`
	ReceiverID      *string `json:"receiverId" validate:"omitnil,min=1"`
	SequenceNumber  *int64  `json:"sequenceNumber" validate:"omitnil,gte=0,lte=9007199254740991"`
	CreatedAt       *int64  `json:"createdAt" validate:"omitnil,gte=0,lte=9007199254740991"`
	UpdatedAt       *int64  `json:"updatedAt" validate:"omitnil,gte=0,lte=9007199254740991"`
}

// ValidationResult is the complete report of a schema validation.
type ValidationResult struct {
	Violations []errors.Violation
}

func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns nil for a valid result, an invalid_message DomainError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return errors.NewSchemaError(r.Violations)
}

// ValidateSchema checks an input before a Message is built from it.
// It never stops at the first problem: every violation is reported.
func ValidateSchema(in CreateMessageInput) ValidationResult {
	var result ValidationResult

	schema := inputSchema{
		ClientMsgID:     in.ClientMsgID,
		ConversationID:  in.ConversationID,
		ProtocolVersion: in.ProtocolVersion,
		MessageID:       in.MessageID,
		SenderID:        in.SenderID,
		ReceiverID:      in.ReceiverID,
		SequenceNumber:  in.SequenceNumber,
		CreatedAt:       in.CreatedAt,
		UpdatedAt:       in.UpdatedAt,
	}
	if err := validate.Struct(schema); err != nil {
		var fieldErrors validator.ValidationErrors
		if !stderrors.As(err, &fieldErrors) {
			result.Violations = append(result.Violations, errors.Violation{Field: "input", Reason: err.Error()})
		}
		for _, fe := range fieldErrors {
			result.Violations = append(result.Violations, errors.Violation{
				Field:  fe.Field(),
				Reason: schemaReason(fe),
				Value:  fe.Value(),
			})
		}
	}

	if reason := payloadViolation(in.Payload); reason != "" {
		result.Violations = append(result.Violations, errors.Violation{Field: "payload", Reason: reason})
	}
	if in.SenderID != nil && in.ReceiverID != nil && *in.SenderID != "" && *in.SenderID == *in.ReceiverID {
		result.Violations = append(result.Violations, errors.Violation{
			Field: "receiverId", Reason: "sender_equals_receiver", Value: *in.ReceiverID})
	}
	if in.CreatedAt != nil && in.UpdatedAt != nil && *in.UpdatedAt < *in.CreatedAt {
		result.Violations = append(result.Violations, errors.Violation{
			Field: "updatedAt", Reason: "updated_before_created", Value: *in.UpdatedAt})
	}
	return result
}

func schemaReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "too_long"
	case "min":
		return "empty"
	case "eq":
		return "unsupported_version"
	case "gte":
		return "negative"
	case "lte":
		return "unsafe_integer"
	default:
		return fe.Tag()
	}
}

// ValidateShape checks the structure of a constructed Message and fails on
// the first violation.
func ValidateShape(m Message) error {
	switch {
	case m.SenderID == "":
		return errors.NewInvalidMessage("senderId", "sender_required", m.SenderID)
	case m.ReceiverID == "":
		return errors.NewInvalidMessage("receiverId", "receiver_required", m.ReceiverID)
	case m.SenderID == m.ReceiverID:
		return errors.NewInvalidMessage("receiverId", "sender_equals_receiver", m.ReceiverID)
	case !IsValidState(m.State):
		return errors.NewInvalidMessage("state", "invalid_state", string(m.State))
	}
	if reason := payloadViolation(m.Payload); reason != "" {
		return errors.NewInvalidMessage("payload", reason, nil)
	}
	if m.SequenceNumber != nil && *m.SequenceNumber < 0 {
		return errors.NewInvalidMessage("sequenceNumber", "negative", *m.SequenceNumber)
	}
	if m.CreatedAt < 0 {
		return errors.NewInvalidMessage("createdAt", "negative", m.CreatedAt)
	}
	if m.UpdatedAt < 0 {
		return errors.NewInvalidMessage("updatedAt", "negative", m.UpdatedAt)
	}
	if m.CreatedAt != 0 && m.UpdatedAt != 0 && m.UpdatedAt < m.CreatedAt {
		return errors.NewInvalidMessage("updatedAt", "updated_before_created", m.UpdatedAt)
	}
	return nil
}

// IsPayloadValid reports whether a payload is present, serializable and
// within MaxPayloadBytes.
func IsPayloadValid(payload any) bool {
	return payloadViolation(payload) == ""
}

func payloadViolation(payload any) string {
	switch p := payload.(type) {
	case nil:
		return "payload_required"
	case string:
		if len(p) > MaxPayloadBytes {
			return "payload_too_large"
		}
		return ""
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "payload_unserializable"
	}
	if len(raw) > MaxPayloadBytes {
		return "payload_too_large"
	}
	return ""
}
