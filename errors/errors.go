// Package errors holds the sentinel errors of the delivery engine and the
// tagged DomainError used to carry structured failure details to the router.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMessage    = fmt.Errorf("invalid message")
	ErrInvalidState      = fmt.Errorf("invalid state")
	ErrInvalidTransition = fmt.Errorf("invalid state transition")
	ErrDuplicateMessage  = fmt.Errorf("message already accepted")
	ErrBackpressure      = fmt.Errorf("socket backpressure")
	ErrSendException     = fmt.Errorf("transport send failed")
	ErrRateLimited       = fmt.Errorf("rate limited")
	ErrConfiguration     = fmt.Errorf("invalid configuration")

	ErrMissingSequenceStore = fmt.Errorf("%w: sequence store is required", ErrConfiguration)
	ErrMissingDedupStore    = fmt.Errorf("%w: dedup store is required", ErrConfiguration)
	ErrMissingMessageStore  = fmt.Errorf("%w: message store is required", ErrConfiguration)

	ErrMessageNotFound  = fmt.Errorf("message not found")
	ErrNotRecipient     = fmt.Errorf("user is not the recipient of the message")
	ErrUnsupportedAck   = fmt.Errorf("unsupported acknowledgement state")
	ErrMalformedFrame   = fmt.Errorf("malformed frame")
	ErrUnknownFrameType = fmt.Errorf("unknown frame type")
	ErrConnectionClosed = fmt.Errorf("connection closed")
	ErrSendQueueFull    = fmt.Errorf("send queue full")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
)

// Kind tags a DomainError. It is what callers switch on, not the Go type.
type Kind string

const (
	KindInvalidMessage    Kind = "invalid_message"
	KindInvalidState      Kind = "invalid_state"
	KindInvalidTransition Kind = "invalid_transition"
	KindDuplicate         Kind = "duplicate"
	KindBackpressure      Kind = "backpressure"
	KindSendException     Kind = "send_exception"
	KindRateLimited       Kind = "rate_limited"
	KindConfig            Kind = "config"
)

// Class tells the caller what it may do about an error.
type Class int

const (
	// ClassInvalid is returned to the client, never retried as-is.
	ClassInvalid Class = iota
	// ClassTransient may succeed later without any change from the client.
	ClassTransient
	// ClassFatal stops the process at startup.
	ClassFatal
)

func (c Class) String() string {
	switch c {
	case ClassInvalid:
		return "invalid"
	case ClassTransient:
		return "transient"
	case ClassFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Violation is one failed rule of a schema validation.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Value  any    `json:"value,omitempty"`
}

// DomainError is the single error type of the engine.
// Field, Reason and Value describe the first offending input,
// From and To the attempted transition, Violations the full schema report.
type DomainError struct {
	Kind       Kind
	Class      Class
	Field      string
	Reason     string
	Value      any
	From       string
	To         string
	MessageID  string
	Allowed    []string
	Violations []Violation
	Err        error
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if e.From != "" || e.To != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.From, e.To)
	}
	if len(e.Violations) > 0 {
		fields := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			fields = append(fields, v.Field+":"+v.Reason)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(fields, ", "))
	}
	return b.String()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewInvalidMessage(field, reason string, value any) *DomainError {
	return &DomainError{Kind: KindInvalidMessage, Class: ClassInvalid,
		Field: field, Reason: reason, Value: value, Err: ErrInvalidMessage}
}

func NewSchemaError(violations []Violation) *DomainError {
	return &DomainError{Kind: KindInvalidMessage, Class: ClassInvalid,
		Reason: "schema validation failed", Violations: violations, Err: ErrInvalidMessage}
}

func NewInvalidState(state string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Class: ClassInvalid,
		Field: "state", Reason: "unknown state", Value: state, Err: ErrInvalidState}
}

func NewInvalidTransition(from, to string, allowed []string) *DomainError {
	return &DomainError{Kind: KindInvalidTransition, Class: ClassInvalid,
		Reason: "transition not allowed", From: from, To: to, Allowed: allowed, Err: ErrInvalidTransition}
}

func NewDuplicate(messageID string) *DomainError {
	return &DomainError{Kind: KindDuplicate, Class: ClassInvalid,
		Reason: "message already accepted", MessageID: messageID, Err: ErrDuplicateMessage}
}

func NewBackpressure(connectionID string) *DomainError {
	return &DomainError{Kind: KindBackpressure, Class: ClassTransient,
		Field: "connectionId", Reason: "socket cannot take more data", Value: connectionID, Err: ErrBackpressure}
}

// NewSendException wraps the error returned by a transport write.
func NewSendException(cause error) *DomainError {
	return &DomainError{Kind: KindSendException, Class: ClassTransient,
		Reason: cause.Error(), Err: fmt.Errorf("%w: %w", ErrSendException, cause)}
}

func NewRateLimited(reason string) *DomainError {
	return &DomainError{Kind: KindRateLimited, Class: ClassTransient,
		Reason: reason, Err: ErrRateLimited}
}

// KindOf returns the tag of the first DomainError in the chain.
func KindOf(err error) (Kind, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// AsDomainError is errors.As for the common case.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	ok := stderrors.As(err, &de)
	return de, ok
}

func IsDuplicate(err error) bool {
	return stderrors.Is(err, ErrDuplicateMessage)
}

func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if de, ok := AsDomainError(err); ok {
		return de.Class == ClassFatal
	}
	return stderrors.Is(err, ErrConfiguration)
}

func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if de, ok := AsDomainError(err); ok {
		return de.Class == ClassTransient
	}
	return stderrors.Is(err, ErrBackpressure) ||
		stderrors.Is(err, ErrSendException) ||
		stderrors.Is(err, ErrRateLimited)
}

// ToFrameCode maps an error to the code carried by an ERROR frame.
func ToFrameCode(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case stderrors.Is(err, ErrInvalidState):
		return "INVALID_STATE"
	case stderrors.Is(err, ErrInvalidMessage):
		return "INVALID_MESSAGE"
	case stderrors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case stderrors.Is(err, ErrMalformedFrame):
		return "MALFORMED_FRAME"
	case stderrors.Is(err, ErrUnknownFrameType):
		return "UNKNOWN_TYPE"
	case stderrors.Is(err, ErrMessageNotFound):
		return "NOT_FOUND"
	case stderrors.Is(err, ErrNotRecipient), stderrors.Is(err, ErrUnsupportedAck):
		return "INVALID_ACK"
	default:
		return "INTERNAL"
	}
}
