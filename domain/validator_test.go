package domain

import (
	"chat-courier/errors"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func validInput() CreateMessageInput {
	return CreateMessageInput{
		ClientMsgID:     "c-1",
		ConversationID:  "dm:alice:bob",
		SenderID:        lo.ToPtr("alice"),
		ReceiverID:      lo.ToPtr("bob"),
		Payload:         "hello bob",
		ProtocolVersion: ProtocolVersion,
	}
}

func validMessage() Message {
	return Message{
		MessageID:       "m-1",
		ClientMsgID:     "c-1",
		ConversationID:  "dm:alice:bob",
		SenderID:        "alice",
		ReceiverID:      "bob",
		Payload:         "hello bob",
		ProtocolVersion: ProtocolVersion,
		State:           StateCreated,
		SequenceNumber:  lo.ToPtr(int64(1)),
		CreatedAt:       1000,
		UpdatedAt:       1000,
	}
}

func fields(result ValidationResult) []string {
	return lo.Map(result.Violations, func(v errors.Violation, _ int) string { return v.Field })
}

func TestValidateSchema_Valid_Input(t *testing.T) {
	req := require.New(t)

	result := ValidateSchema(validInput())

	req.True(result.Valid())
	req.NoError(result.Err())
}

func TestValidateSchema_Reports_All_Missing_Fields(t *testing.T) {
	req := require.New(t)

	// Given an input without clientMsgId, conversationId and protocolVersion
	in := validInput()
	in.ClientMsgID = ""
	in.ConversationID = ""
	in.ProtocolVersion = 0

	// When validating the schema
	result := ValidateSchema(in)

	// Then the three violations are reported together
	req.False(result.Valid())
	req.ElementsMatch([]string{"clientMsgId", "conversationId", "protocolVersion"}, fields(result))

	de, ok := errors.AsDomainError(result.Err())
	req.True(ok)
	req.Equal(errors.KindInvalidMessage, de.Kind)
	req.Len(de.Violations, 3)
}

func TestValidateSchema_Length_Limits(t *testing.T) {
	req := require.New(t)

	in := validInput()
	in.ClientMsgID = strings.Repeat("x", MaxClientMsgIDLength+1)
	in.ConversationID = strings.Repeat("y", MaxConversationIDLength+1)

	result := ValidateSchema(in)

	req.ElementsMatch([]string{"clientMsgId", "conversationId"}, fields(result))
	for _, v := range result.Violations {
		req.Equal("too_long", v.Reason)
	}

	in = validInput()
	in.ClientMsgID = strings.Repeat("x", MaxClientMsgIDLength)
	req.True(ValidateSchema(in).Valid())
}

func TestValidateSchema_Optional_Fields(t *testing.T) {
	req := require.New(t)

	in := validInput()
	in.MessageID = lo.ToPtr("")
	in.SenderID = lo.ToPtr("bob")
	in.SequenceNumber = lo.ToPtr(int64(-1))
	in.CreatedAt = lo.ToPtr(int64(2000))
	in.UpdatedAt = lo.ToPtr(int64(1000))

	result := ValidateSchema(in)

	req.ElementsMatch([]string{"messageId", "sequenceNumber", "receiverId", "updatedAt"}, fields(result))
	reasons := lo.SliceToMap(result.Violations, func(v errors.Violation) (string, string) { return v.Field, v.Reason })
	req.Equal("empty", reasons["messageId"])
	req.Equal("negative", reasons["sequenceNumber"])
	req.Equal("sender_equals_receiver", reasons["receiverId"])
	req.Equal("updated_before_created", reasons["updatedAt"])
}

func TestValidateSchema_Rejects_Unsafe_Integer(t *testing.T) {
	req := require.New(t)

	in := validInput()
	in.CreatedAt = lo.ToPtr(int64(1 << 60))

	result := ValidateSchema(in)

	req.Len(result.Violations, 1)
	req.Equal("createdAt", result.Violations[0].Field)
	req.Equal("unsafe_integer", result.Violations[0].Reason)
}

func TestValidateSchema_Payload(t *testing.T) {
	req := require.New(t)

	in := validInput()
	in.Payload = nil
	req.Equal([]string{"payload"}, fields(ValidateSchema(in)))

	in.Payload = map[string]any{"text": "hi", "attachments": []string{"a.png"}}
	req.True(ValidateSchema(in).Valid())

	in.Payload = map[string]any{"broken": make(chan int)}
	result := ValidateSchema(in)
	req.Len(result.Violations, 1)
	req.Equal("payload_unserializable", result.Violations[0].Reason)
}

func TestIsPayloadValid(t *testing.T) {
	req := require.New(t)

	req.True(IsPayloadValid(strings.Repeat("a", MaxPayloadBytes)))
	req.False(IsPayloadValid(strings.Repeat("a", MaxPayloadBytes+1)))
	req.True(IsPayloadValid(map[string]string{"text": "short"}))
	// Serialized form adds quotes and keys, so the string fits but the map does not
	req.False(IsPayloadValid(map[string]string{"text": strings.Repeat("a", MaxPayloadBytes)}))
	req.False(IsPayloadValid(func() {}))
	req.False(IsPayloadValid(nil))
}

func TestValidateShape(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(m *Message)
		field  string
		reason string
	}{
		{"missing sender", func(m *Message) { m.SenderID = "" }, "senderId", "sender_required"},
		{"missing receiver", func(m *Message) { m.ReceiverID = "" }, "receiverId", "receiver_required"},
		{"sender is receiver", func(m *Message) { m.ReceiverID = m.SenderID }, "receiverId", "sender_equals_receiver"},
		{"unknown state", func(m *Message) { m.State = "LOST" }, "state", "invalid_state"},
		{"failed is not a lifecycle state", func(m *Message) { m.State = StateFailed }, "state", "invalid_state"},
		{"oversized payload", func(m *Message) { m.Payload = strings.Repeat("a", MaxPayloadBytes+1) }, "payload", "payload_too_large"},
		{"negative sequence", func(m *Message) { m.SequenceNumber = lo.ToPtr(int64(-4)) }, "sequenceNumber", "negative"},
		{"time goes backwards", func(m *Message) { m.UpdatedAt = m.CreatedAt - 1 }, "updatedAt", "updated_before_created"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			m := validMessage()
			tc.mutate(&m)

			err := ValidateShape(m)

			req.ErrorIs(err, errors.ErrInvalidMessage)
			de, ok := errors.AsDomainError(err)
			req.True(ok)
			req.Equal(tc.field, de.Field)
			req.Equal(tc.reason, de.Reason)
		})
	}

	require.NoError(t, ValidateShape(validMessage()))
}
