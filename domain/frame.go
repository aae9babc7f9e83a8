package domain

import (
	"chat-courier/errors"
	"encoding/json"
)

type FrameType string

const (
	FrameMessageSend    FrameType = "MESSAGE_SEND"
	FrameMessageAck     FrameType = "MESSAGE_ACK"
	FrameMessageReceive FrameType = "MESSAGE_RECEIVE"
	FrameTyping         FrameType = "TYPING"
	FrameResume         FrameType = "RESUME"
	FrameMessageReplay  FrameType = "MESSAGE_REPLAY"
	FrameReplayDone     FrameType = "REPLAY_DONE"
	FrameError          FrameType = "ERROR"
)

// AckDelivered is the state a recipient sends back once a message is shown.
const AckDelivered = "DELIVERED"

// Frame is the JSON envelope exchanged on a connection.
type Frame struct {
	Type    FrameType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MessageSend struct {
	RecipientID     string `json:"recipientId"`
	Content         any    `json:"content"`
	ClientMessageID string `json:"clientMessageId"`
}

type MessageAck struct {
	MessageID string `json:"messageId"`
	State     string `json:"state"`
}

type MessageReceive struct {
	MessageID   string `json:"messageId"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Content     any    `json:"content"`
	Timestamp   int64  `json:"timestamp"`
	IsReplay    bool   `json:"isReplay"`
}

type Typing struct {
	RecipientID string `json:"recipientId"`
	SenderID    string `json:"senderId,omitempty"`
	Active      bool   `json:"active"`
}

type Resume struct {
	LastSeenMessageID *string `json:"lastSeenMessageId,omitempty"`
	Limit             *int    `json:"limit,omitempty"`
}

type MessageReplay struct {
	LastMessageID *string `json:"lastMessageId,omitempty"`
	Limit         *int    `json:"limit,omitempty"`
}

type ReplayDone struct {
	Count  int     `json:"count"`
	Cursor *string `json:"cursor,omitempty"`
}

type ErrorFrame struct {
	Code       string             `json:"code"`
	Reason     string             `json:"reason,omitempty"`
	MessageID  string             `json:"messageId,omitempty"`
	Violations []errors.Violation `json:"violations,omitempty"`
}

// EncodeFrame wraps a payload into an envelope ready to be written.
func EncodeFrame(t FrameType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Type: t, Payload: raw})
}

// ReceiveFrame builds the recipient view of a message.
func ReceiveFrame(m Message, isReplay bool) MessageReceive {
	return MessageReceive{
		MessageID:   m.MessageID,
		SenderID:    m.SenderID,
		RecipientID: m.ReceiverID,
		Content:     m.Payload,
		Timestamp:   m.CreatedAt,
		IsReplay:    isReplay,
	}
}

// NewErrorFrame maps an engine error to its wire form.
func NewErrorFrame(err error) ErrorFrame {
	frame := ErrorFrame{Code: errors.ToFrameCode(err), Reason: err.Error()}
	if de, ok := errors.AsDomainError(err); ok {
		frame.Reason = de.Reason
		frame.MessageID = de.MessageID
		frame.Violations = de.Violations
		if de.Field != "" && len(de.Violations) == 0 {
			frame.Violations = []errors.Violation{{Field: de.Field, Reason: de.Reason, Value: de.Value}}
		}
	}
	return frame
}
