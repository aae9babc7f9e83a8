// Package domain contains core concepts of the delivery engine.
// This file defines the Message record and its lifecycle states.
// Messages are values: every change produces a new copy.
package domain

import (
	"sort"
	"strings"
)

const (
	// ProtocolVersion is the only wire version accepted by the engine.
	ProtocolVersion = 1

	MaxClientMsgIDLength    = 128
	MaxConversationIDLength = 256
	MaxPayloadBytes         = 64 * 1024
)

type State string

const (
	StateCreated   State = "CREATED"
	StateAccepted  State = "ACCEPTED"
	StatePersisted State = "PERSISTED"
	// StateFailed is set by the backpressure controller when a send fails.
	// It sits outside the lifecycle FSM.
	StateFailed State = "FAILED"
)

func (s State) String() string { return string(s) }

// Message is a chat message as tracked by the engine.
// Timestamps are unix milliseconds.
type Message struct {
	MessageID       string `json:"messageId"`
	ClientMsgID     string `json:"clientMsgId"`
	ConversationID  string `json:"conversationId"`
	SenderID        string `json:"senderId"`
	ReceiverID      string `json:"receiverId"`
	Payload         any    `json:"payload"`
	ProtocolVersion int    `json:"protocolVersion"`
	State           State  `json:"state"`
	SequenceNumber  *int64 `json:"sequenceNumber,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
	UpdatedAt       int64  `json:"updatedAt"`
}

// CreateMessageInput is the unchecked request used to build a Message.
// Pointer fields are optional.
type CreateMessageInput struct {
	MessageID       *string `json:"messageId,omitempty"`
	ClientMsgID     string  `json:"clientMsgId"`
	ConversationID  string  `json:"conversationId"`
	SenderID        *string `json:"senderId,omitempty"`
	ReceiverID      *string `json:"receiverId,omitempty"`
	Payload         any     `json:"payload"`
	ProtocolVersion int     `json:"protocolVersion"`
	SequenceNumber  *int64  `json:"sequenceNumber,omitempty"`
	CreatedAt       *int64  `json:"createdAt,omitempty"`
	UpdatedAt       *int64  `json:"updatedAt,omitempty"`
}

// Batch is an ordered slice of one conversation.
type Batch struct {
	ConversationID string
	Messages       []Message
	Count          int
}

// DirectConversationID returns the conversation shared by two users,
// whatever the direction of the message.
func DirectConversationID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return "dm:" + strings.Join(pair, ":")
}
