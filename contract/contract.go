//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-courier/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IDedupStore remembers which (conversation, client message id) pairs were accepted.
type IDedupStore interface {
	HasMessage(ctx context.Context, conversationID, clientMsgID string) (bool, error)
	StoreMessage(ctx context.Context, conversationID, clientMsgID, messageID string) error
	LookupMessage(ctx context.Context, conversationID, clientMsgID string) (string, bool, error)
	ForgetMessage(ctx context.Context, conversationID, clientMsgID string) error
}

// ISequenceStore hands out strictly increasing numbers per conversation.
type ISequenceStore interface {
	GetNextSequence(ctx context.Context, conversationID string) (int64, error)
}

// IStateMarker is the only thing the backpressure controller needs from storage.
type IStateMarker interface {
	MarkFailed(ctx context.Context, messageID string) error
}

type IMessageStore interface {
	IStateMarker
	PersistMessage(ctx context.Context, message domain.Message) error
	GetMessage(ctx context.Context, messageID string) (domain.Message, error)
	// MarkDelivered returns true only for the call that created the mark.
	MarkDelivered(ctx context.Context, messageID, userID string) (bool, error)
	UnmarkDelivered(ctx context.Context, messageID, userID string) error
	IsMessageDelivered(ctx context.Context, messageID, userID string) (bool, error)
	GetMessageCount(ctx context.Context) (int, error)
	// ListInbox returns messages received by userID strictly after the cursor,
	// oldest first. A nil cursor starts from the beginning.
	ListInbox(ctx context.Context, userID string, cursor *string, limit int) ([]domain.Message, error)
}

// IMetrics is write-only from the engine's point of view.
type IMetrics interface {
	IncPersisted()
	IncDelivered()
	IncReplay()
	IncAckDrop()
	IncRateLimitHit()
	IncDeliveryFailure()
}

type ReadyState int

const (
	ReadyStateConnecting ReadyState = iota
	ReadyStateOpen
	ReadyStateClosing
	ReadyStateClosed
)

func (s ReadyState) String() string {
	switch s {
	case ReadyStateConnecting:
		return "CONNECTING"
	case ReadyStateOpen:
		return "OPEN"
	case ReadyStateClosing:
		return "CLOSING"
	case ReadyStateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Transport is the minimal socket capability the engine writes through.
type Transport interface {
	BufferedAmount() int
	ReadyState() ReadyState
	Write(data []byte) error
}

// Session is one live connection of an authenticated user.
type Session struct {
	UserID       string
	ConnectionID string
	Transport    Transport
}

type IRegistry interface {
	Register(session Session)
	// Unregister returns how many connections the user still has.
	Unregister(userID, connectionID string) int
	ConnectionsFor(userID string) []Session
}
