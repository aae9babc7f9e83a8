package services

import (
	"chat-courier/contract"
	"chat-courier/domain"
	"chat-courier/errors"
	"chat-courier/internal/keyedlock"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MessageService turns client input into sequenced, deduplicated messages
// and moves them along their lifecycle. It never touches a socket.
type MessageService struct {
	dedup    contract.IDedupStore
	sequence contract.ISequenceStore
	codec    domain.Codec
	now      func() time.Time
	newID    func() string
	locks    *keyedlock.KeyedLock
}

type MessageServiceOption func(*MessageService)

func WithCodec(codec domain.Codec) MessageServiceOption {
	return func(s *MessageService) { s.codec = codec }
}

func WithClock(now func() time.Time) MessageServiceOption {
	return func(s *MessageService) { s.now = now }
}

func WithIDGenerator(newID func() string) MessageServiceOption {
	return func(s *MessageService) { s.newID = newID }
}

// NewMessageService fails with a fatal configuration error when a store is missing.
func NewMessageService(dedup contract.IDedupStore, sequence contract.ISequenceStore, opts ...MessageServiceOption) (*MessageService, error) {
	if sequence == nil {
		return nil, &errors.DomainError{Kind: errors.KindConfig, Class: errors.ClassFatal,
			Reason: "sequence store is required", Err: errors.ErrMissingSequenceStore}
	}
	if dedup == nil {
		return nil, &errors.DomainError{Kind: errors.KindConfig, Class: errors.ClassFatal,
			Reason: "dedup store is required", Err: errors.ErrMissingDedupStore}
	}
	s := &MessageService{
		dedup:    dedup,
		sequence: sequence,
		codec:    domain.JSONCodec{},
		now:      time.Now,
		newID:    newMessageID,
		locks:    keyedlock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// CreateMessage validates the input and builds a CREATED message with the next
// sequence number of its conversation.
// A (conversation, client message id) pair seen before yields a duplicate
// error carrying the message id assigned the first time.
func (s *MessageService) CreateMessage(ctx context.Context, in domain.CreateMessageInput) (domain.Message, error) {
	if result := domain.ValidateSchema(in); !result.Valid() {
		return domain.Message{}, result.Err()
	}

	nowMs := s.now().UnixMilli()
	message := domain.Message{
		MessageID:       lo.FromPtrOr(in.MessageID, ""),
		ClientMsgID:     in.ClientMsgID,
		ConversationID:  in.ConversationID,
		SenderID:        lo.FromPtr(in.SenderID),
		ReceiverID:      lo.FromPtr(in.ReceiverID),
		Payload:         in.Payload,
		ProtocolVersion: in.ProtocolVersion,
		State:           domain.InitialState(),
		CreatedAt:       lo.FromPtrOr(in.CreatedAt, nowMs),
	}
	message.UpdatedAt = lo.FromPtrOr(in.UpdatedAt, message.CreatedAt)
	if message.MessageID == "" {
		message.MessageID = s.newID()
	}
	// Shape is checked before any store is touched so a rejected input
	// neither burns a sequence number nor a dedup key.
	if err := domain.ValidateShape(message); err != nil {
		return domain.Message{}, err
	}

	unlock := s.locks.Lock(in.ConversationID)
	defer unlock()

	existingID, found, err := s.dedup.LookupMessage(ctx, in.ConversationID, in.ClientMsgID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("dedup lookup: %w", err)
	}
	if found {
		return domain.Message{}, errors.NewDuplicate(existingID)
	}

	seq, err := s.sequence.GetNextSequence(ctx, in.ConversationID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("next sequence: %w", err)
	}
	message.SequenceNumber = lo.ToPtr(seq)

	if err = s.dedup.StoreMessage(ctx, in.ConversationID, in.ClientMsgID, message.MessageID); err != nil {
		return domain.Message{}, fmt.Errorf("dedup store: %w", err)
	}
	return message, nil
}

// ForgetMessage releases the dedup key of a message that could not be persisted,
// so the client can send it again.
func (s *MessageService) ForgetMessage(ctx context.Context, message domain.Message) error {
	return s.dedup.ForgetMessage(ctx, message.ConversationID, message.ClientMsgID)
}

// TransitionMessage returns a copy of message in state next.
func (s *MessageService) TransitionMessage(message domain.Message, next domain.State) (domain.Message, error) {
	if err := domain.ValidateShape(message); err != nil {
		return domain.Message{}, err
	}
	if err := domain.AssertTransition(message.State, next); err != nil {
		return domain.Message{}, err
	}
	moved := message
	moved.State = next
	moved.UpdatedAt = max(s.now().UnixMilli(), message.UpdatedAt, message.CreatedAt)
	return moved, nil
}

// BatchMessages groups messages per conversation, ordered by sequence number.
// Messages without a sequence number come first. Batches are ordered by conversation id.
func (s *MessageService) BatchMessages(messages []domain.Message) []domain.Batch {
	groups := lo.GroupBy(messages, func(m domain.Message) string { return m.ConversationID })
	conversations := lo.Keys(groups)
	sort.Strings(conversations)

	return lo.Map(conversations, func(conversationID string, _ int) domain.Batch {
		group := append([]domain.Message(nil), groups[conversationID]...)
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i].SequenceNumber, group[j].SequenceNumber
			switch {
			case a == nil:
				return b != nil
			case b == nil:
				return false
			default:
				return *a < *b
			}
		})
		return domain.Batch{ConversationID: conversationID, Messages: group, Count: len(group)}
	})
}

func (s *MessageService) Serialize(message domain.Message) ([]byte, error) {
	return s.codec.Marshal(message)
}

func (s *MessageService) Deserialize(data []byte) (domain.Message, error) {
	message, err := s.codec.Unmarshal(data)
	if err != nil {
		return domain.Message{}, fmt.Errorf("%s decode: %w", s.codec.Name(), err)
	}
	return message, nil
}
