package services

import (
	"chat-courier/contract"
	"chat-courier/domain"
	"chat-courier/errors"
	"chat-courier/internal/keyedlock"
	"chat-courier/runtime"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
)

// Sender is the backpressure-gated write path. Nothing else writes to a socket.
type Sender interface {
	SendOrFail(ctx context.Context, t contract.Transport, payload []byte, meta runtime.SendMeta) runtime.SendResult
}

// DeliveryService drives a message from the sender's frame to the recipient's sockets.
// Messages are persisted before any delivery attempt, and a failed delivery
// never undoes persistence.
type DeliveryService struct {
	log      *slog.Logger
	messages *MessageService
	store    contract.IMessageStore
	registry contract.IRegistry
	sender   Sender
	metrics  contract.IMetrics
	// one holder per dedup key between CreateMessage and PersistMessage
	inflight *keyedlock.KeyedLock
}

func NewDeliveryService(
	log *slog.Logger,
	messages *MessageService,
	store contract.IMessageStore,
	registry contract.IRegistry,
	sender Sender,
	metrics contract.IMetrics,
) (*DeliveryService, error) {
	if store == nil {
		return nil, errors.ErrMissingMessageStore
	}
	return &DeliveryService{
		log:      log,
		messages: messages,
		store:    store,
		registry: registry,
		sender:   sender,
		metrics:  metrics,
		inflight: keyedlock.New(),
	}, nil
}

// Send accepts a MESSAGE_SEND from session and returns the acknowledgement
// written back to it. A resubmitted message is acknowledged with its original
// id and current state, and is not delivered again.
func (s *DeliveryService) Send(ctx context.Context, session contract.Session, cmd domain.MessageSend) (domain.MessageAck, error) {
	senderID, receiverID := session.UserID, cmd.RecipientID
	input := domain.CreateMessageInput{
		ClientMsgID:     cmd.ClientMessageID,
		ConversationID:  domain.DirectConversationID(senderID, receiverID),
		SenderID:        &senderID,
		ReceiverID:      &receiverID,
		Payload:         cmd.Content,
		ProtocolVersion: domain.ProtocolVersion,
	}

	persisted, duplicate, err := s.accept(ctx, session, input)
	if err != nil {
		return domain.MessageAck{}, err
	}
	ack := domain.MessageAck{MessageID: persisted.MessageID, State: string(persisted.State)}
	s.reply(ctx, session, domain.FrameMessageAck, ack)
	if !duplicate {
		s.deliver(ctx, persisted)
	}
	return ack, nil
}

// accept runs create then persist while holding the dedup key, so a retry of
// the same message waits for the first attempt instead of racing it.
// It reports whether the message had already been persisted.
func (s *DeliveryService) accept(ctx context.Context, session contract.Session, input domain.CreateMessageInput) (domain.Message, bool, error) {
	unlock := s.inflight.Lock(input.ConversationID + "\x00" + input.ClientMsgID)
	defer unlock()

	created, err := s.messages.CreateMessage(ctx, input)
	if errors.IsDuplicate(err) {
		de, _ := errors.AsDomainError(err)
		stored, loadErr := s.store.GetMessage(ctx, de.MessageID)
		switch {
		case loadErr == nil:
			s.log.Debug("Duplicate message acknowledged", "message_id", stored.MessageID, "user_id", session.UserID)
			return stored, true, nil
		case !stderrors.Is(loadErr, errors.ErrMessageNotFound):
			return domain.Message{}, false, fmt.Errorf("load duplicate %s: %w", de.MessageID, loadErr)
		}
		created, err = s.recreate(ctx, input, de.MessageID)
	}
	if err != nil {
		return domain.Message{}, false, err
	}

	accepted, err := s.messages.TransitionMessage(created, domain.StateAccepted)
	if err != nil {
		return domain.Message{}, false, s.release(ctx, created, err)
	}
	persisted, err := s.messages.TransitionMessage(accepted, domain.StatePersisted)
	if err != nil {
		return domain.Message{}, false, s.release(ctx, created, err)
	}
	if err = s.store.PersistMessage(ctx, persisted); err != nil {
		return domain.Message{}, false, s.release(ctx, created, fmt.Errorf("persist message: %w", err))
	}
	s.metrics.IncPersisted()
	s.log.Debug("Message persisted",
		"message_id", persisted.MessageID, "conversation_id", persisted.ConversationID,
		"sequence", *persisted.SequenceNumber)
	return persisted, false, nil
}

// recreate handles a dedup key left bound to a message that was never stored,
// as after a crash between the two writes. The message is built again under
// the id the key already points to.
func (s *DeliveryService) recreate(ctx context.Context, input domain.CreateMessageInput, messageID string) (domain.Message, error) {
	s.log.Warn("Dedup key bound to a missing message, accepting it again",
		"message_id", messageID, "conversation_id", input.ConversationID)
	orphan := domain.Message{ConversationID: input.ConversationID, ClientMsgID: input.ClientMsgID}
	if err := s.messages.ForgetMessage(ctx, orphan); err != nil {
		return domain.Message{}, fmt.Errorf("release dedup key: %w", err)
	}
	input.MessageID = &messageID
	return s.messages.CreateMessage(ctx, input)
}

func (s *DeliveryService) release(ctx context.Context, message domain.Message, cause error) error {
	if err := s.messages.ForgetMessage(ctx, message); err != nil {
		s.log.Error("Unable to release dedup key", "message_id", message.MessageID, "error", err)
	}
	return cause
}

// reply writes a frame to the sender's own connection.
// The message id stays out of the meta so a lost ACK leaves the stored state alone.
func (s *DeliveryService) reply(ctx context.Context, session contract.Session, t domain.FrameType, payload any) {
	bytes, err := domain.EncodeFrame(t, payload)
	if err != nil {
		s.log.Error("Unable to encode frame", "type", string(t), "error", err)
		return
	}
	result := s.sender.SendOrFail(ctx, session.Transport, bytes,
		runtime.SendMeta{UserID: session.UserID, ConnectionID: session.ConnectionID})
	if !result.OK && t == domain.FrameMessageAck {
		s.metrics.IncAckDrop()
		s.log.Warn("Acknowledgement dropped", "user_id", session.UserID, "reason", result.Reason, "error", result.Err)
	}
}

// deliver fans the message out to every live connection of the recipient.
// An offline recipient gets it on replay.
func (s *DeliveryService) deliver(ctx context.Context, message domain.Message) {
	connections := s.registry.ConnectionsFor(message.ReceiverID)
	if len(connections) == 0 {
		s.log.Debug("Recipient offline, waiting for replay", "message_id", message.MessageID, "user_id", message.ReceiverID)
		return
	}
	bytes, err := domain.EncodeFrame(domain.FrameMessageReceive, domain.ReceiveFrame(message, false))
	if err != nil {
		s.log.Error("Unable to encode frame", "message_id", message.MessageID, "error", err)
		return
	}
	for _, connection := range connections {
		result := s.sender.SendOrFail(ctx, connection.Transport, bytes, runtime.SendMeta{
			MessageID:    message.MessageID,
			UserID:       connection.UserID,
			ConnectionID: connection.ConnectionID,
		})
		if !result.OK {
			s.log.Debug("Live delivery refused, waiting for replay",
				"message_id", message.MessageID, "connection_id", connection.ConnectionID, "error", result.Err)
			continue
		}
		s.metrics.IncDelivered()
	}
}

// Acknowledge records a DELIVERED acknowledgement from the recipient.
// It is what keeps replay from sending the message again.
func (s *DeliveryService) Acknowledge(ctx context.Context, session contract.Session, ack domain.MessageAck) error {
	if ack.State != domain.AckDelivered {
		return fmt.Errorf("%w: %q", errors.ErrUnsupportedAck, ack.State)
	}
	if ack.MessageID == "" {
		return errors.NewInvalidMessage("messageId", "required", ack.MessageID)
	}
	message, err := s.store.GetMessage(ctx, ack.MessageID)
	if err != nil {
		return err
	}
	if message.ReceiverID != session.UserID {
		return fmt.Errorf("%w: %s", errors.ErrNotRecipient, ack.MessageID)
	}
	created, err := s.store.MarkDelivered(ctx, ack.MessageID, session.UserID)
	if err != nil {
		return err
	}
	s.log.Debug("Delivery acknowledged", "message_id", ack.MessageID, "user_id", session.UserID, "first", created)
	return nil
}

// Typing relays a typing indicator to the recipient's live connections.
// Nothing is stored and nothing is retried.
func (s *DeliveryService) Typing(ctx context.Context, session contract.Session, cmd domain.Typing) error {
	if cmd.RecipientID == "" {
		return errors.NewInvalidMessage("recipientId", "required", cmd.RecipientID)
	}
	if cmd.RecipientID == session.UserID {
		return errors.NewInvalidMessage("recipientId", "sender_equals_receiver", cmd.RecipientID)
	}
	bytes, err := domain.EncodeFrame(domain.FrameTyping, domain.Typing{
		RecipientID: cmd.RecipientID,
		SenderID:    session.UserID,
		Active:      cmd.Active,
	})
	if err != nil {
		return err
	}
	for _, connection := range s.registry.ConnectionsFor(cmd.RecipientID) {
		s.sender.SendOrFail(ctx, connection.Transport, bytes,
			runtime.SendMeta{UserID: connection.UserID, ConnectionID: connection.ConnectionID})
	}
	return nil
}
