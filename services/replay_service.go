package services

import (
	"chat-courier/contract"
	"chat-courier/domain"
	"chat-courier/errors"
	"chat-courier/runtime"
	"context"
	"fmt"
	"log/slog"
)

type ReplayResult struct {
	Count int
	// Cursor is the last message the client can consider seen.
	// It is the input cursor when nothing moved.
	Cursor *string
}

// ReplayService redelivers what a user missed while offline.
// It never persists anything; it only claims delivery marks and writes.
type ReplayService struct {
	log          *slog.Logger
	store        contract.IMessageStore
	sender       Sender
	metrics      contract.IMetrics
	defaultLimit int
	maxLimit     int
}

func NewReplayService(
	log *slog.Logger,
	store contract.IMessageStore,
	sender Sender,
	metrics contract.IMetrics,
	defaultLimit, maxLimit int,
) (*ReplayService, error) {
	if store == nil {
		return nil, errors.ErrMissingMessageStore
	}
	return &ReplayService{
		log:          log,
		store:        store,
		sender:       sender,
		metrics:      metrics,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}, nil
}

func (s *ReplayService) boundedLimit(limit int) int {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

// Replay sends every message of the user's inbox strictly after cursor that
// was not yet delivered to them, flagged as a replay.
// Each message is claimed with MarkDelivered before being written, so two
// concurrent replays never send the same message twice. A failed write gives
// the claim back and stops the replay; the next one picks up from there.
func (s *ReplayService) Replay(ctx context.Context, session contract.Session, cursor *string, limit int) (ReplayResult, error) {
	result := ReplayResult{Cursor: cursor}
	messages, err := s.store.ListInbox(ctx, session.UserID, cursor, s.boundedLimit(limit))
	if err != nil {
		return result, fmt.Errorf("list inbox: %w", err)
	}

	for _, message := range messages {
		delivered, err := s.store.IsMessageDelivered(ctx, message.MessageID, session.UserID)
		if err != nil {
			return result, err
		}
		if delivered {
			result.Cursor = &message.MessageID
			continue
		}

		claimed, err := s.store.MarkDelivered(ctx, message.MessageID, session.UserID)
		if err != nil {
			return result, err
		}
		if !claimed {
			// Another session got there first
			result.Cursor = &message.MessageID
			continue
		}

		bytes, err := domain.EncodeFrame(domain.FrameMessageReceive, domain.ReceiveFrame(message, true))
		if err != nil {
			return result, s.unclaim(ctx, message.MessageID, session.UserID, err)
		}
		sent := s.sender.SendOrFail(ctx, session.Transport, bytes, runtime.SendMeta{
			MessageID:    message.MessageID,
			UserID:       session.UserID,
			ConnectionID: session.ConnectionID,
		})
		if !sent.OK {
			s.log.Warn("Replay interrupted", "user_id", session.UserID,
				"message_id", message.MessageID, "reason", sent.Reason, "error", sent.Err)
			return result, s.unclaim(ctx, message.MessageID, session.UserID, nil)
		}

		s.metrics.IncReplay()
		result.Count++
		result.Cursor = &message.MessageID
	}

	s.log.Debug("Replay done", "user_id", session.UserID, "count", result.Count)
	return result, nil
}

func (s *ReplayService) unclaim(ctx context.Context, messageID, userID string, cause error) error {
	if err := s.store.UnmarkDelivered(ctx, messageID, userID); err != nil {
		s.log.Error("Unable to release delivery mark", "message_id", messageID, "user_id", userID, "error", err)
	}
	return cause
}
