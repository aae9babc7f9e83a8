package router

import (
	"chat-courier/contract"
	"chat-courier/domain"
	"chat-courier/errors"
	"chat-courier/services"
	"context"
	"encoding/json"
	"fmt"
)

func decode[T any](payload json.RawMessage) (T, error) {
	var v T
	if len(payload) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	return v, nil
}

// RegisterChatHandlers binds the client frame types to the delivery and replay services.
func RegisterChatHandlers(r *Router, delivery *services.DeliveryService, replay *services.ReplayService) {
	r.Handle(domain.FrameMessageSend, func(ctx context.Context, session contract.Session, payload json.RawMessage) error {
		cmd, err := decode[domain.MessageSend](payload)
		if err != nil {
			return err
		}
		_, err = delivery.Send(ctx, session, cmd)
		return err
	})

	r.Handle(domain.FrameMessageAck, func(ctx context.Context, session contract.Session, payload json.RawMessage) error {
		ack, err := decode[domain.MessageAck](payload)
		if err != nil {
			return err
		}
		return delivery.Acknowledge(ctx, session, ack)
	})

	r.Handle(domain.FrameTyping, func(ctx context.Context, session contract.Session, payload json.RawMessage) error {
		cmd, err := decode[domain.Typing](payload)
		if err != nil {
			return err
		}
		return delivery.Typing(ctx, session, cmd)
	})

	runReplay := func(ctx context.Context, session contract.Session, cursor *string, limit *int) error {
		result, err := replay.Replay(ctx, session, cursor, derefLimit(limit))
		if err != nil {
			return err
		}
		r.Reply(ctx, session, domain.FrameReplayDone, domain.ReplayDone{Count: result.Count, Cursor: result.Cursor})
		return nil
	}

	r.Handle(domain.FrameResume, func(ctx context.Context, session contract.Session, payload json.RawMessage) error {
		resume, err := decode[domain.Resume](payload)
		if err != nil {
			return err
		}
		return runReplay(ctx, session, resume.LastSeenMessageID, resume.Limit)
	})

	r.Handle(domain.FrameMessageReplay, func(ctx context.Context, session contract.Session, payload json.RawMessage) error {
		request, err := decode[domain.MessageReplay](payload)
		if err != nil {
			return err
		}
		return runReplay(ctx, session, request.LastMessageID, request.Limit)
	})
}

func derefLimit(limit *int) int {
	if limit == nil {
		return 0
	}
	return *limit
}
