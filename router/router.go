// Package router turns raw frames read from a connection into handler calls.
// Every well-formed frame goes through the rate limiter before anything else.
package router

import (
	"chat-courier/contract"
	"chat-courier/domain"
	"chat-courier/errors"
	"chat-courier/runtime"
	"chat-courier/services"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const ReasonMalformed = "malformed_frame"

type Handler func(ctx context.Context, session contract.Session, payload json.RawMessage) error

// Limiter is implemented by runtime.RateLimiter.
type Limiter interface {
	Allow(userID string, category runtime.Category) runtime.Decision
}

type Router struct {
	log      *slog.Logger
	limiter  Limiter
	metrics  contract.IMetrics
	sender   services.Sender
	handlers map[domain.FrameType]Handler
}

func NewRouter(log *slog.Logger, limiter Limiter, metrics contract.IMetrics, sender services.Sender) *Router {
	return &Router{
		log:      log,
		limiter:  limiter,
		metrics:  metrics,
		sender:   sender,
		handlers: make(map[domain.FrameType]Handler),
	}
}

func (r *Router) Handle(frameType domain.FrameType, handler Handler) {
	r.handlers[frameType] = handler
}

// Dispatch routes one raw frame and reports what happened to it.
// Malformed frames are dropped before any rate-limit accounting.
// Unknown frame types are still charged to the user.
func (r *Router) Dispatch(ctx context.Context, session contract.Session, raw []byte) runtime.Decision {
	var frame domain.Frame
	if err := json.Unmarshal(raw, &frame); err != nil || frame.Type == "" {
		r.log.Debug("Dropping malformed frame", "user_id", session.UserID, "connection_id", session.ConnectionID)
		return runtime.Decision{Verdict: runtime.VerdictDrop, Reason: ReasonMalformed}
	}

	if decision := r.admit(ctx, session, runtime.CategoryMessage); !decision.Allowed() {
		return decision
	}
	if frame.Type == domain.FrameTyping {
		if decision := r.admit(ctx, session, runtime.CategoryTyping); !decision.Allowed() {
			return decision
		}
	}

	handler, ok := r.handlers[frame.Type]
	if !ok {
		err := fmt.Errorf("%w: %s", errors.ErrUnknownFrameType, frame.Type)
		r.replyError(ctx, session, err)
		return runtime.Decision{Verdict: runtime.VerdictFail, Reason: errors.ToFrameCode(err)}
	}

	if err := handler(ctx, session, frame.Payload); err != nil {
		if errors.IsFatal(err) || errors.ToFrameCode(err) == "INTERNAL" {
			r.log.Error("Handler failed", "type", string(frame.Type), "user_id", session.UserID, "error", err)
		} else {
			r.log.Debug("Frame rejected", "type", string(frame.Type), "user_id", session.UserID, "error", err)
		}
		r.replyError(ctx, session, err)
		return runtime.Decision{Verdict: runtime.VerdictFail, Reason: errors.ToFrameCode(err)}
	}
	return runtime.Decision{Verdict: runtime.VerdictAllow}
}

func (r *Router) admit(ctx context.Context, session contract.Session, category runtime.Category) runtime.Decision {
	decision := r.limiter.Allow(session.UserID, category)
	if decision.Verdict == runtime.VerdictFail {
		r.metrics.IncRateLimitHit()
		r.replyError(ctx, session, errors.NewRateLimited(string(category)))
	}
	return decision
}

// Reply writes a frame back to the session through the backpressure controller.
func (r *Router) Reply(ctx context.Context, session contract.Session, t domain.FrameType, payload any) {
	bytes, err := domain.EncodeFrame(t, payload)
	if err != nil {
		r.log.Error("Unable to encode frame", "type", string(t), "error", err)
		return
	}
	r.sender.SendOrFail(ctx, session.Transport, bytes,
		runtime.SendMeta{UserID: session.UserID, ConnectionID: session.ConnectionID})
}

func (r *Router) replyError(ctx context.Context, session contract.Session, err error) {
	r.Reply(ctx, session, domain.FrameError, domain.NewErrorFrame(err))
}
