package router

import (
	"chat-courier/contract"
	"chat-courier/domain"
	"chat-courier/mocks"
	"chat-courier/runtime"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingSender struct {
	mu     sync.Mutex
	frames []domain.Frame
}

func (s *recordingSender) SendOrFail(_ context.Context, _ contract.Transport, payload []byte, _ runtime.SendMeta) runtime.SendResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var frame domain.Frame
	_ = json.Unmarshal(payload, &frame)
	s.frames = append(s.frames, frame)
	return runtime.SendResult{OK: true}
}

func (s *recordingSender) errors(t *testing.T) []domain.ErrorFrame {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ErrorFrame
	for _, frame := range s.frames {
		if frame.Type != domain.FrameError {
			continue
		}
		var e domain.ErrorFrame
		require.NoError(t, json.Unmarshal(frame.Payload, &e))
		out = append(out, e)
	}
	return out
}

func newLimiter(t *testing.T, message, typing int) *runtime.RateLimiter {
	t.Helper()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter, err := runtime.NewRateLimiter(slog.Default(), map[runtime.Category]runtime.BucketConfig{
		runtime.CategoryMessage: {Capacity: message, Window: time.Second},
		runtime.CategoryTyping:  {Capacity: typing, Window: time.Second},
	}, runtime.WithLimiterClock(func() time.Time { return now }))
	require.NoError(t, err)
	return limiter
}

func frame(t *testing.T, frameType domain.FrameType, payload any) []byte {
	t.Helper()
	raw, err := domain.EncodeFrame(frameType, payload)
	require.NoError(t, err)
	return raw
}

var alice = contract.Session{UserID: "alice", ConnectionID: "a-1"}

func TestRouter_Rate_Limited_Frames_Never_Reach_The_Handler(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockIMetrics(ctrl)
	sender := &recordingSender{}
	r := NewRouter(logs.GetLoggerFromLevel(slog.LevelDebug), newLimiter(t, 3, 3), metrics, sender)

	calls := 0
	r.Handle(domain.FrameMessageSend, func(context.Context, contract.Session, json.RawMessage) error {
		calls++
		return nil
	})
	metrics.EXPECT().IncRateLimitHit().Times(2)

	// When alice sends five frames against a bucket of three
	var verdicts []runtime.Verdict
	for i := 0; i < 5; i++ {
		decision := r.Dispatch(context.Background(), alice, frame(t, domain.FrameMessageSend, domain.MessageSend{}))
		verdicts = append(verdicts, decision.Verdict)
	}

	// Then the last two are rejected before the handler
	req.Equal([]runtime.Verdict{
		runtime.VerdictAllow, runtime.VerdictAllow, runtime.VerdictAllow,
		runtime.VerdictFail, runtime.VerdictFail,
	}, verdicts)
	req.Equal(3, calls)

	// And alice was told why
	errs := sender.errors(t)
	req.Len(errs, 2)
	for _, e := range errs {
		req.Equal("RATE_LIMITED", e.Code)
	}
}

func TestRouter_Typing_Is_Charged_Twice(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockIMetrics(ctrl)
	r := NewRouter(slog.Default(), newLimiter(t, 10, 1), metrics, &recordingSender{})
	r.Handle(domain.FrameTyping, func(context.Context, contract.Session, json.RawMessage) error { return nil })
	metrics.EXPECT().IncRateLimitHit().Times(1)

	typing := frame(t, domain.FrameTyping, domain.Typing{RecipientID: "bob", Active: true})
	req.True(r.Dispatch(context.Background(), alice, typing).Allowed())

	// When the typing bucket is empty
	decision := r.Dispatch(context.Background(), alice, typing)
	req.Equal(runtime.VerdictFail, decision.Verdict)

	// Then other frames still flow
	r.Handle(domain.FrameMessageAck, func(context.Context, contract.Session, json.RawMessage) error { return nil })
	req.True(r.Dispatch(context.Background(), alice, frame(t, domain.FrameMessageAck, domain.MessageAck{})).Allowed())
}

func TestRouter_Malformed_Frames_Are_Dropped_Without_Accounting(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockIMetrics(ctrl)
	sender := &recordingSender{}
	r := NewRouter(slog.Default(), newLimiter(t, 1, 1), metrics, sender)
	r.Handle(domain.FrameMessageSend, func(context.Context, contract.Session, json.RawMessage) error { return nil })

	for _, raw := range [][]byte{[]byte("not json"), []byte(`{"payload":{}}`), []byte(`[]`)} {
		decision := r.Dispatch(context.Background(), alice, raw)
		req.Equal(runtime.VerdictDrop, decision.Verdict)
		req.Equal(ReasonMalformed, decision.Reason)
	}

	// The single token is still available
	req.True(r.Dispatch(context.Background(), alice, frame(t, domain.FrameMessageSend, domain.MessageSend{})).Allowed())
	req.Empty(sender.frames)
}

func TestRouter_Unknown_Type_Is_Charged_And_Reported(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockIMetrics(ctrl)
	sender := &recordingSender{}
	r := NewRouter(slog.Default(), newLimiter(t, 1, 1), metrics, sender)
	metrics.EXPECT().IncRateLimitHit().Times(1)

	decision := r.Dispatch(context.Background(), alice, []byte(`{"type":"PRESENCE"}`))
	req.Equal(runtime.VerdictFail, decision.Verdict)
	req.Equal("UNKNOWN_TYPE", decision.Reason)

	// The unknown frame consumed the token
	decision = r.Dispatch(context.Background(), alice, []byte(`{"type":"PRESENCE"}`))
	req.Equal("RATE_LIMITED", decision.Reason)

	errs := sender.errors(t)
	req.Len(errs, 2)
	req.Equal("UNKNOWN_TYPE", errs[0].Code)
}

func TestRouter_Anonymous_Frames_Are_Dropped(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	r := NewRouter(slog.Default(), newLimiter(t, 1, 1), mocks.NewMockIMetrics(ctrl), &recordingSender{})

	decision := r.Dispatch(context.Background(), contract.Session{}, frame(t, domain.FrameMessageSend, domain.MessageSend{}))
	req.Equal(runtime.VerdictDrop, decision.Verdict)
	req.Equal(runtime.ReasonAnonymous, decision.Reason)
}

func TestRouter_Handler_Error_Becomes_Error_Frame(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sender := &recordingSender{}
	r := NewRouter(slog.Default(), newLimiter(t, 5, 5), mocks.NewMockIMetrics(ctrl), sender)
	r.Handle(domain.FrameMessageAck, func(_ context.Context, _ contract.Session, payload json.RawMessage) error {
		_, err := decode[domain.MessageAck](payload)
		return err
	})

	decision := r.Dispatch(context.Background(), alice, []byte(`{"type":"MESSAGE_ACK","payload":"oops"}`))

	req.Equal(runtime.VerdictFail, decision.Verdict)
	req.Equal("MALFORMED_FRAME", decision.Reason)
	errs := sender.errors(t)
	req.Len(errs, 1)
	req.Equal("MALFORMED_FRAME", errs[0].Code)
}
