package services

import (
	"chat-courier/contract"
	"chat-courier/domain"
	"chat-courier/repositories"
	"chat-courier/runtime"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// fakeTransport records every frame written to it.
type fakeTransport struct {
	mu       sync.Mutex
	frames   []domain.Frame
	state    contract.ReadyState
	buffered int
	writeErr error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{state: contract.ReadyStateOpen}
}

func (f *fakeTransport) BufferedAmount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buffered
}

func (f *fakeTransport) ReadyState() contract.ReadyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeTransport) Write(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	var frame domain.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return err
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeTransport) received(t *testing.T, frameType domain.FrameType) []domain.MessageReceive {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.MessageReceive
	for _, frame := range f.frames {
		if frame.Type != frameType {
			continue
		}
		var payload domain.MessageReceive
		require.NoError(t, json.Unmarshal(frame.Payload, &payload))
		out = append(out, payload)
	}
	return out
}

func (f *fakeTransport) count(frameType domain.FrameType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, frame := range f.frames {
		if frame.Type == frameType {
			n++
		}
	}
	return n
}

type countingMetrics struct {
	persisted, delivered, replayed, ackDropped, rateLimited, failures atomic.Int64
}

func (m *countingMetrics) IncPersisted()       { m.persisted.Add(1) }
func (m *countingMetrics) IncDelivered()       { m.delivered.Add(1) }
func (m *countingMetrics) IncReplay()          { m.replayed.Add(1) }
func (m *countingMetrics) IncAckDrop()         { m.ackDropped.Add(1) }
func (m *countingMetrics) IncRateLimitHit()    { m.rateLimited.Add(1) }
func (m *countingMetrics) IncDeliveryFailure() { m.failures.Add(1) }

type engine struct {
	store    repositories.MessageRepository
	registry *runtime.Registry
	metrics  *countingMetrics
	messages *MessageService
	delivery *DeliveryService
	replay   *ReplayService
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	req := require.New(t)
	db := openDB(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	store := repositories.NewMessageRepository(db, log, domain.JSONCodec{})
	metrics := &countingMetrics{}
	registry := runtime.NewRegistry()
	controller := runtime.NewBackpressureController(log,
		runtime.BackpressureConfig{MaxBufferedBytes: 1024, MaxPendingSends: 8}, store, metrics)

	messages, err := NewMessageService(repositories.NewDedupRepository(db), repositories.NewSequenceRepository(db))
	req.NoError(err)
	delivery, err := NewDeliveryService(log, messages, store, registry, controller, metrics)
	req.NoError(err)
	replay, err := NewReplayService(log, store, controller, metrics, 100, 500)
	req.NoError(err)

	return &engine{store: store, registry: registry, metrics: metrics, messages: messages, delivery: delivery, replay: replay}
}

func (e *engine) connect(userID, connectionID string) (contract.Session, *fakeTransport) {
	transport := newFakeTransport()
	session := contract.Session{UserID: userID, ConnectionID: connectionID, Transport: transport}
	e.registry.Register(session)
	return session, transport
}
