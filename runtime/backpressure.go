package runtime

import (
	"chat-courier/contract"
	"chat-courier/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

const (
	ReasonBackpressure  = "BACKPRESSURE"
	ReasonSendException = "send_exception"
)

type BackpressureConfig struct {
	MaxBufferedBytes int
	MaxPendingSends  int
}

// SendMeta identifies what is being written, for marking and logging only.
type SendMeta struct {
	MessageID    string
	UserID       string
	ConnectionID string
}

// SendResult reports a write attempt. Err is a transient DomainError of kind
// backpressure or send_exception when OK is false.
type SendResult struct {
	OK     bool
	Reason string
	Err    error
}

type socketState struct {
	pending      int
	lastBuffered int
}

// BackpressureController is the single gatekeeper in front of every transport write.
// A socket that is closed, saturated or has too many sends in flight is refused
// immediately; the message is flagged FAILED instead of being queued.
// Transports are used as map keys and must therefore be comparable (pointers).
type BackpressureController struct {
	mu      sync.Mutex
	log     *slog.Logger
	config  BackpressureConfig
	marker  contract.IStateMarker
	metrics contract.IMetrics
	sockets map[contract.Transport]*socketState
}

func NewBackpressureController(
	log *slog.Logger,
	config BackpressureConfig,
	marker contract.IStateMarker,
	metrics contract.IMetrics,
) *BackpressureController {
	return &BackpressureController{
		log:     log,
		config:  config,
		marker:  marker,
		metrics: metrics,
		sockets: make(map[contract.Transport]*socketState),
	}
}

// CanSend only reads what the transport already knows; it never waits on I/O.
// It never starts tracking a socket.
func (c *BackpressureController) CanSend(t contract.Transport) bool {
	if t == nil {
		return false
	}
	ready := t.ReadyState() == contract.ReadyStateOpen
	buffered := t.BufferedAmount()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admissible(t, ready, buffered)
}

func (c *BackpressureController) admissible(t contract.Transport, ready bool, buffered int) bool {
	if !ready || buffered > c.config.MaxBufferedBytes {
		return false
	}
	s, ok := c.sockets[t]
	if !ok {
		return true
	}
	s.lastBuffered = buffered
	return s.pending <= c.config.MaxPendingSends
}

// acquire checks the socket and reserves a pending send in one step.
// Only an open socket gets an entry.
func (c *BackpressureController) acquire(t contract.Transport) bool {
	if t == nil {
		return false
	}
	ready := t.ReadyState() == contract.ReadyStateOpen
	buffered := t.BufferedAmount()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.admissible(t, ready, buffered) {
		return false
	}
	s, ok := c.sockets[t]
	if !ok {
		s = &socketState{lastBuffered: buffered}
		c.sockets[t] = s
	}
	s.pending++
	return true
}

// SendOrFail writes payload if the socket can take it.
// Both failure paths mark meta.MessageID FAILED when it is set.
func (c *BackpressureController) SendOrFail(ctx context.Context, t contract.Transport, payload []byte, meta SendMeta) SendResult {
	if !c.acquire(t) {
		c.log.Debug("Send refused by backpressure",
			"user_id", meta.UserID, "connection_id", meta.ConnectionID, "message_id", meta.MessageID)
		c.fail(ctx, meta)
		return SendResult{OK: false, Reason: ReasonBackpressure, Err: errors.NewBackpressure(meta.ConnectionID)}
	}

	err := write(t, payload)
	c.DecrementPendingSend(t)

	if err != nil {
		c.log.Warn("Transport write failed",
			"user_id", meta.UserID, "connection_id", meta.ConnectionID, "message_id", meta.MessageID, "error", err)
		c.fail(ctx, meta)
		return SendResult{OK: false, Reason: ReasonSendException, Err: errors.NewSendException(err)}
	}
	return SendResult{OK: true}
}

func write(t contract.Transport, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport panic: %v", r)
		}
	}()
	return t.Write(payload)
}

func (c *BackpressureController) fail(ctx context.Context, meta SendMeta) {
	if c.metrics != nil {
		c.metrics.IncDeliveryFailure()
	}
	if meta.MessageID == "" || c.marker == nil {
		return
	}
	if err := c.marker.MarkFailed(ctx, meta.MessageID); err != nil {
		c.log.Error("Unable to mark message as failed", "message_id", meta.MessageID, "error", err)
	}
}

// IncrementPendingSend counts a send in flight. Sockets that are not open are ignored.
func (c *BackpressureController) IncrementPendingSend(t contract.Transport) {
	if t == nil || t.ReadyState() != contract.ReadyStateOpen {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sockets[t]
	if !ok {
		s = &socketState{}
		c.sockets[t] = s
	}
	s.pending++
}

func (c *BackpressureController) DecrementPendingSend(t contract.Transport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sockets[t]; ok && s.pending > 0 {
		s.pending--
	}
}

// CleanupSocket forgets everything tracked for t. Called on disconnect.
func (c *BackpressureController) CleanupSocket(t contract.Transport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sockets, t)
}

// Tracked returns how many sockets currently hold state.
func (c *BackpressureController) Tracked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sockets)
}
