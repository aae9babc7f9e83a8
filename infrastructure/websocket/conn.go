// Package websocket adapts gorilla/websocket connections to the engine's Transport.
package websocket

import (
	"chat-courier/contract"
	"chat-courier/errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	gws "github.com/gorilla/websocket"
)

type ConnConfig struct {
	SendQueueSize int
	WriteWait     time.Duration
	PongWait      time.Duration
	MaxFrameBytes int64
}

func (c ConnConfig) pingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}

var _ contract.Transport = (*Conn)(nil)

// Conn queues outgoing frames for a single writer goroutine.
// BufferedAmount is the number of bytes queued but not yet flushed to the socket.
type Conn struct {
	log      *slog.Logger
	ws       *gws.Conn
	config   ConnConfig
	send     chan []byte
	done     chan struct{}
	buffered atomic.Int64
	state    atomic.Int32
	closing  sync.Once
}

func NewConn(log *slog.Logger, ws *gws.Conn, config ConnConfig) *Conn {
	c := &Conn{
		log:    log,
		ws:     ws,
		config: config,
		send:   make(chan []byte, config.SendQueueSize),
		done:   make(chan struct{}),
	}
	c.state.Store(int32(contract.ReadyStateOpen))
	return c
}

func (c *Conn) BufferedAmount() int {
	return int(c.buffered.Load())
}

func (c *Conn) ReadyState() contract.ReadyState {
	return contract.ReadyState(c.state.Load())
}

// Write never blocks: a full queue is reported as an error.
func (c *Conn) Write(data []byte) error {
	if c.ReadyState() != contract.ReadyStateOpen {
		return errors.ErrConnectionClosed
	}
	c.buffered.Add(int64(len(data)))
	select {
	case <-c.done:
		c.buffered.Add(-int64(len(data)))
		return errors.ErrConnectionClosed
	case c.send <- data:
		return nil
	default:
		c.buffered.Add(-int64(len(data)))
		return errors.ErrSendQueueFull
	}
}

// Close moves the connection to CLOSING and stops the write pump.
// It is safe to call more than once.
func (c *Conn) Close() {
	c.closing.Do(func() {
		c.state.Store(int32(contract.ReadyStateClosing))
		close(c.done)
	})
}

// WritePump flushes queued frames and pings the peer until the connection closes.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(c.config.pingPeriod())
	defer func() {
		ticker.Stop()
		c.state.Store(int32(contract.ReadyStateClosed))
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.WriteControl(gws.CloseMessage,
				gws.FormatCloseMessage(gws.CloseNormalClosure, ""), time.Now().Add(c.config.WriteWait))
			return
		case data := <-c.send:
			c.buffered.Add(-int64(len(data)))
			if err := c.ws.SetWriteDeadline(time.Now().Add(c.config.WriteWait)); err != nil {
				c.log.Debug("Unable to set write deadline", "error", err)
				c.Close()
				return
			}
			if err := c.ws.WriteMessage(gws.TextMessage, data); err != nil {
				c.log.Debug("Write failed", "error", err)
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(gws.PingMessage, nil, time.Now().Add(c.config.WriteWait)); err != nil {
				c.log.Debug("Ping failed", "error", err)
				c.Close()
				return
			}
		}
	}
}

// ReadPump hands every text frame to onFrame until the peer goes away.
func (c *Conn) ReadPump(onFrame func([]byte)) {
	defer c.Close()

	c.ws.SetReadLimit(c.config.MaxFrameBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.config.PongWait))
	})

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			if gws.IsUnexpectedCloseError(err, gws.CloseGoingAway, gws.CloseNormalClosure) {
				c.log.Warn("Unexpected close", "error", err)
			}
			return
		}
		if messageType != gws.TextMessage {
			continue
		}
		onFrame(data)
	}
}
