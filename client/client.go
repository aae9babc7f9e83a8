// Package client is a minimal websocket client for the courier frame protocol.
// It backs the tester binary and the end-to-end suites.
package client

import (
	"chat-courier/domain"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gws "github.com/gorilla/websocket"
)

type Client struct {
	UserID string
	conn   *gws.Conn
	frames chan domain.Frame
	done   chan struct{}
}

// Dial opens a connection for userID. baseURL is the ws:// address of the /ws endpoint.
func Dial(ctx context.Context, baseURL, userIDHeader, userID string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", baseURL, err)
	}
	header := http.Header{}
	header.Set(userIDHeader, userID)

	conn, _, err := gws.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		return nil, fmt.Errorf("dial %s as %s: %w", u, userID, err)
	}
	c := &Client{UserID: userID, conn: conn, frames: make(chan domain.Frame, 256), done: make(chan struct{})}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame domain.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		select {
		case c.frames <- frame:
		default:
			// the reader fell behind; the frame is lost like on a saturated socket
		}
	}
}

func (c *Client) Send(frameType domain.FrameType, payload any) error {
	raw, err := domain.EncodeFrame(frameType, payload)
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(gws.TextMessage, raw)
}

func (c *Client) SendRaw(raw []byte) error {
	return c.conn.WriteMessage(gws.TextMessage, raw)
}

// Next returns the next frame or an error once timeout elapses.
func (c *Client) Next(timeout time.Duration) (domain.Frame, error) {
	select {
	case frame := <-c.frames:
		return frame, nil
	case <-c.done:
		return domain.Frame{}, fmt.Errorf("%s: connection closed", c.UserID)
	case <-time.After(timeout):
		return domain.Frame{}, fmt.Errorf("%s: no frame within %s", c.UserID, timeout)
	}
}

// Expect skips frames until one of type t arrives and decodes its payload into out.
func (c *Client) Expect(t domain.FrameType, out any, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%s: no %s within %s", c.UserID, t, timeout)
		}
		frame, err := c.Next(remaining)
		if err != nil {
			return err
		}
		if frame.Type != t {
			continue
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(frame.Payload, out)
	}
}

// Drain discards every frame already received.
func (c *Client) Drain() int {
	n := 0
	for {
		select {
		case <-c.frames:
			n++
		default:
			return n
		}
	}
}

func (c *Client) Close() error {
	_ = c.conn.WriteControl(gws.CloseMessage,
		gws.FormatCloseMessage(gws.CloseNormalClosure, ""), time.Now().Add(time.Second))
	err := c.conn.Close()
	<-c.done
	return err
}
