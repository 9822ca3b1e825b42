package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrNotConnected is returned when the session channel is used before Connect.
var ErrNotConnected = errors.New("websocket not connected")

// WSClient is the request/response session channel to the terminal bridge.
type WSClient struct {
	url     string
	timeout time.Duration
	conn    *websocket.Conn
	nextID  int64
	logger  *zap.Logger
}

// NewWSClient creates a new WebSocket client with the given URL and logger.
func NewWSClient(url string, timeout time.Duration, logger *zap.Logger) *WSClient {
	return &WSClient{
		url:     url,
		timeout: timeout,
		logger:  logger,
	}
}

// Connect dials the bridge. It does not send anything.
func (c *WSClient) Connect(ctx context.Context) error {
	dialer := *websocket.DefaultDialer
	if c.timeout > 0 {
		dialer.HandshakeTimeout = c.timeout
	}

	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.logger.Error("Failed to connect to WebSocket", zap.String("url", c.url), zap.Error(err))
		return err
	}
	c.conn = conn
	c.logger.Debug("WebSocket connected", zap.String("url", c.url))
	return nil
}

// Connected reports whether Connect succeeded and Close has not been called since.
func (c *WSClient) Connected() bool {
	return c.conn != nil
}

// Call sends op and waits for the response with the same id.
// A refused op comes back as an Error; anything else is a transport failure.
func (c *WSClient) Call(ctx context.Context, op string, params, result any) error {
	if c.conn == nil {
		return ErrNotConnected
	}

	c.nextID++
	req := Request{ID: c.nextID, Op: op, Params: params}

	// zero time clears the deadline when neither timeout nor ctx sets one
	deadline := c.deadline(ctx)
	_ = c.conn.SetWriteDeadline(deadline)
	_ = c.conn.SetReadDeadline(deadline)

	if err := c.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("websocket write %s: %w", op, err)
	}

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("websocket read %s: %w", op, err)
		}

		var resp Response
		if err := json.Unmarshal(msg, &resp); err != nil {
			c.logger.Warn("failed to parse session message", zap.Error(err))
			continue
		}
		if resp.ID != req.ID {
			// unsolicited events are not used
			c.logger.Debug("skipping session message", zap.Int64("id", resp.ID))
			continue
		}

		if !resp.OK {
			if resp.Error != nil {
				return *resp.Error
			}
			return newError(ResEFail, op+" refused")
		}
		if result != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("decode %s result: %w", op, err)
			}
		}
		return nil
	}
}

// deadline is the earlier of the client timeout and the ctx deadline.
// A non-positive timeout means no client-side limit.
func (c *WSClient) deadline(ctx context.Context) time.Time {
	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return deadline
}

// Close sends a close frame and drops the connection. Safe to call repeatedly.
func (c *WSClient) Close() error {
	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return conn.Close()
}
