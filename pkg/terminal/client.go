package terminal

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client is the terminal binding: it owns one session with the bridge.
// Failures are not returned; they are recorded and read back with LastError.
type Client struct {
	mu      sync.Mutex
	ws      *WSClient
	rest    *RESTClient
	params  InitializeParams
	session string
	lastErr Error
	logger  *zap.Logger
}

// NewClient wires a session channel and a history client into a terminal binding.
func NewClient(ws *WSClient, rest *RESTClient, params InitializeParams, logger *zap.Logger) *Client {
	return &Client{
		ws:      ws,
		rest:    rest,
		params:  params,
		lastErr: newError(ResSOK, ""),
		logger:  logger,
	}
}

// Initialize opens the session. Calling it on an open session is a no-op success.
func (c *Client) Initialize(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != "" {
		return true
	}

	if err := c.ws.Connect(ctx); err != nil {
		c.lastErr = newError(ResEInternalFailInit, err.Error())
		return false
	}

	var result InitializeResult
	if err := c.ws.Call(ctx, "initialize", c.params, &result); err != nil {
		c.lastErr = diagnostic(err, ResEInternalFailReceive)
		_ = c.ws.Close()
		return false
	}
	if result.Session == "" {
		c.lastErr = newError(ResEInternalFailInit, "bridge returned no session")
		_ = c.ws.Close()
		return false
	}

	c.session = result.Session
	c.lastErr = newError(ResSOK, "")
	c.logger.Info("terminal session opened",
		zap.String("terminal", result.Terminal.Name),
		zap.Int("build", result.Terminal.Build))
	return true
}

// LastError returns the diagnostic of the most recent call.
func (c *Client) LastError() Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// CopyTicksFrom returns up to count ticks of symbol starting at from,
// or nil when the request failed.
func (c *Client) CopyTicksFrom(ctx context.Context, symbol string, from time.Time,
	count int, flags CopyTicksFlag) []Tick {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == "" {
		c.lastErr = newError(ResEInternalFailConnect, "")
		return nil
	}
	if count <= 0 || !flags.IsValid() {
		c.lastErr = newError(ResEInvalidParams, "")
		return nil
	}

	ticks, err := c.rest.GetTicksFrom(ctx, c.session, symbol, from, count, flags)
	if err != nil {
		c.lastErr = diagnostic(err, ResEInternalFailReceive)
		c.logger.Warn("copy ticks failed", zap.String("symbol", symbol), zap.Error(err))
		return nil
	}

	c.lastErr = newError(ResSOK, "")
	return ticks
}

// Shutdown closes the session. Safe to call on a closed client.
func (c *Client) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ws.Connected() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.ws.Call(ctx, "shutdown", nil, nil); err != nil {
		c.logger.Debug("shutdown op failed", zap.Error(err))
	}
	if err := c.ws.Close(); err != nil {
		c.logger.Debug("websocket close failed", zap.Error(err))
	}

	c.session = ""
	c.logger.Info("terminal session closed")
}

// diagnostic maps err to a terminal Error, keeping codes the bridge sent.
func diagnostic(err error, fallback int) Error {
	var terr Error
	if errors.As(err, &terr) {
		return terr
	}
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return newError(ResEInternalFailTimeout, err.Error())
	}
	return newError(fallback, err.Error())
}
