package terminal

import (
	"encoding/json"
	"fmt"
)

// Error is a terminal diagnostic: a result code and its message.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return fmt.Sprintf("(%d, '%s')", e.Code, e.Message)
}

// OK reports whether the diagnostic is the success code.
func (e Error) OK() bool {
	return e.Code == ResSOK
}

// BridgeResponse is the envelope returned by every REST endpoint of the bridge.
type BridgeResponse struct {
	RetCode int             `json:"retCode"` // terminal result code, 1 on success
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"` // decoded per endpoint
	Time    int64           `json:"time"`   // server time, ms since epoch
}

// TicksResponse is the result payload of /v1/ticks/from.
// Each row is time, bid, ask, last, volume, time_msc, flags, volume_real.
type TicksResponse struct {
	Symbol string     `json:"symbol"`
	List   [][]string `json:"list"`
}

// Request is a message sent on the session channel.
type Request struct {
	ID     int64  `json:"id"`
	Op     string `json:"op"`
	Params any    `json:"params,omitempty"`
}

// Response answers a Request with the same ID.
type Response struct {
	ID     int64           `json:"id"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// InitializeParams are sent with the "initialize" op.
type InitializeParams struct {
	Path      string `json:"path,omitempty"`
	Login     int64  `json:"login,omitempty"`
	Password  string `json:"password,omitempty"`
	Server    string `json:"server,omitempty"`
	TimeoutMs int64  `json:"timeout,omitempty"`
	Portable  bool   `json:"portable,omitempty"`
}

// InitializeResult is returned by a successful "initialize".
type InitializeResult struct {
	Session  string       `json:"session"`
	Terminal TerminalInfo `json:"terminal"`
}

type TerminalInfo struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Build   int    `json:"build"`
}
