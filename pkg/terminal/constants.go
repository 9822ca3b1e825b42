package terminal

import (
	"fmt"
	"strings"
)

// CopyTicksFlag selects which tick kinds a history request returns.
type CopyTicksFlag int

const (
	CopyTicksAll   CopyTicksFlag = -1 // every tick (bid, ask and last changes)
	CopyTicksInfo  CopyTicksFlag = 1  // ticks with bid and/or ask changes
	CopyTicksTrade CopyTicksFlag = 2  // ticks with last and volume changes
)

var copyTicksFlagNames = map[CopyTicksFlag]string{
	CopyTicksAll:   "COPY_TICKS_ALL",
	CopyTicksInfo:  "COPY_TICKS_INFO",
	CopyTicksTrade: "COPY_TICKS_TRADE",
}

// validCopyTicksFlags maps config values to flags
var validCopyTicksFlags = map[string]CopyTicksFlag{
	"all":   CopyTicksAll,
	"info":  CopyTicksInfo,
	"trade": CopyTicksTrade,
}

func (f CopyTicksFlag) String() string {
	if name, ok := copyTicksFlagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("CopyTicksFlag(%d)", int(f))
}

// IsValid checks if the flag is one of the predefined request modes
func (f CopyTicksFlag) IsValid() bool {
	_, ok := copyTicksFlagNames[f]
	return ok
}

// ParseCopyTicksFlag parses "all", "info" or "trade" (case-insensitive).
func ParseCopyTicksFlag(s string) (CopyTicksFlag, error) {
	f, ok := validCopyTicksFlags[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid CopyTicksFlag: %s", s)
	}
	return f, nil
}

// TickFlag is the bit set describing what changed in a tick.
type TickFlag uint32

const (
	TickFlagBid    TickFlag = 0x02
	TickFlagAsk    TickFlag = 0x04
	TickFlagLast   TickFlag = 0x08
	TickFlagVolume TickFlag = 0x10
	TickFlagBuy    TickFlag = 0x20
	TickFlagSell   TickFlag = 0x40
)

// Has reports whether every bit of other is set.
func (f TickFlag) Has(other TickFlag) bool {
	return f&other == other
}

// Terminal result codes.
const (
	ResSOK                  = 1
	ResEFail                = -1
	ResEInvalidParams       = -2
	ResENoMemory            = -3
	ResENotFound            = -4
	ResEInvalidVersion      = -5
	ResEAuthFailed          = -6
	ResEUnsupported         = -7
	ResEAutoTradingDisabled = -8
	ResEInternalFail        = -10000
	ResEInternalFailSend    = -10001
	ResEInternalFailReceive = -10002
	ResEInternalFailInit    = -10003
	ResEInternalFailConnect = -10004
	ResEInternalFailTimeout = -10005
)

var resultMessages = map[int]string{
	ResSOK:                  "Success",
	ResEFail:                "Generic fail",
	ResEInvalidParams:       "Invalid arguments/parameters",
	ResENoMemory:            "No memory condition",
	ResENotFound:            "No history",
	ResEInvalidVersion:      "Invalid version",
	ResEAuthFailed:          "Authorization failed",
	ResEUnsupported:         "Unsupported method",
	ResEAutoTradingDisabled: "Auto-trading disabled",
	ResEInternalFail:        "Internal IPC general error",
	ResEInternalFailSend:    "Internal IPC send failed",
	ResEInternalFailReceive: "Internal IPC recv failed",
	ResEInternalFailInit:    "Internal IPC initialization fail",
	ResEInternalFailConnect: "No IPC connection",
	ResEInternalFailTimeout: "Internal timeout",
}

// newError builds an Error with the stock message for code, plus optional detail.
func newError(code int, detail string) Error {
	msg := resultMessages[code]
	if detail != "" {
		if msg != "" {
			msg += ", "
		}
		msg += detail
	}
	return Error{Code: code, Message: msg}
}
