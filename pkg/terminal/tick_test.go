package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestParseTickList
func TestParseTickList(t *testing.T) {
	ticks := ParseTickList([][]string{
		{"1700000000", "1.1", "1.2", "1.15", "3", "1700000000500", "56", "3.5"},
		{"1700000000", "1.1"}, // short
		{"x", "1.1", "1.2", "0", "0", "1", "2", "0"},
	})
	require.Len(t, ticks, 1)

	tk := ticks[0]
	assert.Equal(t, int64(1700000000), tk.Time)
	assert.Equal(t, uint64(3), tk.Volume)
	assert.Equal(t, 3.5, tk.VolumeReal)
	assert.True(t, tk.Flags.Has(TickFlagLast|TickFlagVolume|TickFlagBuy))
	assert.Equal(t, time.UnixMilli(1700000000500), tk.Timestamp())

	assert.NotNil(t, ParseTickList(nil))
}

// go test -v --run TestFormatTicks
func TestFormatTicks(t *testing.T) {
	assert.Equal(t, "none", FormatTicks(nil))
	assert.Equal(t, "[]", FormatTicks([]Tick{}))

	got := FormatTicks([]Tick{
		{Time: 1700000000, Bid: 1.08512, Ask: 1.08514, TimeMsc: 1700000000101, Flags: 6},
		{Time: 1700000001, Bid: 1.0851, Ask: 1.08515, TimeMsc: 1700000001002, Flags: 4},
	})
	assert.Equal(t,
		"[(1700000000, 1.08512, 1.08514, 0, 0, 1700000000101, 6, 0) (1700000001, 1.0851, 1.08515, 0, 0, 1700000001002, 4, 0)]",
		got)
}

// go test -v --run TestCopyTicksFlag
func TestCopyTicksFlag(t *testing.T) {
	f, err := ParseCopyTicksFlag(" ALL ")
	require.NoError(t, err)
	assert.Equal(t, CopyTicksAll, f)
	assert.Equal(t, "COPY_TICKS_ALL", f.String())

	f, err = ParseCopyTicksFlag("trade")
	require.NoError(t, err)
	assert.Equal(t, CopyTicksTrade, f)

	_, err = ParseCopyTicksFlag("bids")
	assert.Error(t, err)

	assert.False(t, CopyTicksFlag(7).IsValid())
	assert.Equal(t, "CopyTicksFlag(7)", CopyTicksFlag(7).String())
}

// go test -v --run TestErrorFormat
func TestErrorFormat(t *testing.T) {
	assert.Equal(t, "(-6, 'Terminal: Authorization failed')",
		Error{Code: ResEAuthFailed, Message: "Terminal: Authorization failed"}.Error())
	assert.Equal(t, "(-10004, 'No IPC connection')", newError(ResEInternalFailConnect, "").Error())
	assert.Equal(t, "Internal IPC initialization fail, dial refused",
		newError(ResEInternalFailInit, "dial refused").Message)
	assert.True(t, newError(ResSOK, "").OK())
}
