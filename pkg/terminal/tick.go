package terminal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tick is one quote or trade event as recorded by the terminal.
type Tick struct {
	Time       int64    `json:"time"`        // seconds since epoch
	Bid        float64  `json:"bid"`         // current bid price
	Ask        float64  `json:"ask"`         // current ask price
	Last       float64  `json:"last"`        // price of the last deal
	Volume     uint64   `json:"volume"`      // volume of the last deal
	TimeMsc    int64    `json:"time_msc"`    // milliseconds since epoch
	Flags      TickFlag `json:"flags"`       // what changed, see TickFlag
	VolumeReal float64  `json:"volume_real"` // volume of the last deal with extended accuracy
}

// Timestamp returns the tick time with millisecond precision.
func (t Tick) Timestamp() time.Time {
	if t.TimeMsc != 0 {
		return time.UnixMilli(t.TimeMsc)
	}
	return time.Unix(t.Time, 0)
}

func (t Tick) String() string {
	return fmt.Sprintf("(%d, %s, %s, %s, %d, %d, %d, %s)",
		t.Time, formatFloat(t.Bid), formatFloat(t.Ask), formatFloat(t.Last),
		t.Volume, t.TimeMsc, t.Flags, formatFloat(t.VolumeReal))
}

// FormatTicks renders a tick collection for the report.
// nil means the terminal returned nothing at all.
func FormatTicks(ticks []Tick) string {
	if ticks == nil {
		return "none"
	}
	parts := make([]string, len(ticks))
	for i, t := range ticks {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseTickList converts bridge rows to ticks.
// Incomplete or malformed rows are skipped; the result is never nil.
func ParseTickList(raw [][]string) []Tick {
	out := make([]Tick, 0, len(raw))

	for _, row := range raw {
		if len(row) < 8 {
			continue
		}

		sec, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			continue
		}
		bid, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		ask, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		last, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseUint(row[4], 10, 64)
		if err != nil {
			continue
		}
		msc, err := strconv.ParseInt(row[5], 10, 64)
		if err != nil {
			continue
		}
		flags, err := strconv.ParseUint(row[6], 10, 32)
		if err != nil {
			continue
		}
		volumeReal, err := strconv.ParseFloat(row[7], 64)
		if err != nil {
			continue
		}

		out = append(out, Tick{
			Time:       sec,
			Bid:        bid,
			Ask:        ask,
			Last:       last,
			Volume:     volume,
			TimeMsc:    msc,
			Flags:      TickFlag(flags),
			VolumeReal: volumeReal,
		})
	}
	return out
}
