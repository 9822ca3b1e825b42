package postgres_test

import (
	"context"
	"testing"
	"time"

	"tickprobe/pkg/storage/postgres"
	"tickprobe/pkg/terminal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestToTickRecord
func TestToTickRecord(t *testing.T) {
	tk := terminal.Tick{
		Time:       1741944600,
		Bid:        1.08512,
		Ask:        1.08514,
		Last:       1.08513,
		Volume:     2,
		TimeMsc:    1741944600101,
		Flags:      terminal.TickFlagLast | terminal.TickFlagVolume,
		VolumeReal: 2.5,
	}

	rec := postgres.ToTickRecord("EURUSD", tk)

	assert.Equal(t, "EURUSD", rec.Symbol)
	assert.Equal(t, time.UnixMilli(1741944600101).UTC(), rec.TimeMsc)
	assert.Equal(t, uint32(0x18), rec.Flags)
	assert.Equal(t, 1.08513, rec.Last)
	assert.Equal(t, int64(2), rec.Volume)
	assert.Equal(t, 2.5, rec.VolumeReal)
}

// go test -v --run TestTickArchive
func TestTickArchive(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.AutoMigrateTickRecord())

	base := time.Now().Truncate(time.Second)
	ticks := []terminal.Tick{
		{Time: base.Unix(), Bid: 1.1, Ask: 1.2, TimeMsc: base.UnixMilli(), Flags: 6},
		{Time: base.Unix(), Bid: 1.1, Ask: 1.3, TimeMsc: base.UnixMilli() + 5, Flags: 4},
	}

	require.NoError(t, client.RecordTicks(ctx, "TESTSYM", ticks))
	// duplicates are skipped
	require.NoError(t, client.RecordTicks(ctx, "TESTSYM", ticks))

	got, err := client.GetTicks(ctx, "TESTSYM", base.Add(-time.Second), base.Add(time.Second))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1.3, got[1].Ask)

	require.NoError(t, client.DeleteOldTicks(ctx, base.Add(time.Hour)))

	got, err = client.GetTicks(ctx, "TESTSYM", base.Add(-time.Second), base.Add(time.Second))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// go test -v --run TestTickArchiveSameMillisecond
func TestTickArchiveSameMillisecond(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.AutoMigrateTickRecord())

	base := time.Now().Truncate(time.Second)
	ticks := []terminal.Tick{
		{Time: base.Unix(), Bid: 1.1, Ask: 1.2, TimeMsc: base.UnixMilli(), Flags: 2},
		{Time: base.Unix(), Bid: 1.11, Ask: 1.2, TimeMsc: base.UnixMilli(), Flags: 2},
	}
	require.NoError(t, client.RecordTicks(ctx, "TESTMSC", ticks))
	defer func() { _ = client.DeleteOldTicks(ctx, base.Add(time.Hour)) }()

	got, err := client.GetTicks(ctx, "TESTMSC", base.Add(-time.Second), base.Add(time.Second))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
