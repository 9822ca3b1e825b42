package startup

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"tickprobe/pkg/terminal"

	"go.uber.org/zap"
)

// Defaults for the tick request.
const (
	DefaultSymbol = "EURUSD"
	DefaultCount  = 10
	DefaultFlags  = terminal.CopyTicksAll
)

// Terminal is the capability surface the routine needs from the terminal binding.
type Terminal interface {
	Initialize(ctx context.Context) bool
	LastError() terminal.Error
	CopyTicksFrom(ctx context.Context, symbol string, from time.Time, count int, flags terminal.CopyTicksFlag) []terminal.Tick
	Shutdown()
}

// TickRecorder persists fetched ticks.
type TickRecorder interface {
	RecordTicks(ctx context.Context, symbol string, ticks []terminal.Tick) error
}

// Routine connects to the terminal, reports the latest ticks of one symbol
// and disconnects. It runs at most once.
type Routine struct {
	term     Terminal
	out      io.Writer
	logger   *zap.Logger
	symbol   string
	count    int
	flags    terminal.CopyTicksFlag
	recorder TickRecorder
	now      func() time.Time

	once sync.Once
}

type Option func(*Routine)

func WithSymbol(symbol string) Option {
	return func(r *Routine) { r.symbol = symbol }
}

func WithCount(count int) Option {
	return func(r *Routine) { r.count = count }
}

func WithFlags(flags terminal.CopyTicksFlag) Option {
	return func(r *Routine) { r.flags = flags }
}

// WithRecorder hands every non-empty fetch to rec before the session is released.
func WithRecorder(rec TickRecorder) Option {
	return func(r *Routine) { r.recorder = rec }
}

// WithClock overrides the wall clock used as the fetch anchor.
func WithClock(now func() time.Time) Option {
	return func(r *Routine) { r.now = now }
}

// New creates a routine writing its report lines to out.
func New(term Terminal, out io.Writer, logger *zap.Logger, opts ...Option) *Routine {
	r := &Routine{
		term:   term,
		out:    out,
		logger: logger,
		symbol: DefaultSymbol,
		count:  DefaultCount,
		flags:  DefaultFlags,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnStart runs the routine. Later calls on the same Routine do nothing.
func (r *Routine) OnStart(ctx context.Context) {
	r.once.Do(func() { r.run(ctx) })
}

func (r *Routine) run(ctx context.Context) {
	if !r.term.Initialize(ctx) {
		diag := r.term.LastError()
		r.logger.Error("terminal initialize failed",
			zap.Int("code", diag.Code), zap.String("message", diag.Message))
		fmt.Fprintf(r.out, "initialize failed: %s\n", diag.Error())
		return
	}
	fmt.Fprintln(r.out, "terminal ready")

	anchor := r.now()
	ticks := r.term.CopyTicksFrom(ctx, r.symbol, anchor, r.count, r.flags)
	r.logger.Info("fetched ticks",
		zap.String("symbol", r.symbol),
		zap.Time("from", anchor),
		zap.Int("count", len(ticks)),
		zap.Stringer("flags", r.flags))
	if ticks == nil {
		diag := r.term.LastError()
		r.logger.Warn("terminal returned no ticks",
			zap.Int("code", diag.Code), zap.String("message", diag.Message))
	}
	fmt.Fprintf(r.out, "latest ticks: %s\n", terminal.FormatTicks(ticks))

	if r.recorder != nil && len(ticks) > 0 {
		if err := r.recorder.RecordTicks(ctx, r.symbol, ticks); err != nil {
			r.logger.Warn("failed to record ticks", zap.String("symbol", r.symbol), zap.Error(err))
		}
	}

	r.term.Shutdown()
}
