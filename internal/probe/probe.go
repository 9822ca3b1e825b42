package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tickprobe/config"
	"tickprobe/internal/startup"
	"tickprobe/pkg/storage/postgres"
	"tickprobe/pkg/terminal"

	"go.uber.org/zap"
)

const archivePingTimeout = 3 * time.Second

// Run builds the terminal binding from cfg and runs the startup routine once.
// A refused terminal initialize is reported on out, not returned: only
// setup problems (bad config, unreachable archive) are errors.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	opts, err := routineOptions(cfg.Startup)
	if err != nil {
		return err
	}

	if cfg.Archive.Enabled {
		postgresClient, err := postgres.InitializeAndMigrateTickRecord(cfg.Postgres, cfg.Log.Environment, cfg.Archive.CreateDB)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		if err := checkArchive(ctx, postgresClient); err != nil {
			return err
		}
		defer postgresClient.Close()
		opts = append(opts, startup.WithRecorder(postgresClient))
	}

	term := NewTerminal(cfg.Terminal, logger)
	startup.New(term, out, logger, opts...).OnStart(ctx)
	return nil
}

type archive interface {
	IsHealthy(ctx context.Context) bool
	Close() error
}

// checkArchive pings the archive before the terminal session opens,
// closing it when the ping fails.
func checkArchive(ctx context.Context, a archive) error {
	pingCtx, cancel := context.WithTimeout(ctx, archivePingTimeout)
	defer cancel()

	if !a.IsHealthy(pingCtx) {
		_ = a.Close()
		return errors.New("archive database is not healthy")
	}
	return nil
}

// NewTerminal wires the bridge session channel and history client.
func NewTerminal(cfg config.TerminalConfig, logger *zap.Logger) *terminal.Client {
	ws := terminal.NewWSClient(cfg.WS.URL, cfg.WS.Timeout, logger)
	rest := terminal.NewRESTClient(cfg.REST.BaseURL, cfg.REST.Timeout)

	return terminal.NewClient(ws, rest, terminal.InitializeParams{
		Path:      cfg.Path,
		Login:     cfg.Login,
		Password:  cfg.Password,
		Server:    cfg.Server,
		TimeoutMs: cfg.Timeout.Milliseconds(),
		Portable:  cfg.Portable,
	}, logger)
}

func routineOptions(cfg config.StartupConfig) ([]startup.Option, error) {
	var opts []startup.Option

	if cfg.Symbol != "" {
		opts = append(opts, startup.WithSymbol(cfg.Symbol))
	}
	if cfg.Count > 0 {
		opts = append(opts, startup.WithCount(cfg.Count))
	}
	if cfg.Flags != "" {
		flags, err := terminal.ParseCopyTicksFlag(cfg.Flags)
		if err != nil {
			return nil, fmt.Errorf("startup.flags: %w", err)
		}
		opts = append(opts, startup.WithFlags(flags))
	}

	return opts, nil
}
