package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tickprobe/config"
	"tickprobe/internal/probe"
	"tickprobe/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()
	cfg.ResolveSecrets()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := probe.Run(ctx, cfg, log, os.Stdout); err != nil {
		log.Fatal("probe failed", zap.Error(err))
	}
}
