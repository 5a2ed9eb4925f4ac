package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shabda-reader/shabda/pkg/config"
	"github.com/shabda-reader/shabda/pkg/logger"
	"github.com/shabda-reader/shabda/pkg/resolve"
	"github.com/shabda-reader/shabda/pkg/sanskrit"
	"github.com/shabda-reader/shabda/pkg/server"
	"github.com/shabda-reader/shabda/pkg/store"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	registry := store.NewRegistry(cfg.Dict.Dir)
	defer registry.Close()

	var sandhiClient *sanskrit.Client
	var romanizer *sanskrit.Romanizer
	var splitter *sanskrit.Splitter
	if cfg.Sandhi.URL != "" {
		sandhiClient = sanskrit.NewClient(cfg.Sandhi.URL, cfg.Sandhi.Timeout)
		romanizer = sanskrit.NewRomanizer(sandhiClient, logger.WithComponent("sanskrit"))
		splitter = sanskrit.NewSplitter(sandhiClient, logger.WithComponent("sanskrit"))
	} else {
		slog.Info("sandhi service not configured, compound queries use local fallbacks")
		romanizer = sanskrit.NewRomanizer(nil, nil)
		splitter = sanskrit.NewSplitter(nil, nil)
	}

	resolver := resolve.NewFromRegistry(registry, romanizer, splitter, resolve.Options{
		PlainTTL:     cfg.Cache.PlainTTL,
		PlainSize:    cfg.Cache.PlainSize,
		CompoundTTL:  cfg.Cache.CompoundTTL,
		CompoundSize: cfg.Cache.CompoundSize,
	}, logger.WithComponent("resolver"))

	srv := server.New(cfg.Server, resolver, registry, sandhiClient, logger.WithComponent("server"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}
}
