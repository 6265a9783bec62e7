package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockhaven/playersync/internal/codec"
	"github.com/blockhaven/playersync/internal/config"
	"github.com/blockhaven/playersync/internal/database"
	"github.com/blockhaven/playersync/internal/database/postgres"
	"github.com/blockhaven/playersync/internal/logger"
	"github.com/blockhaven/playersync/internal/server"
	"github.com/blockhaven/playersync/internal/session"
	"github.com/blockhaven/playersync/internal/sync"
	"github.com/blockhaven/playersync/internal/transport"
)

const (
	dbMaxConns   = 10
	dbMaxIdle    = 5 * time.Minute
	dbMaxLife    = 30 * time.Minute
	shutdownWait = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var logWriter io.Writer
	if cfg.LogDir != "" {
		logFile, err := logger.OpenSessionLogFile(cfg.LogDir)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		logWriter = io.MultiWriter(os.Stdout, logFile)
	}
	logger.Init(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "playersync", cfg.ServerName, false), logWriter)

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewPlayerRepository(pool)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		slog.Error("Failed to ensure schema", "error", err)
		os.Exit(1)
	}

	servers, err := config.LoadServerList(cfg.ServersFile)
	if err != nil {
		slog.Error("Failed to load transfer destinations", "error", err)
		os.Exit(1)
	}
	slog.Info("Transfer destinations loaded", "count", len(servers.Servers))

	notifier, err := transport.Connect(cfg.NatsURL, cfg.ServerName)
	if err != nil {
		slog.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer notifier.Close()

	sessions := session.NewTracker()
	syncService := sync.NewService(repo, codec.New(), sessions, notifier, servers, cfg.ServerName)

	srv := server.NewServer(cfg.Port, pool, repo, syncService)

	go func() {
		slog.Info("HTTP server listening", "port", cfg.Port)
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("Shutting down, saving tracked sessions")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()

	// The engine adapter shuts its players down before this process
	// exits, so by now only profile accounting can remain.
	if err := syncService.HandleShutdown(ctx, nil); err != nil {
		slog.Error("Shutdown save reported errors", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
}
