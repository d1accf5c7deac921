package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-chi-calculator/internal/mcptools"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	serverName    = "go-chi-calculator"
	serverVersion = "0.1.0"
)

func main() {
	var (
		maxSessions = flag.Int("max-sessions", 100, "Maximum number of concurrent calculator sessions")
		idleTimeout = flag.Duration("idle-timeout", 30*time.Minute, "Discard sessions idle for this long")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	lvl, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		panic(err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	observability.Logger, err = cfg.Build()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(session.Options{
		IdleTimeout: *idleTimeout,
		MaxSessions: *maxSessions,
	})
	go store.Run(ctx, time.Minute)

	s := server.NewMCPServer(serverName, serverVersion)
	mcptools.New(store).Register(s)

	observability.Logger.Info("mcp server started", zap.Int("max_sessions", *maxSessions))

	if err := server.ServeStdio(s); err != nil {
		observability.Logger.Fatal("mcp server failed", zap.Error(err))
	}
}
