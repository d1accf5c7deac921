// Package config reads service settings from the environment. Binaries load
// a .env file first (see cmd/api/env.go), so values there count as
// environment too.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the settings of the calculator service.
type Config struct {
	Addr                 string
	LogLevel             string
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
	MaxSessions          int
	ShutdownTimeout      time.Duration
	TelemetryEnabled     bool // false when OTEL_SDK_DISABLED=true
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Addr:                 ":8080",
		LogLevel:             "info",
		SessionIdleTimeout:   30 * time.Minute,
		SessionSweepInterval: time.Minute,
		MaxSessions:          10000,
		ShutdownTimeout:      5 * time.Second,
		TelemetryEnabled:     true,
	}
}

// Load overlays environment variables on Default.
func Load() (Config, error) {
	cfg := Default()

	cfg.Addr = envString("CALC_ADDR", cfg.Addr)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.SessionIdleTimeout, err = envDuration("CALC_SESSION_IDLE_TIMEOUT", cfg.SessionIdleTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SessionSweepInterval, err = envDuration("CALC_SESSION_SWEEP_INTERVAL", cfg.SessionSweepInterval); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = envDuration("CALC_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.MaxSessions, err = envInt("CALC_MAX_SESSIONS", cfg.MaxSessions); err != nil {
		return Config{}, err
	}

	disabled, err := envBool("OTEL_SDK_DISABLED", false)
	if err != nil {
		return Config{}, err
	}
	cfg.TelemetryEnabled = !disabled

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("CALC_ADDR must not be empty")
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("CALC_SESSION_IDLE_TIMEOUT must be positive, got %s", c.SessionIdleTimeout)
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("CALC_SESSION_SWEEP_INTERVAL must be positive, got %s", c.SessionSweepInterval)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("CALC_MAX_SESSIONS must be positive, got %d", c.MaxSessions)
	}
	return nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
