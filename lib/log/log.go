/**
 * Copyright Ascensio System SIA 2026. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Package log provides structured logging for the DocSpace test harness
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

type Level = slog.Level

const (
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
)

var levels = []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}

// Global logger instance
var (
	loggerMu sync.RWMutex
	logger   *slog.Logger

	// OpenTelemetry integration
	otelHandler *otelslog.Handler
)

func init() {
	_ = Initialize(DefaultConfig())
}

// Config controls the harness logging output
type Config struct {
	Level        string `json:"level"`         // Log level (debug, info, warn, error)
	Format       string `json:"format"`        // Output format (console, json)
	UseTimestamp bool   `json:"use_timestamp"` // Include timestamp in logs
	OtelEnabled  bool   `json:"otel_enabled"`  // Enable OpenTelemetry integration
}

// DefaultConfig returns default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:        "info",
		Format:       "console",
		UseTimestamp: true,
		OtelEnabled:  false,
	}
}

// parseLevel converts string level to slog.Level
func parseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", levelStr)
	}
}

// Initialize sets up the global logger with the given configuration
func Initialize(config *Config) error {
	level, err := parseLevel(config.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	var output io.Writer = os.Stdout

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if config.Format == "console" {
		handler = NewConsoleHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	log := slog.New(handler)

	loggerMu.Lock()
	logger = log
	loggerMu.Unlock()

	if config.OtelEnabled {
		if err := SetupOtelIntegration(); err != nil {
			return fmt.Errorf("unable to setup otel for logging: %w", err)
		}
	}

	return nil
}

// SetupOtelIntegration routes log records into OpenTelemetry in addition to
// the console/JSON output. Used when the CI pipeline collects run traces.
func SetupOtelIntegration() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if otelHandler == nil {
		otelHandler = otelslog.NewHandler("docspace-e2e")

		multi := &multiHandler{
			handlers: []slog.Handler{logger.Handler(), otelHandler},
		}

		logger = slog.New(multi)
	}
	return nil
}

// multiHandler combines multiple slog.Handler implementations
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var lastErr error
	for _, handler := range h.handlers {
		if err := handler.Handle(ctx, r); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// GetLevel returns current logging level
func GetLevel() Level {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	for _, lvl := range levels {
		if logger.Handler().Enabled(context.Background(), lvl) {
			return lvl
		}
	}
	return LevelError
}

// WithFunc provides a way to identify package and function executed.
// Empty values in the params are not allowed.
func WithFunc(pack, fun string) *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if pack == "" || fun == "" {
		return nil
	}
	return logger.With("pack", pack, "func", fun).WithGroup(pack)
}
