package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/q2019715/jieci-dictionary/internal/config"
	"github.com/q2019715/jieci-dictionary/pkg/ctxutil"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output.
// Format "text" produces human-readable output with source info.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Output is always os.Stderr; stdout is reserved for tool results.
// The tool name and run id found in ctx are attached to every record.
func NewLogger(ctx context.Context, cfg config.LogConfig) *slog.Logger {
	logger := withRun(ctx, newLogger(os.Stderr, cfg))
	slog.SetDefault(logger)

	return logger
}

func withRun(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if tool := ctxutil.ToolFromCtx(ctx); tool != "" {
		logger = logger.With(slog.String("tool", tool))
	}
	if id, ok := ctxutil.RunIDFromCtx(ctx); ok {
		logger = logger.With(slog.String("run_id", id.String()))
	}
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
