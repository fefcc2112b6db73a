// Package logger builds the zerolog loggers used across divimap and carries
// per-instruction ids through contexts.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Config struct {
	Level     string
	Console   bool
	Component string
}

type ctxKey string

const ctxInstructionIDKey ctxKey = "instruction_id"

// WithInstructionID tags ctx with an id; an empty id gets a fresh one.
func WithInstructionID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewID()
	}
	return context.WithValue(ctx, ctxInstructionIDKey, id)
}

// InstructionID returns the id stored by WithInstructionID, if any.
func InstructionID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxInstructionIDKey).(string); ok {
		return v
	}
	return ""
}

func NewID() string {
	return uuid.NewString()
}

func Build(cfg Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "timestamp"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "msg"

	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := zerolog.InfoLevel
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "disabled", "off":
		lvl = zerolog.Disabled
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Component != "" {
		ctx = ctx.Str("component", cfg.Component)
	}
	return ctx.Logger()
}

// FromContext returns a child logger with the instruction id applied.
func FromContext(ctx context.Context, parent *zerolog.Logger) *zerolog.Logger {
	var base zerolog.Logger
	if parent == nil {
		base = zerolog.Nop()
	} else {
		base = *parent
	}
	if id := InstructionID(ctx); id != "" {
		l := base.With().Str("instruction_id", id).Logger()
		return &l
	}
	return &base
}

// OpenFile opens (appending) the log file used while the terminal UI owns
// stdout and stderr.
func OpenFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "divimap.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}
