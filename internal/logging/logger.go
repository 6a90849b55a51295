package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logr.Logger backed by zap at the given level.
//
// path selects the sink: "" discards everything, "-" or "stderr" writes to
// stderr, anything else is a file that is appended to. The TUI owns the
// terminal, so it only ever logs to a file.
func New(level, path string) (logr.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return logr.Discard(), func() {}, nil
	}
	if path == "-" {
		path = "stderr"
	}

	cfg := zap.NewProductionConfig()
	if lvl <= zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("build logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
}
