package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

const (
	logFileMode = 0o600
	logDirMode  = 0o700
)

type Options struct {
	// Path is the JSON log file. Empty discards file output.
	Path  string
	Level string
	// Console, when set, also receives human-readable records.
	Console io.Writer
}

// New builds the process logger. The returned closer releases the log file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var sink io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), logDirMode); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		sink, closer = file, file
	}

	zl := zerolog.New(sink).With().Timestamp().Logger()
	handler := slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler()
	if opts.Console != nil {
		handler = slogmulti.Fanout(handler, slog.NewTextHandler(opts.Console, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(NewContextHandler(handler)), closer, nil
}

func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.New("unknown log level " + raw)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
