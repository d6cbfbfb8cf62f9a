package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options select the output of every logger created afterwards.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...).
	Level string
	// Format is "json" or "console".
	Format string
	// Out defaults to stderr so that command output on stdout stays clean.
	Out io.Writer
}

var (
	mu      sync.RWMutex
	current = Options{Level: "info", Format: "json"}
)

// Configure applies opts to loggers created after the call.
func Configure(opts Options) error {
	if opts.Level == "" {
		opts.Level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch opts.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format %s", opts.Format)
	}
	zerolog.SetGlobalLevel(lvl)
	mu.Lock()
	current = opts
	mu.Unlock()
	return nil
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger tagged with the provided component.
// The console writer is used when configured or when APP_ENV is "dev".
func NewZerologLogger(component string) Logger {
	mu.RLock()
	opts := current
	mu.RUnlock()

	var out io.Writer = os.Stderr
	if opts.Out != nil {
		out = opts.Out
	}
	if opts.Format == "console" || strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
