// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// go-apprun module.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// An application logger is normally obtained with [New], which reads the
// "Logging" section of the merged configuration and binds the logger to the
// application name.
package logger

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger

	// closer is the log file opened by [NewFromOptions], if any.
	closer io.Closer
}

// configureGlobals switches the zerolog caller field to "func" and makes it
// record the fully-qualified function name instead of file:line.
func configureGlobals() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// NewLogger constructs a JSON *Logger writing to os.Stdout for the given
// role label (usually the application name).
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role;
//   - a timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	configureGlobals()

	logger := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger}
}

// NewBootstrap returns a human-readable console logger writing to w. It is
// meant for the diagnostics emitted while the configuration itself is being
// assembled, before [New] can be called.
func NewBootstrap(w io.Writer, role string) *Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{Logger: logger}
}

// NewFromOptions builds the application logger described by opts and binds
// it to appName. Every entry carries "role" (appName) and "instance", a
// random id distinguishing concurrent runs of the same application.
//
// opts is expected to be normalized by [OptionsFrom]; an unknown level
// falls back to info. A file output stays open until [Logger.Close].
func NewFromOptions(opts Options, appName string) (*Logger, error) {
	configureGlobals()

	w, closer, err := opts.writer()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(level).With().
		Str("role", appName).
		Str("instance", newInstanceID()).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger, closer: closer}, nil
}

// New reads the logging options from settings, applies overrides in order
// and returns the application logger bound to appName.
func New(settings Settings, appName string, overrides ...Override) (*Logger, error) {
	opts, err := OptionsFrom(settings)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(&opts)
	}

	return NewFromOptions(opts, appName)
}

// Close releases the log file opened for a file output. Loggers writing to
// stdout, stderr or a caller supplied writer have nothing to close.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

// newInstanceID returns a time-ordered UUIDv7, falling back to a random
// UUIDv4 if the clock sequence cannot be read.
func newInstanceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger. Closing the child is a no-op; the
// output belongs to the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger()}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its global logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}
