/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonlog

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// ParseLevel maps a level name to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Fields carries caller-supplied key/value pairs into an event's "extra"
// object.
type Fields map[string]any

// Origin identifies the emitting application.
type Origin struct {
	Application string `json:"application"`
	Environment string `json:"environment"`
}

// Event is the wire shape of a single log line.
type Event struct {
	Logger    Origin          `json:"logger"`
	Level     string          `json:"level"`
	Timestamp strfmt.DateTime `json:"timestamp"`
	Message   string          `json:"message"`
	Extra     Fields          `json:"extra,omitempty"`
}

// Logger writes JSON-structured events to a stream, one object per line.
// It is safe for concurrent use.
type Logger struct {
	origin Origin
	min    Level

	mu  sync.Mutex
	out io.Writer
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput redirects events away from the default stdout.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// WithMinLevel suppresses events below the given level.
func WithMinLevel(min Level) Option {
	return func(l *Logger) { l.min = min }
}

// New creates a Logger for the given application and environment.
func New(application, environment string, opts ...Option) *Logger {
	l := &Logger{
		origin: Origin{Application: application, Environment: environment},
		min:    LevelInfo,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Debug logs a message at debug level.
func (l *Logger) Debug(msg string, extra Fields) { l.log(LevelDebug, msg, extra) }

// Info logs a message at info level.
func (l *Logger) Info(msg string, extra Fields) { l.log(LevelInfo, msg, extra) }

// Warn logs a message at warning level.
func (l *Logger) Warn(msg string, extra Fields) { l.log(LevelWarn, msg, extra) }

// Error logs a message at error level.
func (l *Logger) Error(msg string, extra Fields) { l.log(LevelError, msg, extra) }

func (l *Logger) log(level Level, msg string, extra Fields) {
	if l == nil || level < l.min {
		return
	}
	if len(extra) == 0 {
		extra = nil
	}
	event := Event{
		Logger:    l.origin,
		Level:     level.String(),
		Timestamp: strfmt.DateTime(time.Now().UTC()),
		Message:   msg,
		Extra:     extra,
	}

	line, err := json.Marshal(event)
	if err != nil {
		return
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(line)
}
