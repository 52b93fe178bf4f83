/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonlog

import (
	"runtime"
	"time"
)

// MeasureOption customizes what a Measure call logs.
type MeasureOption func(*measureConfig)

type measureConfig struct {
	duration bool
	memory   bool
	name     string
	static   Fields
	lazy     map[string]func(result any) any
}

// WithoutDuration drops the duration field.
func WithoutDuration() MeasureOption {
	return func(c *measureConfig) { c.duration = false }
}

// WithoutMemory drops the memory sample.
func WithoutMemory() MeasureOption {
	return func(c *measureConfig) { c.memory = false }
}

// WithName overrides the logged function name.
func WithName(name string) MeasureOption {
	return func(c *measureConfig) { c.name = name }
}

// WithField attaches a static value to the measurement event.
func WithField(name string, value any) MeasureOption {
	return func(c *measureConfig) {
		if c.static == nil {
			c.static = Fields{}
		}
		c.static[name] = value
	}
}

// WithLazyField attaches a value computed from the measured function's result
// after it returns.
func WithLazyField(name string, compute func(result any) any) MeasureOption {
	return func(c *measureConfig) {
		if c.lazy == nil {
			c.lazy = map[string]func(any) any{}
		}
		c.lazy[name] = compute
	}
}

// Measure runs fn, logging its duration, memory deltas and any configured
// fields at info level. The function's result and error pass through
// unchanged; a failed call is still measured and logged at error level.
func Measure[T any](l *Logger, msg string, fn func() (T, error), opts ...MeasureOption) (T, error) {
	cfg := measureConfig{duration: true, memory: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var before runtime.MemStats
	if cfg.memory {
		runtime.ReadMemStats(&before)
	}

	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start)

	extra := Fields{}
	if cfg.name != "" {
		extra["function"] = cfg.name
	}
	if cfg.duration {
		extra["duration"] = elapsed.Seconds()
	}
	if cfg.memory {
		var after runtime.MemStats
		runtime.ReadMemStats(&after)
		extra["memory"] = Fields{
			"heap_alloc":  int64(after.HeapAlloc) - int64(before.HeapAlloc),
			"total_alloc": int64(after.TotalAlloc - before.TotalAlloc),
		}
	}
	for name, value := range cfg.static {
		extra[name] = value
	}
	if err == nil {
		for name, compute := range cfg.lazy {
			extra[name] = compute(result)
		}
	}

	if err != nil {
		extra["error"] = err.Error()
		l.Error(msg, extra)
		return result, err
	}
	l.Info(msg, extra)
	return result, err
}
