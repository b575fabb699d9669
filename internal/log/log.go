// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log provides the structured logging interface used throughout
// the core. It mirrors the Geth-style leveled methods the rest of the
// tree is written against, backed by zap in production and a no-op
// sink in tests and benchmarks.
package log

import "go.uber.org/zap"

// Logger is the structured logging interface every component
// constructor accepts. Fields are zap.Field so callers get typed,
// allocation-free structured logging rather than Sprintf formatting.
type Logger interface {
	Trace(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Crit(msg string, fields ...zap.Field)

	// With returns a derived logger that always includes the given fields.
	With(fields ...zap.Field) Logger
}

// zapLogger adapts a *zap.Logger to Logger. Trace and Crit have no
// direct zap equivalent; Trace maps to Debug, Crit maps to Fatal-less
// Error plus a "crit" marker field so operators can grep for it.
type zapLogger struct {
	z *zap.Logger
}

// NewZap wraps an existing *zap.Logger.
func NewZap(z *zap.Logger) Logger {
	return &zapLogger{z: z}
}

// NewProduction builds a production JSON logger at the given level name
// ("trace", "debug", "info", "warn", "error").
func NewProduction(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(normalizeLevel(level))); err != nil {
		return nil, err
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZap(z), nil
}

func normalizeLevel(level string) string {
	if level == "trace" || level == "crit" {
		return "debug"
	}
	if level == "" {
		return "info"
	}
	return level
}

func (l *zapLogger) Trace(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }
func (l *zapLogger) Crit(msg string, fields ...zap.Field) {
	l.z.Error(msg, append(fields, zap.Bool("crit", true))...)
}

func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{z: l.z.With(fields...)}
}

// NoLog is a no-op Logger used by tests and benchmarks.
type NoLog struct{}

// NewNoOpLogger returns a logger that discards everything.
func NewNoOpLogger() Logger { return NoLog{} }

func (NoLog) Trace(string, ...zap.Field) {}
func (NoLog) Debug(string, ...zap.Field) {}
func (NoLog) Info(string, ...zap.Field)  {}
func (NoLog) Warn(string, ...zap.Field)  {}
func (NoLog) Error(string, ...zap.Field) {}
func (NoLog) Crit(string, ...zap.Field)  {}
func (n NoLog) With(...zap.Field) Logger { return n }
