package fixture

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// BindEvent describes one key being written, compared or converted.
type BindEvent struct {
	Op       string
	Key      string
	Path     string
	Value    string
	Matched  bool
	Duration time.Duration
	Err      error
}

// BindLogger records binding events.
type BindLogger interface {
	LogBinding(BindEvent)
}

// BindLoggerFunc adapts a function to BindLogger.
type BindLoggerFunc func(BindEvent)

// LogBinding implements BindLogger.
func (f BindLoggerFunc) LogBinding(event BindEvent) {
	if f != nil {
		f(event)
	}
}

type noopBindLogger struct{}

func (noopBindLogger) LogBinding(BindEvent) {}

// WithLogger attaches a binding logger to the record.
func WithLogger(logger BindLogger) Option {
	return func(cfg *recordConfig) {
		if logger == nil {
			cfg.logger = noopBindLogger{}
			return
		}
		cfg.logger = logger
	}
}

type logrBindLogger struct {
	logger logr.Logger
}

// LogrLogger adapts a logr.Logger. Failures log at error level, successful
// events at V(1).
func LogrLogger(logger logr.Logger) BindLogger {
	return logrBindLogger{logger: logger}
}

func (l logrBindLogger) LogBinding(event BindEvent) {
	kv := []any{
		"op", event.Op,
		"key", event.Key,
		"value", event.Value,
		"duration", event.Duration,
	}
	if event.Path != "" && event.Path != event.Key {
		kv = append(kv, "path", event.Path)
	}
	if event.Err != nil {
		l.logger.Error(event.Err, "fixture binding failed", kv...)
		return
	}
	if event.Op == OpMatch {
		kv = append(kv, "matched", event.Matched)
	}
	l.logger.V(1).Info("fixture binding", kv...)
}

// WithLogr logs binding events through logger.
func WithLogr(logger logr.Logger) Option {
	return WithLogger(LogrLogger(logger))
}

// WithZap logs binding events through a zap logger.
func WithZap(logger *zap.Logger) Option {
	if logger == nil {
		return WithLogger(nil)
	}
	return WithLogr(zapr.NewLogger(logger))
}
