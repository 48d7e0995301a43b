package logger

import (
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
)

// NoopLogger discards every entry. Used by tests and tools that run
// without a configured logger.
type NoopLogger struct{}

// NewNoopLogger creates a logger that discards everything
func NewNoopLogger() core.Logger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, map[string]any) {}

func (NoopLogger) Info(string, map[string]any) {}

func (NoopLogger) Warn(string, map[string]any) {}

func (NoopLogger) Error(string, map[string]any) {}

func (NoopLogger) Flush() error { return nil }
