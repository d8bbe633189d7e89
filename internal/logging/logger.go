// Package logging provides the logging abstraction used by every component of
// the balance and metrics pipeline. Components depend on the Logger interface
// only; the concrete implementation is chosen once by the container.
package logging

// Logger defines structured logging for the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a logger carrying an error field
	WithError(err error) Logger

	// WithField returns a logger carrying a single field
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger carrying several fields
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}
