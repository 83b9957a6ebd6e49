package interfaces

// Logger defines the interface for logging throughout the application.
// The core never imports a logging library directly; it logs through this
// abstraction and the binaries plug in logrus.
//
// Example usage:
//
//	logger.Debug("Parsed feed", map[string]interface{}{
//		"url":     "https://example.com/feed.atom",
//		"entries": 42,
//	})
//
//	logger.Error("Failed to parse feed", map[string]interface{}{
//		"url":   "https://example.com/feed.atom",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Used when no logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
