// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache backs the seen-entry tracker and cycle snapshots. The pipeline
	// itself never reads it, so one-shot fetches may leave it nil.
	Cache Cache

	// HTTPClient performs feed fetches
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}

// LoggerOrNop returns the configured logger, or a NopLogger when none is set
func (d Dependencies) LoggerOrNop() Logger {
	if d.Logger == nil {
		return NopLogger{}
	}
	return d.Logger
}
