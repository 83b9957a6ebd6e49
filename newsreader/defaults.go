// ABOUTME: Default values for the newsreader library client
// ABOUTME: Mirrors the pipeline defaults and the two built-in feeds

package newsreader

import (
	"time"

	"newsreader-app/pkg/config"
)

const (
	// DefaultFetchTimeout bounds fetch and parse of one source
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxConcurrency bounds sources processed in parallel
	DefaultMaxConcurrency = 10

	// DefaultUserAgent is sent with every feed request
	DefaultUserAgent = "NewsReader/1.0"
)

// DefaultSources returns a copy of the built-in feed list
func DefaultSources() []Source {
	out := make([]Source, len(config.DefaultFeeds))
	copy(out, config.DefaultFeeds)
	return out
}
