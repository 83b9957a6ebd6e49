// ABOUTME: Main client for the newsreader library
// ABOUTME: Fetches, parses and merges Atom feeds without any HTTP server dependencies

package newsreader

import (
	"context"
	"io"

	"newsreader-app/core/atom"
	"newsreader-app/core/feed"
	"newsreader-app/core/interfaces"
)

// Client is the main entry point for the newsreader library
type Client struct {
	pipeline *feed.Pipeline
	parser   *atom.Parser
	config   Config
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if config.Logger == nil {
		config.Logger = interfaces.NopLogger{}
	}

	var parserOpts []atom.Option
	if config.LenientTimestamps {
		parserOpts = append(parserOpts, atom.WithLenientTimestamps(config.Logger))
	}
	parser := atom.NewParser(parserOpts...)

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
	}

	pipeline := feed.NewPipeline(deps,
		feed.WithParser(parser),
		feed.WithMergeStrategy(config.Strategy),
		feed.WithMaxConcurrency(config.MaxConcurrency),
		feed.WithFetchTimeout(config.FetchTimeout),
		feed.WithRateLimit(config.RateLimit, config.RateBurst),
	)

	return &Client{
		pipeline: pipeline,
		parser:   parser,
		config:   config,
	}, nil
}

// Sources returns the configured feeds
func (c *Client) Sources() []Source {
	return append([]Source(nil), c.config.Sources...)
}

// Fetch runs one cycle over the configured sources. Per-source failures are
// reported in the cycle, not as an error.
func (c *Client) Fetch(ctx context.Context) (*Cycle, error) {
	return c.FetchSources(ctx, c.config.Sources)
}

// FetchSources runs one cycle over the given sources
func (c *Client) FetchSources(ctx context.Context, sources []Source) (*Cycle, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	return c.pipeline.Run(ctx, sources), nil
}

// Entries runs one cycle and returns only the merged entries
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	cycle, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return cycle.Entries, nil
}

// Parse parses an Atom document from rc, closing it
func (c *Client) Parse(rc io.ReadCloser) ([]Entry, error) {
	entries, err := c.parser.Parse(rc)
	if err != nil {
		return nil, classify(err)
	}
	return entries, nil
}

// SourceError returns the first per-source failure of cycle as a library
// error, or nil when every source succeeded
func SourceError(cycle *Cycle) error {
	failed := cycle.Failed()
	if len(failed) == 0 {
		return nil
	}
	return classify(failed[0].Err)
}
