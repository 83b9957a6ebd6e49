// ABOUTME: Feed pipeline fetches and parses every source concurrently and merges the results
// ABOUTME: Failures are contained per source: a failing feed contributes no entries and is logged

package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"newsreader-app/core/atom"
	"newsreader-app/core/domain"
	coreerrors "newsreader-app/core/errors"
	"newsreader-app/core/fetch"
	"newsreader-app/core/interfaces"
)

// Config controls how a cycle is executed
type Config struct {
	// MaxConcurrency bounds the number of sources in flight
	MaxConcurrency int

	// FetchTimeout bounds fetch plus parse of a single source; zero disables it
	FetchTimeout time.Duration

	// Strategy selects the merge; MergeConcatenate unless set
	Strategy domain.MergeStrategy

	// RateLimit throttles outgoing fetches; rate.Inf disables it
	RateLimit rate.Limit
	RateBurst int
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 10,
		FetchTimeout:   30 * time.Second,
		Strategy:       domain.MergeConcatenate,
		RateLimit:      rate.Inf,
		RateBurst:      1,
	}
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithConfig replaces the whole configuration
func WithConfig(cfg Config) Option {
	return func(p *Pipeline) {
		p.config = cfg
	}
}

// WithParser replaces the Atom parser
func WithParser(parser interfaces.FeedParser) Option {
	return func(p *Pipeline) {
		p.parser = parser
	}
}

// WithMergeStrategy selects how source lists are combined
func WithMergeStrategy(strategy domain.MergeStrategy) Option {
	return func(p *Pipeline) {
		p.config.Strategy = strategy
	}
}

// WithMaxConcurrency bounds parallel source processing
func WithMaxConcurrency(n int) Option {
	return func(p *Pipeline) {
		p.config.MaxConcurrency = n
	}
}

// WithFetchTimeout bounds each source's fetch and parse
func WithFetchTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.config.FetchTimeout = d
	}
}

// WithRateLimit throttles outgoing fetches to limit per second
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(p *Pipeline) {
		p.config.RateLimit = limit
		p.config.RateBurst = burst
	}
}

// Pipeline runs fetch, parse and merge over a set of sources
type Pipeline struct {
	logger  interfaces.Logger
	fetcher *fetch.Fetcher
	parser  interfaces.FeedParser
	config  Config
	limiter *rate.Limiter
}

// NewPipeline creates a pipeline instance
func NewPipeline(deps interfaces.Dependencies, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:  deps.LoggerOrNop(),
		fetcher: fetch.NewFetcher(deps.HTTPClient),
		config:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.parser == nil {
		p.parser = atom.NewParser()
	}
	if p.config.MaxConcurrency < 1 {
		p.config.MaxConcurrency = 1
	}
	if !p.config.Strategy.Valid() {
		p.config.Strategy = domain.MergeConcatenate
	}
	if p.config.RateLimit == 0 {
		p.config.RateLimit = rate.Inf
	}
	if p.config.RateBurst < 1 {
		p.config.RateBurst = 1
	}
	p.limiter = rate.NewLimiter(p.config.RateLimit, p.config.RateBurst)

	return p
}

// Config returns the effective configuration
func (p *Pipeline) Config() Config {
	return p.config
}

// Run processes every source and returns the merged cycle. It never fails:
// a source that cannot be fetched or parsed contributes an empty list and
// its error is recorded in the per-source result.
func (p *Pipeline) Run(ctx context.Context, sources []domain.FeedSource) *domain.CycleResult {
	started := time.Now()
	results := make([]domain.SourceResult, len(sources))

	semaphore := make(chan struct{}, p.config.MaxConcurrency)
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src domain.FeedSource) {
			defer wg.Done()
			results[i] = p.runSource(ctx, semaphore, src)
		}(i, src)
	}

	wg.Wait()

	lists := make([][]domain.Entry, len(results))
	failed := 0
	for i, r := range results {
		lists[i] = r.Entries
		if !r.OK() {
			failed++
		}
	}

	cycle := &domain.CycleResult{
		Entries:    Merge(lists, p.config.Strategy),
		Sources:    results,
		Strategy:   p.config.Strategy,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}

	p.logger.Info("Feed cycle completed", map[string]interface{}{
		"sources":  len(sources),
		"failed":   failed,
		"entries":  len(cycle.Entries),
		"strategy": string(cycle.Strategy),
		"duration": cycle.Duration().String(),
	})

	return cycle
}

// RunAsync runs the cycle on its own goroutine. The channel receives exactly
// one result and is then closed.
func (p *Pipeline) RunAsync(ctx context.Context, sources []domain.FeedSource) <-chan *domain.CycleResult {
	out := make(chan *domain.CycleResult, 1)
	go func() {
		defer close(out)
		out <- p.Run(ctx, sources)
	}()
	return out
}

// Deliver runs the cycle and hands the result to each sink in order on the
// calling goroutine. Only sink errors are returned.
func (p *Pipeline) Deliver(ctx context.Context, sources []domain.FeedSource, sinks ...interfaces.EntrySink) (*domain.CycleResult, error) {
	cycle := p.Run(ctx, sources)

	var errs []error
	for _, sink := range sinks {
		if err := sink.Deliver(ctx, cycle); err != nil {
			errs = append(errs, err)
		}
	}
	return cycle, errors.Join(errs...)
}

// runSource fetches and parses one source, containing every failure
func (p *Pipeline) runSource(ctx context.Context, semaphore chan struct{}, src domain.FeedSource) (result domain.SourceResult) {
	start := time.Now()
	result.Source = src

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic while processing feed: %v", r)
		}
		result.Duration = time.Since(start)
		if result.Err != nil {
			result.Entries = []domain.Entry{}
			p.logFailure(result)
		}
	}()

	if err := src.Validate(); err != nil {
		result.Err = &coreerrors.ValidationError{Field: "url", Message: err.Error()}
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Err = &coreerrors.FetchError{URL: src.URL, Cause: err}
		return result
	}

	select {
	case semaphore <- struct{}{}:
		defer func() { <-semaphore }()
	case <-ctx.Done():
		result.Err = &coreerrors.FetchError{URL: src.URL, Cause: ctx.Err()}
		return result
	}

	if err := p.limiter.Wait(ctx); err != nil {
		result.Err = &coreerrors.FetchError{URL: src.URL, Cause: err}
		return result
	}

	if p.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.FetchTimeout)
		defer cancel()
	}

	res, err := p.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		result.Err = err
		return result
	}
	result.StatusCode = res.StatusCode

	if err := res.Err(); err != nil {
		res.Close()
		result.Err = err
		return result
	}

	entries, err := p.parser.Parse(res.Body)
	if err != nil {
		result.Err = coreerrors.WrapError(err, src.URL)
		return result
	}
	result.Entries = entries

	p.logger.Debug("Parsed feed", map[string]interface{}{
		"url":      src.URL,
		"source":   src.Label(),
		"entries":  len(entries),
		"duration": time.Since(start).String(),
	})

	return result
}

func (p *Pipeline) logFailure(result domain.SourceResult) {
	fields := map[string]interface{}{
		"url":    result.Source.URL,
		"source": result.Source.Label(),
		"error":  result.Err.Error(),
	}
	if result.StatusCode != 0 {
		fields["status"] = result.StatusCode
	}
	if kind := coreerrors.KindOf(result.Err); kind != 0 {
		fields["parse_error"] = kind.String()
	}
	p.logger.Error("Failed to load feed", fields)
}
