// ABOUTME: Refresher re-runs the feed pipeline on an interval and keeps the latest cycle
// ABOUTME: Cycles run one at a time on a single goroutine and are handed to every sink

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"newsreader-app/core/domain"
	"newsreader-app/core/interfaces"
)

// CycleRunner runs one fetch-parse-merge cycle. *feed.Pipeline implements it.
type CycleRunner interface {
	Run(ctx context.Context, sources []domain.FeedSource) *domain.CycleResult
}

// RefresherConfig holds configuration for the refresher
type RefresherConfig struct {
	Sources  []domain.FeedSource
	Interval time.Duration

	// OnCycle, when set, is called after each cycle has been delivered
	OnCycle func(*domain.CycleResult)
}

// DefaultRefresherConfig returns the default refresher configuration
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Interval: 15 * time.Minute,
	}
}

// Refresher manages the background refresh loop
type Refresher struct {
	runner  CycleRunner
	sinks   []interfaces.EntrySink
	logger  interfaces.Logger
	config  RefresherConfig
	latest  atomic.Pointer[domain.CycleResult]
	trigger chan struct{}
	cycles  atomic.Int64

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewRefresher creates a new refresher
func NewRefresher(runner CycleRunner, config RefresherConfig, logger interfaces.Logger, sinks ...interfaces.EntrySink) *Refresher {
	if config.Interval <= 0 {
		config.Interval = DefaultRefresherConfig().Interval
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	return &Refresher{
		runner:  runner,
		sinks:   sinks,
		logger:  logger,
		config:  config,
		trigger: make(chan struct{}, 1),
	}
}

// Start runs a cycle immediately and then one per interval until Stop
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true

	r.wg.Add(1)
	go r.loop(ctx)

	r.logger.Info("Feed refresher started", map[string]interface{}{
		"interval": r.config.Interval.String(),
		"sources":  len(r.config.Sources),
	})
	return nil
}

// Stop cancels the loop and waits for an in-flight cycle to finish
func (r *Refresher) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}

	r.cancel()
	r.wg.Wait()
	r.running = false

	r.logger.Info("Feed refresher stopped", map[string]interface{}{
		"cycles": r.cycles.Load(),
	})
	return nil
}

// RefreshNow asks the loop to run a cycle without waiting for the ticker.
// A request made while one is already pending is coalesced.
func (r *Refresher) RefreshNow() error {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()

	if !running {
		return ErrWorkerNotRunning
	}

	select {
	case r.trigger <- struct{}{}:
	default:
	}
	return nil
}

// Latest returns the most recent cycle, or nil before the first completes
func (r *Refresher) Latest() *domain.CycleResult {
	return r.latest.Load()
}

// Cycles returns how many cycles have completed
func (r *Refresher) Cycles() int64 {
	return r.cycles.Load()
}

// Sources returns the sources refreshed each cycle
func (r *Refresher) Sources() []domain.FeedSource {
	return r.config.Sources
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	r.runCycle(ctx)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.runCycle(ctx)
		case <-r.trigger:
			r.runCycle(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	cycle := r.runner.Run(ctx, r.config.Sources)
	r.latest.Store(cycle)
	r.cycles.Add(1)

	for _, sink := range r.sinks {
		if err := sink.Deliver(ctx, cycle); err != nil {
			r.logger.Warn("Failed to deliver entries", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if r.config.OnCycle != nil {
		r.config.OnCycle(cycle)
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "refresher is not running"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
