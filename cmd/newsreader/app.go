// ABOUTME: Wiring for the newsreader commands
// ABOUTME: Builds logger, cache, HTTP client and pipeline from configuration

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"newsreader-app/api"
	"newsreader-app/api/handlers"
	"newsreader-app/core/atom"
	"newsreader-app/core/feed"
	"newsreader-app/core/interfaces"
	"newsreader-app/core/workers"
	"newsreader-app/infrastructure/cache/memory"
	"newsreader-app/infrastructure/cache/redis"
	"newsreader-app/infrastructure/cache/sqlite"
	stdhttp "newsreader-app/infrastructure/http/standard"
	"newsreader-app/infrastructure/logger/logrus"
	"newsreader-app/infrastructure/sink/console"
	"newsreader-app/infrastructure/sink/snapshot"
	"newsreader-app/pkg/config"
)

// shutdownTimeout bounds graceful HTTP shutdown
const shutdownTimeout = 30 * time.Second

type fetchOptions struct {
	Sort  string
	JSON  bool
	Links bool
}

type watchOptions struct {
	Interval time.Duration
	Sort     string
}

type serveOptions struct {
	Port string
}

// loadConfig reads the configuration and applies global flag overrides
func loadConfig(path, logLevel string, debug bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logrus.New(logrus.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// newCache returns the configured cache and a function releasing it. A Redis
// or SQLite cache that cannot be opened falls back to memory.
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	switch cfg.Cache.Type {
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err == nil {
			logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.Cache.SQLite.Path,
			})
			return sqliteCache, func() { sqliteCache.Close() }
		}
		logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})

	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err == nil {
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
			return redisCache, func() { redisCache.Close() }
		}
		logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Debug("Using memory cache", nil)
	return memory.NewMemoryCache(), func() {}
}

// newDependencies wires the HTTP client and logger around cache, which may be
// nil for one-shot commands
func newDependencies(cfg *config.Config, logger interfaces.Logger, cache interfaces.Cache) interfaces.Dependencies {
	httpOpts := []stdhttp.Option{stdhttp.WithUserAgent(cfg.Fetch.UserAgent)}
	if cfg.Log.Level == "debug" {
		httpOpts = append(httpOpts, stdhttp.WithRequestLogging(logger))
	}

	return interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.Fetch.Timeout, httpOpts...),
		Logger:     logger,
	}
}

// newPipeline builds the feed pipeline. A non-empty sort overrides the
// configured merge strategy.
func newPipeline(cfg *config.Config, deps interfaces.Dependencies, sort string) (*feed.Pipeline, error) {
	strategy := cfg.MergeStrategy()
	if sort != "" {
		s, err := feed.ParseMergeStrategy(sort)
		if err != nil {
			return nil, err
		}
		strategy = s
	}

	parserOpts := []atom.Option{atom.WithStrict(cfg.Parse.Strict)}
	if cfg.Parse.LenientTimestamps {
		parserOpts = append(parserOpts, atom.WithLenientTimestamps(deps.LoggerOrNop()))
	}

	return feed.NewPipeline(deps,
		feed.WithParser(atom.NewParser(parserOpts...)),
		feed.WithMergeStrategy(strategy),
		feed.WithMaxConcurrency(cfg.Fetch.MaxConcurrency),
		feed.WithFetchTimeout(cfg.Fetch.Timeout),
		feed.WithRateLimit(rate.Limit(cfg.Fetch.RatePerSecond), 1),
	), nil
}

// runFetch runs one cycle and prints the merged entries to out
func runFetch(ctx context.Context, cfg *config.Config, logger interfaces.Logger, out io.Writer, opts fetchOptions) error {
	pipeline, err := newPipeline(cfg, newDependencies(cfg, logger, nil), opts.Sort)
	if err != nil {
		return err
	}

	format := console.FormatText
	if opts.JSON {
		format = console.FormatJSON
	}
	sink := console.New(out, console.WithFormat(format), console.WithLinks(opts.Links))

	_, err = pipeline.Deliver(ctx, cfg.Feeds, sink)
	return err
}

// runWatch refreshes until ctx is done, printing only entries not seen before
func runWatch(ctx context.Context, cfg *config.Config, logger interfaces.Logger, out io.Writer, opts watchOptions) error {
	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	deps := newDependencies(cfg, logger, cache)
	pipeline, err := newPipeline(cfg, deps, opts.Sort)
	if err != nil {
		return err
	}

	tracker, err := feed.NewEntryTracker(deps, cfg.Cache.SeenTTL)
	if err != nil {
		return err
	}
	sink := console.New(out, console.WithFilter(tracker.Fresh), console.WithLinks(true))

	interval := cfg.Refresh.Interval
	if opts.Interval > 0 {
		interval = opts.Interval
	}

	refresher := workers.NewRefresher(pipeline, workers.RefresherConfig{
		Sources:  cfg.Feeds,
		Interval: interval,
	}, logger, sink)

	if err := refresher.Start(); err != nil {
		return err
	}
	go refreshOnSignal(ctx, notifyHangup(ctx), refresher, logger)

	<-ctx.Done()
	return refresher.Stop()
}

// runServe refreshes in the background and serves the latest cycle over HTTP
func runServe(ctx context.Context, cfg *config.Config, logger interfaces.Logger, opts serveOptions) error {
	port := cfg.Server.Port
	if opts.Port != "" {
		port = opts.Port
	}

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	deps := newDependencies(cfg, logger, cache)
	pipeline, err := newPipeline(cfg, deps, "")
	if err != nil {
		return err
	}

	snapshots := snapshot.New(deps.Cache, snapshot.DefaultKey, 0)
	refresher := workers.NewRefresher(pipeline, workers.RefresherConfig{
		Sources:  cfg.Feeds,
		Interval: cfg.Refresh.Interval,
	}, logger, snapshots)

	server := api.NewServer(api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: time.Minute,
		RateBurst:  cfg.Server.RateBurst,
	}, handlers.NewEntriesHandler(refresher, snapshots))
	defer server.Close()

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := refresher.Start(); err != nil {
		return err
	}
	defer refresher.Stop()
	go refreshOnSignal(ctx, notifyHangup(ctx), refresher, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
			"feeds":   len(cfg.Feeds),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server stopped", nil)
	return nil
}

// cycleTrigger starts a cycle outside the refresh schedule
type cycleTrigger interface {
	RefreshNow() error
}

// notifyHangup delivers SIGHUP until ctx is done
func notifyHangup(ctx context.Context) <-chan os.Signal {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP)
	go func() {
		<-ctx.Done()
		signal.Stop(sig)
	}()
	return sig
}

// refreshOnSignal runs an immediate cycle for each value received on sig
// until ctx is done
func refreshOnSignal(ctx context.Context, sig <-chan os.Signal, trigger cycleTrigger, logger interfaces.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sig:
			logger.Info("Refresh requested", map[string]interface{}{
				"signal": s.String(),
			})
			if err := trigger.RefreshNow(); err != nil {
				logger.Warn("Failed to trigger refresh", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
