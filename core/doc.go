// Package core contains the news reader's business logic.
// It does not depend on any web framework and can be used without the
// api or cmd packages.
//
// The core package is organized into several sub-packages:
//
// - domain: Entry, Source and CycleResult models
// - atom: streaming Atom parser built on goxpp
// - fetch: one-shot HTTP GET per source
// - feed: the concurrent pipeline, merge strategies, pagination and the seen-entry tracker
// - workers: periodic refresh cycles
// - errors: typed errors shared across the layers
// - interfaces: contracts for external dependencies (cache, HTTP, logger, sinks)
//
// # Usage Example
//
//	import (
//	    "newsreader-app/core/atom"
//	    "newsreader-app/core/feed"
//	    "newsreader-app/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	pipeline := feed.NewPipeline(deps, feed.WithParser(atom.NewParser()))
//	result := pipeline.Run(ctx, sources)
//	for _, e := range result.Entries {
//	    fmt.Println(e.Title, e.Link)
//	}
package core
