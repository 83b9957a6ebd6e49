// ABOUTME: Main entry point for the newsreader CLI
// ABOUTME: Parses flags with kong and dispatches to fetch, watch or serve

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
)

// CLI structure
var CLI struct {
	Config   string `help:"Configuration file path (TOML)" type:"path" env:"NEWSREADER_CONFIG"`
	LogLevel string `help:"Log level (debug, info, warn, error)" name:"log-level"`
	Debug    bool   `help:"Enable debug logging" default:"false"`

	Fetch struct {
		Sort  string `help:"Merge strategy: concatenate or recency"`
		JSON  bool   `help:"Print entries as JSON" name:"json"`
		Links bool   `help:"Print each entry's link" default:"true" negatable:""`
	} `cmd:"" help:"Fetch every feed once and print the merged entries."`

	Watch struct {
		Interval time.Duration `help:"Refresh interval; overrides the configuration"`
		Sort     string        `help:"Merge strategy: concatenate or recency"`
	} `cmd:"" help:"Refresh feeds periodically and print entries not seen before."`

	Serve struct {
		Port string `help:"HTTP port; overrides the configuration"`
	} `cmd:"" help:"Refresh feeds in the background and serve them over HTTP."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("newsreader"),
		kong.Description("Fetches Atom news feeds and merges their entries."),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig(CLI.Config, CLI.LogLevel, CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "newsreader: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "newsreader: %v\n", err)
		os.Exit(1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch ctx.Command() {
	case "fetch":
		err = runFetch(runCtx, cfg, logger, os.Stdout, fetchOptions{
			Sort:  CLI.Fetch.Sort,
			JSON:  CLI.Fetch.JSON,
			Links: CLI.Fetch.Links,
		})

	case "watch":
		err = runWatch(runCtx, cfg, logger, os.Stdout, watchOptions{
			Interval: CLI.Watch.Interval,
			Sort:     CLI.Watch.Sort,
		})

	case "serve":
		err = runServe(runCtx, cfg, logger, serveOptions{
			Port: CLI.Serve.Port,
		})

	default:
		panic(ctx.Command())
	}

	if err != nil {
		logger.Error("Command failed", map[string]interface{}{
			"command": ctx.Command(),
			"error":   err.Error(),
		})
		stop()
		os.Exit(1)
	}
}
