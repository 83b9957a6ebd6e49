package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"newsreader-app/core/domain"
	"newsreader-app/core/interfaces"
	"newsreader-app/infrastructure/cache/memory"
	"newsreader-app/infrastructure/cache/sqlite"
	"newsreader-app/pkg/config"
)

const testFeed = `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>old</id><title>Older story</title>
    <link rel="alternate" href="https://example.com/old"/>
    <updated>2024-02-01T08:00:00Z</updated>
  </entry>
  <entry>
    <id>new</id><title>Newer story</title>
    <updated>2024-02-02T08:00:00Z</updated>
  </entry>
</feed>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		io.WriteString(w, testFeed)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, urls ...string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Feeds = domain.SourcesFromURLs(urls)
	cfg.Fetch.Timeout = 5 * time.Second
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return cfg
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "newsreader.toml")
	data := `
[log]
level = "warn"

[[feeds]]
name = "local"
url = "https://example.com/feed.atom"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, "", false)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn", cfg.Log.Level)
	}
	if len(cfg.Feeds) != 1 || cfg.Feeds[0].Name != "local" {
		t.Errorf("Feeds = %+v", cfg.Feeds)
	}

	cfg, err = loadConfig(path, "error", true)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("--debug should win, got %s", cfg.Log.Level)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	os.WriteFile(path, []byte("[merge]\nstrategy = \"random\"\n"), 0o600)

	if _, err := loadConfig(path, "", false); err == nil {
		t.Error("loadConfig should reject an unknown merge strategy")
	}
}

func TestNewPipeline_SortOverride(t *testing.T) {
	cfg := testConfig(t, "https://example.com/a.atom")

	p, err := newPipeline(cfg, newDependencies(cfg, interfaces.NopLogger{}, nil), "recency")
	if err != nil {
		t.Fatalf("newPipeline returned error: %v", err)
	}
	if p.Config().Strategy != domain.MergeByRecency {
		t.Errorf("Strategy = %s, want recency", p.Config().Strategy)
	}

	if _, err := newPipeline(cfg, newDependencies(cfg, interfaces.NopLogger{}, nil), "sideways"); err == nil {
		t.Error("newPipeline should reject an unknown sort")
	}
}

func TestNewCache_RedisFallback(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Type = "redis"
	cfg.Cache.Redis.Address = ""

	cache, closeCache := newCache(cfg, interfaces.NopLogger{})
	defer closeCache()

	if _, ok := cache.(*memory.MemoryCache); !ok {
		t.Errorf("unreachable redis should fall back to memory, got %T", cache)
	}
}

func TestRunFetch_Text(t *testing.T) {
	srv := feedServer(t)
	cfg := testConfig(t, srv.URL+"/a.atom")

	var out bytes.Buffer
	err := runFetch(context.Background(), cfg, interfaces.NopLogger{}, &out, fetchOptions{Links: true})
	if err != nil {
		t.Fatalf("runFetch returned error: %v", err)
	}

	got := out.String()
	want := "Thu, 01 Feb 2024 08:00:00 UTC\nOlder story\nhttps://example.com/old\n\n" +
		"Fri, 02 Feb 2024 08:00:00 UTC\nNewer story\n\n"
	if got != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}

func TestRunFetch_JSONRecency(t *testing.T) {
	srv := feedServer(t)
	cfg := testConfig(t, srv.URL+"/a.atom")

	var out bytes.Buffer
	err := runFetch(context.Background(), cfg, interfaces.NopLogger{}, &out, fetchOptions{Sort: "recency", JSON: true})
	if err != nil {
		t.Fatalf("runFetch returned error: %v", err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "new" {
		t.Errorf("entries = %+v, want newest first", entries)
	}
}

func TestRunFetch_FailingSourceIsSkipped(t *testing.T) {
	srv := feedServer(t)
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	cfg := testConfig(t, down.URL+"/feed", srv.URL+"/a.atom")

	var out bytes.Buffer
	if err := runFetch(context.Background(), cfg, interfaces.NopLogger{}, &out, fetchOptions{}); err != nil {
		t.Fatalf("runFetch returned error: %v", err)
	}
	if strings.Count(out.String(), "story") != 2 {
		t.Errorf("expected both entries of the healthy feed, got %q", out.String())
	}
}

func TestRunWatch_PrintsEachEntryOnce(t *testing.T) {
	srv := feedServer(t)
	cfg := testConfig(t, srv.URL+"/a.atom")

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, cfg, interfaces.NopLogger{}, out, watchOptions{Interval: 20 * time.Millisecond})
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("runWatch returned error: %v", err)
	}
	if n := strings.Count(out.String(), "Newer story"); n != 1 {
		t.Errorf("entry printed %d times, want 1", n)
	}
}

func TestNewCache_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Type = "sqlite"
	cfg.Cache.SQLite.Path = filepath.Join(t.TempDir(), "seen.db")

	cache, closeCache := newCache(cfg, interfaces.NopLogger{})
	defer closeCache()

	if _, ok := cache.(*sqlite.Client); !ok {
		t.Errorf("cache = %T, want *sqlite.Client", cache)
	}
}

func TestNewDependencies_CarriesCache(t *testing.T) {
	cfg := config.Default()
	cache := memory.NewMemoryCache()

	deps := newDependencies(cfg, interfaces.NopLogger{}, cache)

	if deps.Cache != cache {
		t.Error("dependencies should carry the configured cache")
	}
	if deps.HTTPClient == nil {
		t.Error("dependencies should include an HTTP client")
	}
	if newDependencies(cfg, interfaces.NopLogger{}, nil).Cache != nil {
		t.Error("one-shot dependencies should have no cache")
	}
}

type countingTrigger struct {
	calls atomic.Int32
	err   error
}

func (c *countingTrigger) RefreshNow() error {
	c.calls.Add(1)
	return c.err
}

func TestRefreshOnSignal(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"triggers a cycle per signal", nil},
		{"keeps listening after a failed trigger", errors.New("refresher not running")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			sig := make(chan os.Signal)
			trigger := &countingTrigger{err: tt.err}

			done := make(chan struct{})
			go func() {
				refreshOnSignal(ctx, sig, trigger, interfaces.NopLogger{})
				close(done)
			}()

			sig <- syscall.SIGHUP
			sig <- syscall.SIGHUP
			cancel()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("refreshOnSignal did not return after cancellation")
			}
			if got := trigger.calls.Load(); got != 2 {
				t.Errorf("RefreshNow called %d times, want 2", got)
			}
		})
	}
}
