// ABOUTME: Snapshot sink stores each merged cycle as JSON in a Cache
// ABOUTME: Lets another process or a restarted server read the last cycle back

package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"newsreader-app/core/domain"
	coreerrors "newsreader-app/core/errors"
	"newsreader-app/core/interfaces"
)

// DefaultKey is where the latest cycle is stored
const DefaultKey = "newsreader:snapshot:latest"

// Snapshot is the stored form of a cycle
type Snapshot struct {
	Entries    []domain.Entry   `json:"entries"`
	Sources    []SourceSnapshot `json:"sources"`
	Strategy   string           `json:"strategy"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// SourceSnapshot is the stored form of a per-source result
type SourceSnapshot struct {
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	Entries    int           `json:"entries"`
	Error      string        `json:"error,omitempty"`
	StatusCode int           `json:"status_code,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// FromCycle converts a cycle for storage
func FromCycle(c *domain.CycleResult) Snapshot {
	s := Snapshot{
		Entries:    c.Entries,
		Sources:    make([]SourceSnapshot, 0, len(c.Sources)),
		Strategy:   string(c.Strategy),
		StartedAt:  c.StartedAt,
		FinishedAt: c.FinishedAt,
	}
	for _, r := range c.Sources {
		src := SourceSnapshot{
			Name:       r.Source.Name,
			URL:        r.Source.URL,
			Entries:    len(r.Entries),
			StatusCode: r.StatusCode,
			Duration:   r.Duration,
		}
		if r.Err != nil {
			src.Error = r.Err.Error()
		}
		s.Sources = append(s.Sources, src)
	}
	return s
}

// ToCycle rebuilds a cycle. Per-source entry lists are not stored, so only
// the merged list is populated.
func (s Snapshot) ToCycle() *domain.CycleResult {
	c := &domain.CycleResult{
		Entries:    s.Entries,
		Sources:    make([]domain.SourceResult, 0, len(s.Sources)),
		Strategy:   domain.MergeStrategy(s.Strategy),
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
	}
	if c.Entries == nil {
		c.Entries = []domain.Entry{}
	}
	for _, src := range s.Sources {
		r := domain.SourceResult{
			Source:     domain.FeedSource{Name: src.Name, URL: src.URL},
			StatusCode: src.StatusCode,
			Duration:   src.Duration,
		}
		if src.Error != "" {
			r.Err = errors.New(src.Error)
		}
		c.Sources = append(c.Sources, r)
	}
	return c
}

// Sink writes snapshots to a cache
type Sink struct {
	cache interfaces.Cache
	key   string
	ttl   time.Duration
}

// New creates a snapshot sink. An empty key selects DefaultKey; zero ttl never expires.
func New(cache interfaces.Cache, key string, ttl time.Duration) *Sink {
	if key == "" {
		key = DefaultKey
	}
	return &Sink{cache: cache, key: key, ttl: ttl}
}

// Deliver stores the cycle
func (s *Sink) Deliver(ctx context.Context, result *domain.CycleResult) error {
	data, err := json.Marshal(FromCycle(result))
	if err != nil {
		return coreerrors.WrapError(err, "encode snapshot")
	}
	if err := s.cache.Set(ctx, s.key, data, s.ttl); err != nil {
		return coreerrors.WrapError(err, "store snapshot")
	}
	return nil
}

// Load reads the stored cycle back
func (s *Sink) Load(ctx context.Context) (*domain.CycleResult, error) {
	data, err := s.cache.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return nil, &coreerrors.NotFoundError{Resource: "snapshot", ID: s.key}
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, coreerrors.WrapError(err, "decode snapshot")
	}
	return snap.ToCycle(), nil
}
