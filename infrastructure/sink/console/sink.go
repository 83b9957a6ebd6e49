// ABOUTME: Console sink prints merged entries as date and title blocks or as JSON
// ABOUTME: An optional filter narrows what is printed, e.g. to entries not seen before

package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"newsreader-app/core/domain"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Filter reduces the entries of a cycle before printing
type Filter func(ctx context.Context, entries []domain.Entry) []domain.Entry

// Sink writes entries to an io.Writer
type Sink struct {
	mu        sync.Mutex
	w         io.Writer
	format    Format
	filter    Filter
	showLinks bool
}

// Option configures a Sink
type Option func(*Sink)

// WithFormat selects text or JSON output
func WithFormat(f Format) Option {
	return func(s *Sink) {
		s.format = f
	}
}

// WithFilter applies f to each cycle's entries
func WithFilter(f Filter) Option {
	return func(s *Sink) {
		s.filter = f
	}
}

// WithLinks prints each entry's alternate link under its title
func WithLinks(show bool) Option {
	return func(s *Sink) {
		s.showLinks = show
	}
}

// New creates a console sink writing to w
func New(w io.Writer, opts ...Option) *Sink {
	s := &Sink{w: w, format: FormatText}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver prints the cycle's entries
func (s *Sink) Deliver(ctx context.Context, result *domain.CycleResult) error {
	entries := result.Entries
	if s.filter != nil {
		entries = s.filter(ctx, entries)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == FormatJSON {
		enc := json.NewEncoder(s.w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		if _, err := fmt.Fprintln(s.w, e.String()); err != nil {
			return err
		}
		if s.showLinks && e.HasLink() {
			if _, err := fmt.Fprintln(s.w, e.Link); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(s.w); err != nil {
			return err
		}
	}
	return nil
}
