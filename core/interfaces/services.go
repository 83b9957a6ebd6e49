// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts between the fetcher, the parser and entry consumers

package interfaces

import (
	"context"
	"io"

	"newsreader-app/core/domain"
)

// FeedParser turns an Atom byte stream into entries. Implementations close rc.
type FeedParser interface {
	Parse(rc io.ReadCloser) ([]domain.Entry, error)
}

// EntrySink consumes the merged entries of one cycle
type EntrySink interface {
	Deliver(ctx context.Context, result *domain.CycleResult) error
}

// EntrySinkFunc adapts a function to EntrySink
type EntrySinkFunc func(ctx context.Context, result *domain.CycleResult) error

// Deliver calls f
func (f EntrySinkFunc) Deliver(ctx context.Context, result *domain.CycleResult) error {
	return f(ctx, result)
}
