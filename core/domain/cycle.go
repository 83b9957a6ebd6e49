// ABOUTME: Cycle results describe the outcome of one pipeline run over all sources
// ABOUTME: Keeps per-source status next to the merged entry list

package domain

import "time"

// MergeStrategy selects how per-source entry lists are combined
type MergeStrategy string

const (
	// MergeConcatenate keeps source order, then each source's document order
	MergeConcatenate MergeStrategy = "concatenate"

	// MergeByRecency concatenates and then sorts with ByRecency
	MergeByRecency MergeStrategy = "recency"
)

// Valid reports whether s names a known strategy
func (s MergeStrategy) Valid() bool {
	return s == MergeConcatenate || s == MergeByRecency
}

// SourceResult is the outcome of fetching and parsing one source
type SourceResult struct {
	Source     FeedSource
	Entries    []Entry
	Err        error
	StatusCode int
	Duration   time.Duration
}

// OK reports whether the source produced entries without error
func (r SourceResult) OK() bool {
	return r.Err == nil
}

// CycleResult is the merged outcome of one pipeline run
type CycleResult struct {
	// Entries is the merged list handed to consumers
	Entries []Entry

	// Sources holds one result per input source, in input order
	Sources []SourceResult

	Strategy   MergeStrategy
	StartedAt  time.Time
	FinishedAt time.Time
}

// Failed returns the results of sources that failed this cycle
func (c *CycleResult) Failed() []SourceResult {
	var failed []SourceResult
	for _, s := range c.Sources {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}

// Duration is the wall time of the cycle
func (c *CycleResult) Duration() time.Duration {
	return c.FinishedAt.Sub(c.StartedAt)
}
