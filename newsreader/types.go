// ABOUTME: Public types for the newsreader library API
// ABOUTME: Aliases the core domain model so callers need not import core packages

package newsreader

import "newsreader-app/core/domain"

// Entry is one parsed Atom entry
type Entry = domain.Entry

// Source is a named feed URL
type Source = domain.FeedSource

// SourceResult is the per-source outcome of a cycle
type SourceResult = domain.SourceResult

// Cycle is the merged outcome of fetching every source once
type Cycle = domain.CycleResult

// MergeStrategy selects how per-source lists are combined
type MergeStrategy = domain.MergeStrategy

// Merge strategies
const (
	MergeConcatenate = domain.MergeConcatenate
	MergeByRecency   = domain.MergeByRecency
)
