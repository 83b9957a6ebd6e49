// ABOUTME: Merge strategies that combine per-source entry lists into one result
// ABOUTME: Concatenation keeps source order; recency sorts newest first

package feed

import (
	"fmt"
	"slices"
	"strings"

	"newsreader-app/core/domain"
)

// Merge combines lists according to strategy. Inputs are not modified.
func Merge(lists [][]domain.Entry, strategy domain.MergeStrategy) []domain.Entry {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	merged := make([]domain.Entry, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}

	if strategy == domain.MergeByRecency {
		slices.SortStableFunc(merged, domain.ByRecency)
	}
	return merged
}

// ParseMergeStrategy maps a configuration value to a strategy. An empty
// value selects concatenation.
func ParseMergeStrategy(s string) (domain.MergeStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(domain.MergeConcatenate), "concat":
		return domain.MergeConcatenate, nil
	case string(domain.MergeByRecency), "newest":
		return domain.MergeByRecency, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q", s)
	}
}
