// ABOUTME: Entry domain model represents a single Atom entry extracted from a feed
// ABOUTME: Provides the sentinel defaults and the recency ordering used by merges

package domain

import (
	"cmp"
	"slices"
	"time"
)

// Sentinel values used when an entry omits a field or leaves it empty
const (
	DefaultID    = "id"
	DefaultTitle = "title"
	DefaultLink  = "link"
)

// epoch is the Updated value of an entry without an <updated> element
var epoch = time.Unix(0, 0).UTC()

// Entry represents one item of an Atom feed. Entries are values: the parser
// builds them once and nothing mutates them afterwards.
type Entry struct {
	// ID is the entry's <id> text, or DefaultID
	ID string `json:"id"`

	// Title is the entry's <title> text, or DefaultTitle
	Title string `json:"title"`

	// Link is the href of the entry's rel="alternate" link, or DefaultLink
	Link string `json:"link"`

	// Updated is the parsed <updated> instant, or the Unix epoch
	Updated time.Time `json:"updated"`
}

// NewEntry returns an entry populated with the sentinel defaults
func NewEntry() Entry {
	return Entry{
		ID:      DefaultID,
		Title:   DefaultTitle,
		Link:    DefaultLink,
		Updated: epoch,
	}
}

// Epoch returns the default Updated value
func Epoch() time.Time {
	return epoch
}

// UpdatedMillis returns Updated as milliseconds since the Unix epoch
func (e Entry) UpdatedMillis() int64 {
	return e.Updated.UnixMilli()
}

// HasLink reports whether the entry carries a real alternate link
func (e Entry) HasLink() bool {
	return e.Link != "" && e.Link != DefaultLink
}

// String renders the entry the way list views display it: date, then title
func (e Entry) String() string {
	return e.Updated.UTC().Format(time.RFC1123) + "\n" + e.Title
}

// ByRecency orders entries newest first. Ties are broken by ID so the order
// is total and repeatable across runs.
func ByRecency(a, b Entry) int {
	if c := b.Updated.Compare(a.Updated); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortByRecency returns a copy of entries sorted with ByRecency
func SortByRecency(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, ByRecency)
	return sorted
}
