// ABOUTME: Pagination utilities for merged entry lists
// ABOUTME: Provides functions to paginate entries for API responses

package feed

import "newsreader-app/core/domain"

// DefaultPerPage is used when a caller passes a non-positive page size
const DefaultPerPage = 10

// PaginateEntries returns a paginated slice of entries
func PaginateEntries(entries []domain.Entry, page, perPage int) []domain.Entry {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	// compare page numbers first so (page-1)*perPage cannot overflow
	if page > TotalPages(len(entries), perPage) {
		return []domain.Entry{}
	}

	start := (page - 1) * perPage
	end := len(entries)
	if perPage < end-start {
		end = start + perPage
	}

	return entries[start:end]
}

// TotalPages returns the number of pages needed for total entries
func TotalPages(total, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if total <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}
