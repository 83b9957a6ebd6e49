// ABOUTME: Mappers for converting domain cycle results to API DTOs
// ABOUTME: Keeps JSON layout decisions out of the core packages

package mappers

import (
	"time"

	"newsreader-app/api/dto/responses"
	"newsreader-app/core/domain"
)

// Source status values
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// ToEntryResponse converts a domain Entry
func ToEntryResponse(e domain.Entry) responses.EntryResponse {
	return responses.EntryResponse{
		ID:            e.ID,
		Title:         e.Title,
		Link:          e.Link,
		Updated:       FormatTime(e.Updated),
		UpdatedMillis: e.UpdatedMillis(),
	}
}

// ToEntryResponses converts a list of entries, never returning nil
func ToEntryResponses(entries []domain.Entry) []responses.EntryResponse {
	out := make([]responses.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryResponse(e))
	}
	return out
}

// ToSourceResponse converts one per-source result
func ToSourceResponse(r domain.SourceResult) responses.SourceResponse {
	resp := responses.SourceResponse{
		Name:       r.Source.Label(),
		URL:        r.Source.URL,
		Status:     StatusOK,
		Entries:    len(r.Entries),
		StatusCode: r.StatusCode,
		DurationMs: r.Duration.Milliseconds(),
	}
	if r.Err != nil {
		resp.Status = StatusFailed
		resp.Error = r.Err.Error()
	}
	return resp
}

// ToSourcesResponse converts the per-source half of a cycle
func ToSourcesResponse(c *domain.CycleResult) responses.SourcesResponse {
	resp := responses.SourcesResponse{
		Sources: make([]responses.SourceResponse, 0, len(c.Sources)),
		CycleAt: FormatTime(c.FinishedAt),
	}
	for _, r := range c.Sources {
		src := ToSourceResponse(r)
		if src.Status == StatusFailed {
			resp.Failed++
		}
		resp.Sources = append(resp.Sources, src)
	}
	return resp
}

// FormatTime renders t as UTC RFC 3339
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
