// ABOUTME: Read-only Huma handlers exposing the latest merged cycle
// ABOUTME: Serves entries, per-source status and a health check

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsreader-app/api/dto/mappers"
	"newsreader-app/api/dto/responses"
	"newsreader-app/core/domain"
	"newsreader-app/core/errors"
	"newsreader-app/core/feed"
)

// Query values and limits for GET /entries. The struct tags on
// ListEntriesInput repeat them because tags must be literals.
const (
	SortRecency    = "recency"
	DefaultPerPage = 50
	MaxPerPage     = 100
	MaxPage        = 1000000
)

// CycleProvider exposes the most recent in-process cycle
type CycleProvider interface {
	Latest() *domain.CycleResult
	Cycles() int64
}

// SnapshotLoader reads a stored cycle, e.g. one written by another process
type SnapshotLoader interface {
	Load(ctx context.Context) (*domain.CycleResult, error)
}

// EntriesHandler handles entry and source requests
type EntriesHandler struct {
	cycles    CycleProvider
	snapshots SnapshotLoader
}

// NewEntriesHandler creates a handler. snapshots may be nil; it is consulted
// only while no in-process cycle has completed.
func NewEntriesHandler(cycles CycleProvider, snapshots SnapshotLoader) *EntriesHandler {
	return &EntriesHandler{
		cycles:    cycles,
		snapshots: snapshots,
	}
}

// RegisterRoutes registers all entry-related routes
func (h *EntriesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listEntries",
		Method:      http.MethodGet,
		Path:        "/entries",
		Summary:     "List merged entries",
		Description: "Returns the entries of the latest cycle in merge order, or newest first with sort=recency",
		Tags:        []string{"Entries"},
	}, h.ListEntries)

	huma.Register(api, huma.Operation{
		OperationID: "listSources",
		Method:      http.MethodGet,
		Path:        "/sources",
		Summary:     "List source status",
		Description: "Reports the outcome of each feed in the latest cycle",
		Tags:        []string{"Entries"},
	}, h.ListSources)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// ListEntriesInput defines the query parameters of GET /entries
type ListEntriesInput struct {
	Sort    string `query:"sort" enum:"recency" doc:"Set to recency to order newest first; merge order otherwise"`
	Page    int    `query:"page" minimum:"1" maximum:"1000000" default:"1" doc:"Page number (1-based)"`
	PerPage int    `query:"per_page" minimum:"1" maximum:"100" default:"50" doc:"Number of entries per page"`
}

// ListEntriesOutput defines the output for the ListEntries operation
type ListEntriesOutput struct {
	Body responses.EntriesResponse
}

// ListEntries handles GET /entries
func (h *EntriesHandler) ListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	cycle, err := h.latest(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	if input.Page == 0 {
		input.Page = 1
	}
	if input.PerPage == 0 {
		input.PerPage = DefaultPerPage
	}

	entries := cycle.Entries
	if input.Sort == SortRecency {
		entries = domain.SortByRecency(entries)
	}

	return &ListEntriesOutput{
		Body: responses.EntriesResponse{
			Entries:    mappers.ToEntryResponses(feed.PaginateEntries(entries, input.Page, input.PerPage)),
			Total:      len(entries),
			Page:       input.Page,
			PerPage:    input.PerPage,
			TotalPages: feed.TotalPages(len(entries), input.PerPage),
			Sort:       input.Sort,
			Strategy:   string(cycle.Strategy),
			CycleAt:    mappers.FormatTime(cycle.FinishedAt),
		},
	}, nil
}

// ListSourcesOutput defines the output for the ListSources operation
type ListSourcesOutput struct {
	Body responses.SourcesResponse
}

// ListSources handles GET /sources
func (h *EntriesHandler) ListSources(ctx context.Context, _ *struct{}) (*ListSourcesOutput, error) {
	cycle, err := h.latest(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ListSourcesOutput{Body: mappers.ToSourcesResponse(cycle)}, nil
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /healthz. It reports "starting" until a first cycle
// exists; both states answer 200 so the process is considered alive.
func (h *EntriesHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := responses.HealthResponse{Status: "starting"}
	if h.cycles != nil {
		resp.Cycles = h.cycles.Cycles()
		if c := h.cycles.Latest(); c != nil {
			resp.Status = "ok"
			resp.CycleAt = mappers.FormatTime(c.FinishedAt)
		}
	}
	return &HealthOutput{Body: resp}, nil
}

func (h *EntriesHandler) latest(ctx context.Context) (*domain.CycleResult, error) {
	if h.cycles != nil {
		if c := h.cycles.Latest(); c != nil {
			return c, nil
		}
	}
	if h.snapshots != nil {
		return h.snapshots.Load(ctx)
	}
	return nil, &errors.NotFoundError{Resource: "cycle", ID: "latest"}
}
