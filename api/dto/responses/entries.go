// ABOUTME: Response DTOs for the entry, source and health endpoints
// ABOUTME: Timestamps are RFC 3339 strings; durations are milliseconds

package responses

// EntryResponse represents one merged entry
type EntryResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	Updated       string `json:"updated"`
	UpdatedMillis int64  `json:"updated_ms"`
}

// EntriesResponse is the body of GET /entries
type EntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
	Sort       string          `json:"sort,omitempty"`
	Strategy   string          `json:"strategy"`
	CycleAt    string          `json:"cycle_at"`
}

// SourceResponse is the status of one source in the latest cycle
type SourceResponse struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Status     string `json:"status"`
	Entries    int    `json:"entries"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// SourcesResponse is the body of GET /sources
type SourcesResponse struct {
	Sources []SourceResponse `json:"sources"`
	Failed  int              `json:"failed"`
	CycleAt string           `json:"cycle_at"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status  string `json:"status"`
	Cycles  int64  `json:"cycles"`
	CycleAt string `json:"cycle_at,omitempty"`
}
