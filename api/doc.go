// Package api provides the read-only HTTP API for the news reader.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API mounted on a chi router, CORS and middleware setup
// - handlers/: Huma operations and their input/output types
// - dto/: response bodies and domain mappers
// - middleware/: request logging and per-IP rate limiting
//
// # Endpoints
//
//	GET /entries?sort=recency&page=1&per_page=50
//	GET /sources
//	GET /healthz
//	GET /openapi.json
//	GET /docs
//
// Entries come from the refresher's latest cycle, or from a stored snapshot
// while no cycle has completed in this process.
//
// # Usage Example
//
//	entries := handlers.NewEntriesHandler(refresher, snapshots)
//	srv := api.NewServer(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	}, entries)
//	defer srv.Close()
//
//	http.ListenAndServe(":8000", srv.Handler())
//
// # Error Handling
//
// Errors are Huma problem documents (application/problem+json):
//
//	{
//	    "title": "Not Found",
//	    "status": 404,
//	    "detail": "cycle not found: latest"
//	}
//
// Query parameters outside their declared range are rejected with 422.
// Not found maps to 404, domain validation to 400, fetch and parse
// failures to 502, anything else to 500 without the underlying message.
package api
