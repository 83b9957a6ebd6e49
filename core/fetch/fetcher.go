// ABOUTME: Fetcher performs the single HTTP GET for a feed and exposes the body stream
// ABOUTME: Transport failures and non-2xx statuses surface as FetchError

package fetch

import (
	"context"
	"io"
	"net/http"

	coreerrors "newsreader-app/core/errors"
	"newsreader-app/core/interfaces"
)

// Fetcher retrieves feed documents. It never retries.
type Fetcher struct {
	client interfaces.HTTPClient
}

// NewFetcher creates a fetcher over the given HTTP client
func NewFetcher(client interfaces.HTTPClient) *Fetcher {
	return &Fetcher{client: client}
}

// Result is a completed HTTP exchange. The caller owns Body and must close it.
type Result struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
}

// OK reports whether the status is 2xx
func (r *Result) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Err returns a FetchError for non-2xx responses, nil otherwise
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	return &coreerrors.FetchError{URL: r.URL, StatusCode: r.StatusCode}
}

// Close releases the body
func (r *Result) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// Outcome is what FetchAsync delivers
type Outcome struct {
	Result *Result
	Err    error
}

// Fetch performs one GET against url. The returned error is always a
// *errors.FetchError wrapping the transport failure; a non-2xx response is
// not an error here and is reported through Result.Err.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &coreerrors.FetchError{URL: url, Cause: err}
	}

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Cause: err}
	}

	body := resp.Body()
	if body == nil {
		body = http.NoBody
	}

	return &Result{
		URL:         url,
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header("Content-Type"),
		Body:        body,
	}, nil
}

// FetchAsync runs Fetch on its own goroutine and delivers exactly one Outcome.
// The channel is buffered and closed after the send.
func (f *Fetcher) FetchAsync(ctx context.Context, url string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		res, err := f.Fetch(ctx, url)
		out <- Outcome{Result: res, Err: err}
	}()
	return out
}
