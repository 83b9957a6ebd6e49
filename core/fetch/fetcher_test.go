package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	coreerrors "newsreader-app/core/errors"
	"newsreader-app/core/interfaces"
	"newsreader-app/infrastructure/http/standard"
)

type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.getFunc(ctx, url)
}

type mockResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    map[string]string
}

func (r *mockResponse) StatusCode() int      { return r.statusCode }
func (r *mockResponse) Body() io.ReadCloser  { return r.body }
func (r *mockResponse) Header(k string) string { return r.headers[k] }

func TestFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte("<feed/>"))
	}))
	defer server.Close()

	f := NewFetcher(standard.NewStandardHTTPClient(5 * time.Second))

	res, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer res.Close()

	if !res.OK() || res.Err() != nil {
		t.Errorf("expected OK result, got status %d err %v", res.StatusCode, res.Err())
	}
	if res.ContentType != "application/atom+xml" {
		t.Errorf("ContentType = %q", res.ContentType)
	}

	body, _ := io.ReadAll(res.Body)
	if string(body) != "<feed/>" {
		t.Errorf("Body = %q", body)
	}
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone fishing", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher(standard.NewStandardHTTPClient(5 * time.Second))

	res, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() transport error = %v", err)
	}
	defer res.Close()

	if res.OK() {
		t.Error("503 should not be OK")
	}
	if coreerrors.StatusCodeOf(res.Err()) != http.StatusServiceUnavailable {
		t.Errorf("Err() = %v, want FetchError with 503", res.Err())
	}

	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "gone fishing") {
		t.Errorf("body should stay readable, got %q", body)
	}
}

func TestFetcher_Fetch_TransportError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	f := NewFetcher(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, cause
		},
	})

	res, err := f.Fetch(context.Background(), "https://example.com/feed")
	if res != nil {
		t.Error("expected nil result on transport error")
	}
	if !coreerrors.IsFetch(err) {
		t.Fatalf("expected FetchError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("FetchError should wrap the cause, got %v", err)
	}
}

func TestFetcher_Fetch_SingleAttempt(t *testing.T) {
	calls := 0
	f := NewFetcher(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			calls++
			return nil, errors.New("timeout")
		},
	})

	_, _ = f.Fetch(context.Background(), "https://example.com/feed")

	if calls != 1 {
		t.Errorf("Get called %d times, want 1", calls)
	}
}

func TestFetcher_Fetch_CancelledContext(t *testing.T) {
	called := false
	f := NewFetcher(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			called = true
			return nil, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "https://example.com/feed")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("no request should be made once the context is done")
	}
}

func TestFetcher_Fetch_NilBody(t *testing.T) {
	f := NewFetcher(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: http.StatusNoContent}, nil
		},
	})

	res, err := f.Fetch(context.Background(), "https://example.com/feed")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.Body == nil {
		t.Fatal("Body should never be nil")
	}
	if err := res.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFetcher_FetchAsync(t *testing.T) {
	release := make(chan struct{})
	f := NewFetcher(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			<-release
			return &mockResponse{statusCode: http.StatusOK, body: io.NopCloser(strings.NewReader("ok"))}, nil
		},
	})

	ch := f.FetchAsync(context.Background(), "https://example.com/feed")

	select {
	case <-ch:
		t.Fatal("outcome delivered before the fetch completed")
	default:
	}

	close(release)

	outcome, ok := <-ch
	if !ok {
		t.Fatal("channel closed without an outcome")
	}
	if outcome.Err != nil || outcome.Result.StatusCode != http.StatusOK {
		t.Errorf("outcome = %+v", outcome)
	}
	outcome.Result.Close()

	if _, ok := <-ch; ok {
		t.Error("expected exactly one outcome")
	}
}
