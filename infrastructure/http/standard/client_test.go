package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewStandardHTTPClient(t *testing.T) {
	timeout := 10 * time.Second
	client := NewStandardHTTPClient(timeout)

	if client == nil {
		t.Fatal("NewStandardHTTPClient returned nil")
	}
	if client.client.Timeout != timeout {
		t.Errorf("Client timeout = %v, want %v", client.client.Timeout, timeout)
	}
	if client.userAgent != DefaultUserAgent {
		t.Errorf("userAgent = %q, want %q", client.userAgent, DefaultUserAgent)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<feed/>"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusOK)
	}
	if resp.Header("content-type") != "application/atom+xml" {
		t.Errorf("Header(content-type) = %q", resp.Header("content-type"))
	}

	body, err := io.ReadAll(resp.Body())
	resp.Body().Close()
	if err != nil {
		t.Errorf("Failed to read body: %v", err)
	}
	if string(body) != "<feed/>" {
		t.Errorf("Body = %s, want <feed/>", string(body))
	}
}

func TestStandardHTTPClient_Get_Headers(t *testing.T) {
	var capturedUserAgent, capturedAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserAgent = r.Header.Get("User-Agent")
		capturedAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, WithUserAgent("TestAgent/2.0"))

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if capturedUserAgent != "TestAgent/2.0" {
		t.Errorf("User-Agent = %s, want TestAgent/2.0", capturedUserAgent)
	}
	if !strings.Contains(capturedAccept, "application/atom+xml") {
		t.Errorf("Accept = %s, should prefer atom", capturedAccept)
	}
}

func TestStandardHTTPClient_Get_SingleAttemptOn5xx(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusServiceUnavailable)
	}

	mu.Lock()
	defer mu.Unlock()
	if attempts != 1 {
		t.Errorf("Attempts = %d, want 1", attempts)
	}
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	resp, err := client.Get(ctx, server.URL)
	if err == nil {
		resp.Body().Close()
		t.Fatal("Get should return error for context timeout")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("Error should mention context deadline, got: %v", err)
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), "not a valid url")
	if err == nil {
		resp.Body().Close()
		t.Error("Get should return error for invalid URL")
	}
}

func TestStandardHTTPClient_RequestLogging(t *testing.T) {
	var capturedID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &capturingLogger{}
	client := NewStandardHTTPClient(10*time.Second, WithRequestLogging(logger))

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if capturedID == "" {
		t.Error("request ID header was not sent")
	}
	if len(logger.debugs) != 2 {
		t.Fatalf("expected request and response debug logs, got %v", logger.debugs)
	}
	if logger.fields[1]["status"] != http.StatusOK {
		t.Errorf("response log status = %v", logger.fields[1]["status"])
	}
	if logger.fields[1]["request_id"] != capturedID {
		t.Errorf("response log request_id = %v, want %s", logger.fields[1]["request_id"], capturedID)
	}
}

func TestLoggingRoundTripper_Error(t *testing.T) {
	logger := &capturingLogger{}
	rt := &LoggingRoundTripper{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, io.ErrUnexpectedEOF
		}),
		Logger: logger,
	}

	req, _ := http.NewRequest(http.MethodGet, "https://example.com/feed", nil)
	if _, err := rt.RoundTrip(req); err != io.ErrUnexpectedEOF {
		t.Errorf("RoundTrip error = %v, want unexpected EOF", err)
	}
	if len(logger.warns) != 1 {
		t.Errorf("expected 1 warning, got %d", len(logger.warns))
	}
	if req.Header.Get(RequestIDHeader) != "" {
		t.Error("RoundTrip must not modify the caller's request")
	}
}

func TestHTTPResponse_Header(t *testing.T) {
	resp := &httpResponse{
		headers: http.Header{
			"Content-Type": []string{"application/atom+xml"},
		},
	}

	if resp.Header("Content-Type") != "application/atom+xml" {
		t.Errorf("Header(Content-Type) = %s", resp.Header("Content-Type"))
	}
	if resp.Header("Non-Existent") != "" {
		t.Errorf("Header(Non-Existent) = %s, want empty string", resp.Header("Non-Existent"))
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type capturingLogger struct {
	mu     sync.Mutex
	debugs []string
	warns  []string
	fields []map[string]interface{}
}

func (l *capturingLogger) Debug(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, msg)
	l.fields = append(l.fields, fields)
}

func (l *capturingLogger) Info(string, map[string]interface{})  {}
func (l *capturingLogger) Error(string, map[string]interface{}) {}

func (l *capturingLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
