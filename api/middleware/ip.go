// ABOUTME: Client IP extraction shared by the logging and rate limiting middleware
// ABOUTME: Honours proxy headers before falling back to the socket address

package middleware

import (
	"net"
	"net/http"
	"strings"
)

// extractIP gets the client IP from the request
func extractIP(r *http.Request) string {
	// the first X-Forwarded-For hop is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
