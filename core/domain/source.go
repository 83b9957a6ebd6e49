// ABOUTME: FeedSource identifies one Atom feed the pipeline fetches each cycle
// ABOUTME: Validates that a source points at an absolute http(s) URL

package domain

import (
	"errors"
	"net/url"
	"strings"
)

// FeedSource is a named feed URL
type FeedSource struct {
	// Name is a short label used in logs and reports; defaults to the URL host
	Name string `json:"name" toml:"name"`

	// URL is the Atom document location
	URL string `json:"url" toml:"url"`
}

// Label returns the name used when reporting on the source
func (s FeedSource) Label() string {
	if s.Name != "" {
		return s.Name
	}
	if u, err := url.Parse(s.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return s.URL
}

// Validate checks that the source URL is usable
func (s FeedSource) Validate() error {
	if strings.TrimSpace(s.URL) == "" {
		return errors.New("feed URL is required")
	}

	u, err := url.Parse(s.URL)
	if err != nil {
		return errors.New("invalid feed URL: " + err.Error())
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("feed URL must use http or https")
	}

	if u.Host == "" {
		return errors.New("feed URL must include a host")
	}

	return nil
}

// SourcesFromURLs wraps plain URLs as unnamed sources
func SourcesFromURLs(urls []string) []FeedSource {
	sources := make([]FeedSource, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		sources = append(sources, FeedSource{URL: u})
	}
	return sources
}
