// Package utils provides common utility functions.
package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrEmptyHref indicates an anchor without a usable href.
var ErrEmptyHref = errors.New("empty href")

// HTTPHelper provides HTTP utility functions.
type HTTPHelper struct {
	base *url.URL
}

// NewHTTPHelper creates a new HTTP helper resolving links against baseURL.
func NewHTTPHelper(baseURL string) (*HTTPHelper, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	return &HTTPHelper{base: base}, nil
}

// IsValidURL checks that raw is an absolute http(s) URL.
func (h *HTTPHelper) IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ResolveURL makes href absolute against the base origin.
// Absolute hrefs are returned unchanged.
func (h *HTTPHelper) ResolveURL(href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", ErrEmptyHref
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}

	return h.base.ResolveReference(ref).String(), nil
}

// BuildHeaders creates HTTP headers with defaults.
func (h *HTTPHelper) BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Add("User-Agent", "agencyscraper/1.0")
	headers.Add("Accept", "text/html")

	for key, value := range customHeaders {
		if value != "" {
			headers.Set(key, value)
		}
	}

	return headers
}
