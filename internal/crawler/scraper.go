package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"agencyscraper/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with a client or server error status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Scraper fetches pages over one shared HTTP session. It never retries.
type Scraper struct {
	client *resty.Client
}

// NewScraper creates a scraper with the transport defaults and no timeout.
func NewScraper() *Scraper {
	return NewScraperWithConfig(&config.FetchConfig{}, nil)
}

// NewScraperWithConfig creates a scraper sending headers on every request.
// A zero timeout leaves the transport default in place.
func NewScraperWithConfig(cfg *config.FetchConfig, headers http.Header) *Scraper {
	client := resty.New()

	for key := range headers {
		client.SetHeader(key, headers.Get(key))
	}

	if timeout := cfg.GetTimeout(); timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Scraper{client: client}
}

// ScrapeWithMetrics returns (content, statusCode, duration, error).
func (s *Scraper) ScrapeWithMetrics(ctx context.Context, url string) (string, int, time.Duration, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", 0, 0, fmt.Errorf("request to %s failed: %w", url, err)
	}

	if resp.IsError() {
		return "", resp.StatusCode(), resp.Time(), fmt.Errorf("%w: %d (%s)", ErrUnexpectedStatusCode, resp.StatusCode(), url)
	}

	body, err := decodeBody(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return "", resp.StatusCode(), resp.Time(), fmt.Errorf("failed to decode response body from %s: %w", url, err)
	}

	return body, resp.StatusCode(), resp.Time(), nil
}

// Scrape fetches url and returns its body as UTF-8 text.
func (s *Scraper) Scrape(ctx context.Context, url string) (string, error) {
	content, _, _, err := s.ScrapeWithMetrics(ctx, url)

	return content, err
}

// decodeBody converts raw bytes to UTF-8 using the declared or sniffed charset.
func decodeBody(raw []byte, contentType string) (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", err
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	return string(decoded), nil
}
