package crawler

import (
	"context"
	"fmt"

	"agencyscraper/internal/logger"
	"agencyscraper/internal/models"
)

// PageFetcher returns the decoded body of a page.
type PageFetcher interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Client combines fetching and parsing for the index page and agency pages.
type Client struct {
	fetcher     PageFetcher
	parser      *Parser
	log         *logger.Logger
	dedupeLinks bool
}

// NewClientWithDeps creates a crawler client with injected dependencies.
func NewClientWithDeps(fetcher PageFetcher, parser *Parser, log *logger.Logger, dedupeLinks bool) *Client {
	return &Client{
		fetcher:     fetcher,
		parser:      parser,
		log:         log,
		dedupeLinks: dedupeLinks,
	}
}

// DiscoverLinks fetches the index page and returns agency detail URLs in document order.
func (c *Client) DiscoverLinks(ctx context.Context, indexURL string) ([]string, error) {
	page, err := c.fetcher.Scrape(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index page: %w", err)
	}

	links, rejected, err := c.parser.ParseLinks(page)
	if err != nil {
		return nil, err
	}

	for _, href := range rejected {
		c.log.Warn("skipping unresolvable agency link", "href", href)
	}

	if c.dedupeLinks {
		links = dedupe(links)
	}

	c.log.Info("found agency links", "count", len(links))

	return links, nil
}

// FetchAgency fetches and parses one agency page. A page without the agency
// container yields nil; fetch failures are returned.
func (c *Client) FetchAgency(ctx context.Context, url string) (*models.Agency, error) {
	log := c.log.With("url", url)

	page, err := c.fetcher.Scrape(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agency page: %w", err)
	}

	agency, err := c.parser.ParseAgency(url, page)
	if err != nil {
		return nil, err
	}

	if agency == nil {
		log.Error("agency container not found")

		return nil, nil
	}

	log.Debug("parsed agency", "name", agency.Name)

	return agency, nil
}

func dedupe(links []string) []string {
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, len(links))

	for _, link := range links {
		if seen[link] {
			continue
		}

		seen[link] = true
		out = append(out, link)
	}

	return out
}
