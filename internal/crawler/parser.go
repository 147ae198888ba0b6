// Package crawler provides page fetching, agency page parsing, and the scrape run orchestration.
package crawler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"agencyscraper/internal/config"
	"agencyscraper/internal/models"
	"agencyscraper/pkg/utils"
)

// Parser extracts agency links and agency records from page markup.
// Every selector comes from configuration.
type Parser struct {
	urls         *utils.HTTPHelper
	text         *utils.StringHelper
	fields       map[string]string
	phonePattern *regexp.Regexp
	linkTitle    string
	container    string
	phoneJoin    string
	hoursLabel   string
	notAvailable string
}

// NewParser creates a parser from the site and selector configuration.
func NewParser(cfg *config.Config) (*Parser, error) {
	urls, err := utils.NewHTTPHelper(cfg.Site.BaseURL)
	if err != nil {
		return nil, err
	}

	phonePattern, err := regexp.Compile(cfg.Selectors.PhonePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid phone pattern: %w", err)
	}

	fields := make(map[string]string, len(cfg.Selectors.Fields))
	for k, v := range cfg.Selectors.Fields {
		fields[k] = v
	}

	return &Parser{
		urls:         urls,
		text:         utils.NewStringHelper(),
		fields:       fields,
		phonePattern: phonePattern,
		linkTitle:    cfg.Site.LinkTitle,
		container:    cfg.Selectors.Container,
		phoneJoin:    cfg.Selectors.PhoneJoin,
		hoursLabel:   cfg.Selectors.HoursLabel,
		notAvailable: cfg.Selectors.NotAvailable,
	}, nil
}

// ParseLinks returns the absolute URLs of every anchor whose title equals the
// configured link title, in document order. Hrefs that cannot be resolved to
// an http(s) URL are returned separately as rejected.
func (p *Parser) ParseLinks(markup string) ([]string, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	links := []string{}

	var rejected []string

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		if title, ok := a.Attr("title"); !ok || title != p.linkTitle {
			return
		}

		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}

		link, err := p.urls.ResolveURL(href)
		if err != nil || !p.urls.IsValidURL(link) {
			rejected = append(rejected, href)

			return
		}

		links = append(links, link)
	})

	return links, rejected, nil
}

// ParseAgency extracts one record from a detail page. It returns nil without
// error when the page has no agency container.
func (p *Parser) ParseAgency(pageURL, markup string) (*models.Agency, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse agency page: %w", err)
	}

	container := doc.Find(p.container).First()
	if container.Length() == 0 {
		return nil, nil
	}

	return &models.Agency{
		Link:     pageURL,
		Name:     p.textOr(container, config.FieldName, p.notAvailable),
		Services: p.textOr(container, config.FieldServices, p.notAvailable),
		Address:  p.textOr(container, config.FieldAddress, p.notAvailable),
		Phone:    p.phones(container),
		Hours:    p.hours(container),
	}, nil
}

// find returns the first element matching the field selector inside container.
func (p *Parser) find(container *goquery.Selection, field string) (*goquery.Selection, bool) {
	sel := container.Find(p.fields[field]).First()

	return sel, sel.Length() > 0
}

func (p *Parser) textOr(container *goquery.Selection, field, fallback string) string {
	sel, ok := p.find(container, field)
	if !ok {
		return fallback
	}

	return p.clean(sel.Text())
}

// clean applies NFC and newline normalization to extracted text.
func (p *Parser) clean(text string) string {
	return p.text.NormalizeNewlines(p.text.NormalizeUnicode(text))
}

// phones keeps only the numbers matched in the phone element; labels are dropped.
func (p *Parser) phones(container *goquery.Selection) string {
	sel, ok := p.find(container, config.FieldPhone)
	if !ok {
		return ""
	}

	return strings.Join(p.phonePattern.FindAllString(sel.Text(), -1), p.phoneJoin)
}

func (p *Parser) hours(container *goquery.Selection) string {
	sel, ok := p.find(container, config.FieldHours)
	if !ok {
		return p.notAvailable
	}

	text := p.clean(sel.Text())
	if p.hoursLabel != "" {
		text = strings.ReplaceAll(text, p.text.NormalizeUnicode(p.hoursLabel), "")
	}

	return strings.TrimSpace(text)
}
