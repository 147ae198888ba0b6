package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agencyscraper/internal/config"
	"agencyscraper/internal/logger"
	"agencyscraper/internal/models"
	"agencyscraper/internal/storage"
	"agencyscraper/internal/validator"
	"agencyscraper/pkg/utils"
)

// Run errors.
var (
	ErrNoRecords      = errors.New("no agency data was collected")
	ErrInvalidRecords = errors.New("collected records failed validation")
)

// Persister writes the collected records and reports the paths it produced.
type Persister interface {
	Write(records []models.Agency) ([]string, error)
}

// Result summarizes one run.
type Result struct {
	Records  []models.Agency
	Outputs  []string
	Links    int
	Skipped  int
	Duration time.Duration
}

// Runner drives one scrape: prepare the output directory, discover links,
// extract each page in order, then persist or report that nothing was found.
type Runner struct {
	cfg       *config.Config
	client    *Client
	persister Persister
	validator *validator.RecordValidator
	log       *logger.Logger
}

// NewRunner creates a runner. cfg is read but never mutated.
func NewRunner(cfg *config.Config, client *Client, persister Persister, log *logger.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		client:    client,
		persister: persister,
		validator: validator.NewRecordValidator(cfg.Selectors.NotAvailable),
		log:       log,
	}
}

// NewRunnerFromConfig wires the default scraper, parser and writer for cfg.
func NewRunnerFromConfig(cfg *config.Config, log *logger.Logger) (*Runner, error) {
	parser, err := NewParser(cfg)
	if err != nil {
		return nil, err
	}

	writer, err := storage.NewWriterFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"User-Agent": cfg.Fetch.UserAgent,
		"Accept":     cfg.Fetch.Accept,
	}

	urls, err := utils.NewHTTPHelper(cfg.Site.BaseURL)
	if err != nil {
		return nil, err
	}

	scraper := NewScraperWithConfig(&cfg.Fetch, urls.BuildHeaders(headers))
	client := NewClientWithDeps(scraper, parser, log, cfg.Site.DedupeLinks)

	return NewRunner(cfg, client, writer, log), nil
}

// Run executes the scrape. Fetch failures abort the run; pages without the
// agency container are skipped. ErrNoRecords is returned, after a single
// error log, when nothing was collected, and the persister is not called.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	r.log.Info("starting to scrape agencies", "index", r.cfg.IndexURL())

	if err := storage.EnsureDir(r.cfg.Output.Dir); err != nil {
		return nil, err
	}

	links, err := r.client.DiscoverLinks(ctx, r.cfg.IndexURL())
	if err != nil {
		return nil, err
	}

	result := &Result{Links: len(links)}
	records := make([]models.Agency, 0, len(links))

	for i, link := range links {
		r.log.Debug("fetching agency", "n", i+1, "of", len(links), "url", link)

		agency, err := r.client.FetchAgency(ctx, link)
		if err != nil {
			return nil, err
		}

		if agency == nil {
			result.Skipped++

			continue
		}

		records = append(records, *agency)
	}

	if len(records) == 0 {
		r.log.Error(ErrNoRecords.Error(), "links", len(links))

		return result, ErrNoRecords
	}

	validation := r.validator.Validate(records)
	for _, w := range validation.Warnings {
		r.log.Warn(w)
	}

	if err := validation.Err(); err != nil {
		return result, fmt.Errorf("%w: %w", ErrInvalidRecords, err)
	}

	r.log.Debug(validation.String())

	outputs, err := r.persister.Write(records)
	if err != nil {
		return result, fmt.Errorf("failed to persist agencies: %w", err)
	}

	result.Records = records
	result.Outputs = outputs
	result.Duration = time.Since(start)

	r.log.Info("agencies info saved",
		"records", len(records),
		"skipped", result.Skipped,
		"outputs", outputs,
		"duration", result.Duration.Round(time.Millisecond))

	return result, nil
}
