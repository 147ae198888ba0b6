package integration

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"agencyscraper/internal/config"
	"agencyscraper/internal/crawler"
	"agencyscraper/internal/logger"
	"agencyscraper/internal/models"
	"agencyscraper/internal/storage"
)

const fixturesDir = "../fixtures"

// newFixtureSite serves the index fixture and one agency_<slug>.html per /agences/<slug>.
func newFixtureSite(t *testing.T, index string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/lentreprise/nos-agences-de-proximite", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(w, r, index)
	})
	mux.HandleFunc("/agences/", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(w, r, "agency_"+strings.TrimPrefix(r.URL.Path, "/agences/")+".html")
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func serveFixture(w http.ResponseWriter, r *http.Request, name string) {
	data, err := os.ReadFile(filepath.Join(fixturesDir, name))
	if err != nil {
		http.NotFound(w, r)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func newConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfig(filepath.Join("..", "..", "configs", "agencies.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.Site.BaseURL = baseURL
	cfg.Output.Dir = filepath.Join(t.TempDir(), "response")
	cfg.Output.Sinks = []string{config.SinkCSV, config.SinkJSON, config.SinkMarkdown, config.SinkSQLite}

	return cfg
}

func TestScrape_EndToEnd(t *testing.T) {
	server := newFixtureSite(t, "index.html")
	cfg := newConfig(t, server.URL)

	var logs bytes.Buffer

	runner, err := crawler.NewRunnerFromConfig(cfg, logger.NewLoggerWithWriter("info", &logs))
	if err != nil {
		t.Fatalf("NewRunnerFromConfig failed: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v\n%s", err, logs.String())
	}

	want := []models.Agency{
		{
			Link:     server.URL + "/agences/rennes-centre",
			Name:     "Lefeuvre Immobilier Rennes Centre",
			Services: "Transaction - Location - Gestion",
			Address:  "4 rue de la Monnaie, 35000 Rennes",
			Phone:    "02 99 79 00 00, 02 99 79 00 01",
			Hours:    "Du lundi au samedi de 9h à 12h et de 14h à 19h",
		},
		{
			Link:     server.URL + "/agences/vitre",
			Name:     "Lefeuvre Immobilier Vitré",
			Services: "Not available",
			Address:  "12 place du Château, 35500 Vitré",
			Phone:    "",
			Hours:    "Not available",
		},
	}

	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}

	if result.Links != 3 || result.Skipped != 1 {
		t.Errorf("Expected 3 links and 1 skipped page, got %d and %d", result.Links, result.Skipped)
	}

	fromCSV, err := storage.ReadCSV(cfg.CSVPath())
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if diff := cmp.Diff(want, fromCSV); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}

	fromJSON, err := storage.ReadJSON(cfg.JSONPath())
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}

	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}

	fromDB, err := storage.ReadSQLite(cfg.SQLitePath())
	if err != nil {
		t.Fatalf("ReadSQLite failed: %v", err)
	}

	if diff := cmp.Diff(want, fromDB); diff != "" {
		t.Errorf("SQLite mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(cfg.MarkdownPath()); err != nil {
		t.Errorf("Expected markdown output: %v", err)
	}

	if !strings.Contains(logs.String(), `msg="agency container not found" url=`+server.URL+"/agences/fougeres") {
		t.Errorf("Expected skipped page to be logged, got:\n%s", logs.String())
	}
}

func TestScrape_RerunIsIdempotent(t *testing.T) {
	server := newFixtureSite(t, "index.html")
	cfg := newConfig(t, server.URL)

	read := func() []byte {
		runner, err := crawler.NewRunnerFromConfig(cfg, logger.Discard())
		if err != nil {
			t.Fatalf("NewRunnerFromConfig failed: %v", err)
		}

		if _, err := runner.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		data, err := os.ReadFile(cfg.CSVPath())
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}

		return data
	}

	if first, second := read(), read(); !bytes.Equal(first, second) {
		t.Error("Expected identical CSV output across runs of an unchanged site")
	}
}

func TestScrape_IndexUnavailable(t *testing.T) {
	server := newFixtureSite(t, "missing.html")
	cfg := newConfig(t, server.URL)

	runner, err := crawler.NewRunnerFromConfig(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("NewRunnerFromConfig failed: %v", err)
	}

	if _, err := runner.Run(context.Background()); !errors.Is(err, crawler.ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if _, err := os.Stat(cfg.CSVPath()); !os.IsNotExist(err) {
		t.Error("Expected no CSV output when the index page is unavailable")
	}
}

func TestSampleConfig_KeepsDefaultTimeout(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join("..", "..", "configs", "agencies.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Fetch.GetTimeout() != config.Default().Fetch.GetTimeout() {
		t.Errorf("Expected sample timeout to match the default, got %v", cfg.Fetch.GetTimeout())
	}

	if cfg.Selectors.Container != config.Default().Selectors.Container {
		t.Errorf("Expected default container selector, got %q", cfg.Selectors.Container)
	}
}
