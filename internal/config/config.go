// Package config provides configuration management for the agency scraper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL        = errors.New("site.base_url is required")
	ErrInvalidBaseURL        = errors.New("site.base_url must be an absolute http(s) URL")
	ErrMissingLinkTitle      = errors.New("site.link_title is required")
	ErrMissingContainer      = errors.New("selectors.container is required")
	ErrMissingFieldSelector  = errors.New("selectors.fields is missing a selector")
	ErrInvalidPhonePattern   = errors.New("selectors.phone_pattern is not a valid regex")
	ErrMissingOutputDir      = errors.New("output.dir is required")
	ErrNoSinks               = errors.New("output.sinks must name at least one sink")
	ErrUnknownSink           = errors.New("output.sinks contains an unknown sink")
	ErrInvalidTimeout        = errors.New("fetch.timeout_sec must be non-negative")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingNotAvailable   = errors.New("selectors.not_available is required")
	ErrMissingOutputBaseName = errors.New("output.base_name is required")
)

// Logical field names used as keys of SelectorsConfig.Fields.
const (
	FieldName     = "name"
	FieldServices = "services"
	FieldAddress  = "address"
	FieldPhone    = "phone"
	FieldHours    = "hours"
)

// Sink names accepted in OutputConfig.Sinks.
const (
	SinkCSV      = "csv"
	SinkJSON     = "json"
	SinkMarkdown = "markdown"
	SinkSQLite   = "sqlite"
)

// Environment variables read by ApplyEnv.
const (
	EnvBaseURL   = "AGENCIES_BASE_URL"
	EnvOutputDir = "AGENCIES_OUTPUT_DIR"
	EnvLogLevel  = "AGENCIES_LOG_LEVEL"
	EnvSinks     = "AGENCIES_SINKS"
)

// FieldNames lists the logical fields every detail page is matched against.
var FieldNames = []string{FieldName, FieldServices, FieldAddress, FieldPhone, FieldHours}

var knownSinks = map[string]bool{
	SinkCSV:      true,
	SinkJSON:     true,
	SinkMarkdown: true,
	SinkSQLite:   true,
}

// Config represents the complete scraper configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Selectors SelectorsConfig `yaml:"selectors"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig identifies the scraped website and its index page.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	IndexPath   string `yaml:"index_path"`
	LinkTitle   string `yaml:"link_title"`
	DedupeLinks bool   `yaml:"dedupe_links"`
}

// SelectorsConfig maps logical record fields to CSS selectors.
type SelectorsConfig struct {
	Fields       map[string]string `yaml:"fields"`
	Container    string            `yaml:"container"`
	PhonePattern string            `yaml:"phone_pattern"`
	PhoneJoin    string            `yaml:"phone_join"`
	HoursLabel   string            `yaml:"hours_label"`
	NotAvailable string            `yaml:"not_available"`
}

// FetchConfig defines HTTP client behavior. TimeoutSec of 0 keeps the transport default.
type FetchConfig struct {
	UserAgent  string `yaml:"user_agent"`
	Accept     string `yaml:"accept"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// OutputConfig defines where and how records are persisted.
type OutputConfig struct {
	Dir          string   `yaml:"dir"`
	BaseName     string   `yaml:"base_name"`
	Sinks        []string `yaml:"sinks"`
	CreateBackup bool     `yaml:"create_backup"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration for the lefeuvre-immobilier site.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:   "https://www.lefeuvre-immobilier.com",
			IndexPath: "/lentreprise/nos-agences-de-proximite",
			LinkTitle: "Consulter la fiche de l'agence",
		},
		Selectors: SelectorsConfig{
			Container: `div[class="informations to-match"]`,
			Fields: map[string]string{
				FieldName:     `h2[itemprop="name"]`,
				FieldServices: "p.services",
				FieldAddress:  "p.adresse",
				FieldPhone:    "p.telephone",
				FieldHours:    "p.horaires",
			},
			PhonePattern: `\d{2} \d{2} \d{2} \d{2} \d{2}`,
			PhoneJoin:    ", ",
			HoursLabel:   "Horaires d'ouverture :",
			NotAvailable: "Not available",
		},
		Fetch: FetchConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
			Accept:    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		},
		Output: OutputConfig{
			Dir:      "response",
			BaseName: "agencies_info",
			Sinks:    []string{SinkCSV, SinkJSON},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ReadConfig loads a YAML file over the defaults without validating it, so
// callers can apply further overrides before calling Validate.
func ReadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := ReadConfig(filepath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays values from AGENCIES_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Site.BaseURL = v
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvSinks); v != "" {
		c.Output.Sinks = ParseSinks(v)
	}
}

// ParseSinks splits a comma-separated sink list, dropping blanks.
func ParseSinks(list string) []string {
	var sinks []string

	for _, s := range strings.Split(list, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			sinks = append(sinks, s)
		}
	}

	return sinks
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return ErrMissingBaseURL
	}

	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.Site.BaseURL)
	}

	if c.Site.LinkTitle == "" {
		return ErrMissingLinkTitle
	}

	if c.Selectors.Container == "" {
		return ErrMissingContainer
	}

	for _, field := range FieldNames {
		if c.Selectors.Fields[field] == "" {
			return fmt.Errorf("%w: %s", ErrMissingFieldSelector, field)
		}
	}

	if _, err := regexp.Compile(c.Selectors.PhonePattern); err != nil || c.Selectors.PhonePattern == "" {
		return fmt.Errorf("%w: %q", ErrInvalidPhonePattern, c.Selectors.PhonePattern)
	}

	if c.Selectors.NotAvailable == "" {
		return ErrMissingNotAvailable
	}

	if c.Fetch.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Output.BaseName == "" {
		return ErrMissingOutputBaseName
	}

	if len(c.Output.Sinks) == 0 {
		return ErrNoSinks
	}

	for _, s := range c.Output.Sinks {
		if !knownSinks[s] {
			return fmt.Errorf("%w: %q", ErrUnknownSink, s)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// IndexURL returns the absolute URL of the agency index page.
func (c *Config) IndexURL() string {
	return strings.TrimRight(c.Site.BaseURL, "/") + "/" + strings.TrimLeft(c.Site.IndexPath, "/")
}

// GetTimeout returns the request timeout; zero means none.
func (f *FetchConfig) GetTimeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// CSVPath follows structure: {dir}/{base_name}.csv.
func (c *Config) CSVPath() string {
	return c.outputPath("csv")
}

// JSONPath follows structure: {dir}/{base_name}.json.
func (c *Config) JSONPath() string {
	return c.outputPath("json")
}

// MarkdownPath follows structure: {dir}/{base_name}.md.
func (c *Config) MarkdownPath() string {
	return c.outputPath("md")
}

// SQLitePath follows structure: {dir}/{base_name}.db.
func (c *Config) SQLitePath() string {
	return c.outputPath("db")
}

func (c *Config) outputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.BaseName+"."+ext)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Index: %s, Sinks: %s, Output: %s}",
		c.IndexURL(),
		strings.Join(c.Output.Sinks, ","),
		c.Output.Dir,
	)
}
