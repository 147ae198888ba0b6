package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gojetpack/pyos"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"agencyscraper/internal/config"
	"agencyscraper/internal/crawler"
	"agencyscraper/internal/logger"
)

const defaultConfigPath = "configs/agencies.yaml"

type rootOptions struct {
	configFile string
	envFile    string
	baseURL    string
	outputDir  string
	sinks      string
	logLevel   string
	summary    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "agencies [--config FILE] [--base-url URL] [--output DIR] [--sinks csv,json] [--summary]",
		Short:         "agencies scrapes every agency page listed on the Lefeuvre Immobilier site.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.NewLogger("info")

			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}

			log.SetLevel(cfg.Logging.Level)
			log.Debug("configuration resolved", "config", cfg.String())

			runner, err := crawler.NewRunnerFromConfig(cfg, log)
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			if opts.summary {
				renderSummary(cmd.OutOrStdout(), result)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to YAML configuration file (default "+defaultConfigPath+" when present)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading AGENCIES_* variables")
	flags.StringVar(&opts.baseURL, "base-url", "", "Site origin (overrides config)")
	flags.StringVar(&opts.outputDir, "output", "", "Output directory (overrides config)")
	flags.StringVar(&opts.sinks, "sinks", "", "Comma separated sinks: csv, json, markdown, sqlite (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.BoolVar(&opts.summary, "summary", false, "Print a table of the collected agencies")

	cmd.AddCommand(newInitConfigCmd())

	return cmd
}

// resolveConfig layers the config file, the environment and explicit flags,
// in that order, then validates the result once.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", opts.envFile, err)
	}

	cfg, err := loadConfigFile(opts.configFile)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()

	flags := cmd.Flags()

	if flags.Changed("base-url") {
		cfg.Site.BaseURL = opts.baseURL
	}

	if flags.Changed("output") {
		cfg.Output.Dir = opts.outputDir
	}

	if flags.Changed("sinks") {
		cfg.Output.Sinks = config.ParseSinks(opts.sinks)
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(opts.logLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	if path == "" {
		if !pyos.Path.IsFile(defaultConfigPath) {
			return config.Default(), nil
		}

		path = defaultConfigPath
	}

	cfg, err := config.ReadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return cfg, nil
}
