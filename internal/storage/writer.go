// Package storage persists agency records to the configured output sinks.
package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/gojetpack/pyos"

	"agencyscraper/internal/config"
	"agencyscraper/internal/models"
)

// Storage errors.
var (
	ErrNotADirectory = errors.New("output path exists and is not a directory")
	ErrUnknownSink   = errors.New("unknown sink")
)

// Sink writes the full record list to one destination, replacing prior content.
type Sink interface {
	Name() string
	Path() string
	Write(records []models.Agency) error
}

// Writer fans records out to its sinks in order and stops at the first failure.
type Writer struct {
	sinks        []Sink
	createBackup bool
}

// NewWriter creates a writer over explicit sinks.
func NewWriter(createBackup bool, sinks ...Sink) *Writer {
	return &Writer{sinks: sinks, createBackup: createBackup}
}

// NewWriterFromConfig builds the sinks named in cfg.Output.Sinks.
func NewWriterFromConfig(cfg *config.Config) (*Writer, error) {
	sinks := make([]Sink, 0, len(cfg.Output.Sinks))

	for _, name := range cfg.Output.Sinks {
		switch name {
		case config.SinkCSV:
			sinks = append(sinks, NewCSVSink(cfg.CSVPath()))
		case config.SinkJSON:
			sinks = append(sinks, NewJSONSink(cfg.JSONPath()))
		case config.SinkMarkdown:
			sinks = append(sinks, NewMarkdownSink(cfg.MarkdownPath()))
		case config.SinkSQLite:
			sinks = append(sinks, NewSQLiteSink(cfg.SQLitePath()))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSink, name)
		}
	}

	return NewWriter(cfg.Output.CreateBackup, sinks...), nil
}

// Write persists records to every sink and returns the written paths.
func (w *Writer) Write(records []models.Agency) ([]string, error) {
	paths := make([]string, 0, len(w.sinks))

	for _, sink := range w.sinks {
		if w.createBackup {
			if err := backup(sink.Path()); err != nil {
				return paths, fmt.Errorf("%s sink: %w", sink.Name(), err)
			}
		}

		if err := sink.Write(records); err != nil {
			return paths, fmt.Errorf("%s sink: %w", sink.Name(), err)
		}

		paths = append(paths, sink.Path())
	}

	return paths, nil
}

// EnsureDir creates dir if it is missing. An existing directory is not an error.
func EnsureDir(dir string) error {
	if pyos.Path.Exist(dir) {
		if !pyos.Path.IsDir(dir) {
			return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
		}

		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	return nil
}

// backup renames an existing file to path.bak.
func backup(path string) error {
	if !pyos.Path.IsFile(path) {
		return nil
	}

	if err := os.Rename(path, path+".bak"); err != nil {
		return fmt.Errorf("could not create backup: %w", err)
	}

	return nil
}
