package storage

import (
	"fmt"
	"os"

	"agencyscraper/internal/formatter"
	"agencyscraper/internal/models"
)

// MarkdownSink writes an aligned markdown table for human review.
type MarkdownSink struct {
	path string
}

// NewMarkdownSink creates a markdown sink writing to path.
func NewMarkdownSink(path string) *MarkdownSink {
	return &MarkdownSink{path: path}
}

// Name implements Sink.
func (s *MarkdownSink) Name() string { return "markdown" }

// Path implements Sink.
func (s *MarkdownSink) Path() string { return s.path }

// Write renders the tabular header and rows and replaces the file.
func (s *MarkdownSink) Write(records []models.Agency) error {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, r.Row(i+1))
	}

	content := formatter.FormatTable(models.TableHeader, rows)

	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
