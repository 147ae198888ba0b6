package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"agencyscraper/internal/models"
)

// JSONSink writes the records as an indented array of field-keyed objects.
// It carries no synthetic ID.
type JSONSink struct {
	path string
}

// NewJSONSink creates a JSON sink writing to path.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

// Name implements Sink.
func (s *JSONSink) Name() string { return "json" }

// Path implements Sink.
func (s *JSONSink) Path() string { return s.path }

// Write truncates the file and writes the full array.
func (s *JSONSink) Write(records []models.Agency) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if records == nil {
		records = []models.Agency{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(records); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return f.Close()
}

// ReadJSON reads a file produced by JSONSink.
func ReadJSON(path string) ([]models.Agency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var records []models.Agency
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return records, nil
}
