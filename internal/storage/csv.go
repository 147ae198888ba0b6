package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"agencyscraper/internal/models"
)

// CSV read errors.
var (
	ErrBadHeader = errors.New("unexpected CSV header")
	ErrBadID     = errors.New("CSV IDs must run 1..n in row order")
)

// CSVSink writes the tabular representation: an ID column plus the shared fields.
type CSVSink struct {
	path string
}

// NewCSVSink creates a CSV sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Name implements Sink.
func (s *CSVSink) Name() string { return "csv" }

// Path implements Sink.
func (s *CSVSink) Path() string { return s.path }

// Write truncates the file and writes the header and one row per record.
func (s *CSVSink) Write(records []models.Agency) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// WriteCSV writes records as UTF-8 CSV with IDs assigned by position.
func WriteCSV(w io.Writer, records []models.Agency) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.TableHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		if err := cw.Write(r.Row(i + 1)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

// ReadCSV reads a file produced by CSVSink back into records, checking the
// header and the ID sequence.
func ReadCSV(path string) ([]models.Agency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) == 0 || !equalRow(rows[0], models.TableHeader) {
		return nil, ErrBadHeader
	}

	records := make([]models.Agency, 0, len(rows)-1)

	for i, row := range rows[1:] {
		if id, err := strconv.Atoi(row[0]); err != nil || id != i+1 {
			return nil, fmt.Errorf("%w: row %d has ID %q", ErrBadID, i+1, row[0])
		}

		records = append(records, models.AgencyFromFields(row[1:]))
	}

	return records, nil
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
