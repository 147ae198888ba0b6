// Package validator checks collected agency records before they are persisted.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"agencyscraper/internal/models"
)

// Validation errors.
var (
	ErrLinkRequired = errors.New("agency link is required")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Err    error
	Field  string
	Link   string
	Record int
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("record %d (%s): %s: %v", e.Record, e.Link, e.Field, e.Err)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalRecords     int
	ValidRecords     int
	InvalidRecords   int
	WithoutPhone     int
	WithPlaceholders int
	EmptyFields      int
	DuplicateLinks   int
}

// RecordValidator checks records before they are persisted. Only a missing link
// invalidates a record; empty extracted text is kept as is and reported.
type RecordValidator struct {
	notAvailable string
}

// NewRecordValidator creates a validator that treats notAvailable as a placeholder.
func NewRecordValidator(notAvailable string) *RecordValidator {
	return &RecordValidator{notAvailable: notAvailable}
}

// Validate checks records in order. Empty extracted fields, duplicate links and
// placeholders only produce warnings.
func (v *RecordValidator) Validate(records []models.Agency) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	seen := make(map[string]int, len(records))

	for i, r := range records {
		id := i + 1
		result.Stats.TotalRecords++

		errs := v.validateRecord(id, r)
		if len(errs) > 0 {
			result.IsValid = false
			result.Stats.InvalidRecords++
			result.Errors = append(result.Errors, errs...)
		} else {
			result.Stats.ValidRecords++
		}

		if r.Phone == "" {
			result.Stats.WithoutPhone++
		}

		if empty := emptyFields(r); len(empty) > 0 {
			result.Stats.EmptyFields++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("record %d has empty fields %s: %s", id, strings.Join(empty, ", "), r.Link))
		}

		if v.hasPlaceholder(r) {
			result.Stats.WithPlaceholders++
		}

		if first, dup := seen[r.Link]; dup && r.Link != "" {
			result.Stats.DuplicateLinks++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("record %d duplicates the link of record %d: %s", id, first, r.Link))
		} else {
			seen[r.Link] = id
		}
	}

	return result
}

func (v *RecordValidator) validateRecord(id int, r models.Agency) []ValidationError {
	if r.Link == "" {
		return []ValidationError{{Record: id, Field: models.ColumnLink, Err: ErrLinkRequired}}
	}

	return nil
}

// emptyFields lists the columns whose extracted text is empty. Phone is
// excluded since an empty phone means no number matched.
func emptyFields(r models.Agency) []string {
	values := map[string]string{
		models.ColumnAgency:   r.Name,
		models.ColumnServices: r.Services,
		models.ColumnAddress:  r.Address,
		models.ColumnHours:    r.Hours,
	}

	var empty []string

	for _, column := range models.FieldColumns {
		if value, ok := values[column]; ok && value == "" {
			empty = append(empty, column)
		}
	}

	return empty
}

func (v *RecordValidator) hasPlaceholder(r models.Agency) bool {
	for _, f := range []string{r.Name, r.Services, r.Address, r.Hours} {
		if f == v.notAvailable {
			return true
		}
	}

	return false
}

// Err joins every validation error, or returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}

	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}

	return errors.Join(errs...)
}

// String returns a summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder

	status := "valid"
	if !r.IsValid {
		status = "invalid"
	}

	fmt.Fprintf(&sb, "Validation: %s | Records: %d total, %d valid, %d invalid",
		status, r.Stats.TotalRecords, r.Stats.ValidRecords, r.Stats.InvalidRecords)
	fmt.Fprintf(&sb, " | %d without phone, %d with placeholders, %d with empty fields, %d duplicate links",
		r.Stats.WithoutPhone, r.Stats.WithPlaceholders, r.Stats.EmptyFields, r.Stats.DuplicateLinks)

	return sb.String()
}
