package validator

import (
	"errors"
	"strings"
	"testing"

	"agencyscraper/internal/models"
)

const notAvailable = "Not available"

func validAgency(link string) models.Agency {
	return models.Agency{
		Link:     link,
		Name:     "Agence de Rennes",
		Services: "Vente",
		Address:  "1 rue de la Paix, 35000 Rennes",
		Phone:    "02 99 00 00 00",
		Hours:    "Lun-Ven 9h-18h",
	}
}

func TestRecordValidator_AllValid(t *testing.T) {
	v := NewRecordValidator(notAvailable)

	result := v.Validate([]models.Agency{validAgency("https://example.com/a"), validAgency("https://example.com/b")})
	if !result.IsValid {
		t.Fatalf("Expected valid result, got errors: %v", result.Err())
	}

	if result.Stats.ValidRecords != 2 {
		t.Errorf("Expected 2 valid records, got %d", result.Stats.ValidRecords)
	}

	if result.Err() != nil {
		t.Errorf("Expected nil Err, got %v", result.Err())
	}
}

func TestRecordValidator_PlaceholdersAndEmptyPhone(t *testing.T) {
	v := NewRecordValidator(notAvailable)

	a := validAgency("https://example.com/a")
	a.Name = notAvailable
	a.Hours = notAvailable
	a.Phone = ""

	result := v.Validate([]models.Agency{a})
	if !result.IsValid {
		t.Fatalf("Placeholders and empty phone must be valid, got %v", result.Err())
	}

	if result.Stats.WithPlaceholders != 1 || result.Stats.WithoutPhone != 1 {
		t.Errorf("Unexpected stats: %+v", result.Stats)
	}
}

func TestRecordValidator_MissingLink(t *testing.T) {
	v := NewRecordValidator(notAvailable)

	result := v.Validate([]models.Agency{validAgency("https://example.com/ok"), validAgency("")})
	if result.IsValid {
		t.Fatal("Expected invalid result")
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}

	if result.Errors[0].Record != 2 {
		t.Errorf("Expected error on record 2, got %d", result.Errors[0].Record)
	}

	if err := result.Err(); !errors.Is(err, ErrLinkRequired) {
		t.Errorf("Expected joined error to wrap ErrLinkRequired, got %v", err)
	}

	if !strings.Contains(result.String(), "1 invalid") {
		t.Errorf("Unexpected summary: %s", result.String())
	}
}

func TestRecordValidator_EmptyFieldsWarn(t *testing.T) {
	v := NewRecordValidator(notAvailable)

	a := validAgency("https://example.com/a")
	a.Services = ""
	a.Hours = ""

	result := v.Validate([]models.Agency{a})
	if !result.IsValid {
		t.Fatalf("Empty extracted text must not invalidate the record, got %v", result.Err())
	}

	if result.Stats.EmptyFields != 1 || len(result.Warnings) != 1 {
		t.Fatalf("Expected one empty-field warning, got %+v / %v", result.Stats, result.Warnings)
	}

	if !strings.Contains(result.Warnings[0], "Services, Hours") {
		t.Errorf("Expected warning to name the empty columns, got %s", result.Warnings[0])
	}
}

func TestRecordValidator_DuplicateLinksWarn(t *testing.T) {
	v := NewRecordValidator(notAvailable)

	result := v.Validate([]models.Agency{validAgency("https://example.com/a"), validAgency("https://example.com/a")})
	if !result.IsValid {
		t.Fatal("Duplicates must not invalidate the result")
	}

	if result.Stats.DuplicateLinks != 1 || len(result.Warnings) != 1 {
		t.Errorf("Expected one duplicate warning, got %+v / %v", result.Stats, result.Warnings)
	}
}
