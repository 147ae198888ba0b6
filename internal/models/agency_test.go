package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAgency_Row(t *testing.T) {
	a := Agency{
		Link:     "https://example.com/agence-rennes",
		Name:     "Agence de Rennes",
		Services: "Vente, Location",
		Address:  "1 rue de la Paix",
		Phone:    "02 99 00 00 00",
		Hours:    "Lun-Ven 9h-18h",
	}

	want := []string{"3", a.Link, a.Name, a.Services, a.Address, a.Phone, a.Hours}
	if diff := cmp.Diff(want, a.Row(3)); diff != "" {
		t.Errorf("Row mismatch (-want +got):\n%s", diff)
	}

	if len(TableHeader) != len(a.Row(1)) {
		t.Errorf("Expected header width %d to match row width %d", len(TableHeader), len(a.Row(1)))
	}
}

func TestAgencyFromFields_Short(t *testing.T) {
	got := AgencyFromFields([]string{"https://example.com/a", "Agence A"})

	want := Agency{Link: "https://example.com/a", Name: "Agence A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AgencyFromFields mismatch (-want +got):\n%s", diff)
	}
}
