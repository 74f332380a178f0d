package catalog

import (
	"errors"
	"strings"
	"testing"

	"vendorrag/internal/domain"
)

const sampleCatalog = `# Vendor Survey

Preamble text that is not a vendor entry.

### Vendor 1: Acme AI ｜ Vendor ID: V001 ｜ Category: OCR ｜ URL: https://acme.example ｜

Further notes on Acme.

### Vendor 2: Beta Corp ｜ Vendor ID: V002 ｜ Category: CRM ｜

### Vendor 3: Gamma KK ｜ Vendor ID: V003 ｜ Category: Vision ｜
`

func TestSegment(t *testing.T) {
	units, err := Segment(sampleCatalog)
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	prefixes := []string{"### Vendor 1:", "### Vendor 2:", "### Vendor 3:"}
	for i, u := range units {
		if u.SequenceIndex != i+1 {
			t.Errorf("unit %d: sequence index = %d, want %d", i, u.SequenceIndex, i+1)
		}
		if !strings.HasPrefix(u.RawText, prefixes[i]) {
			t.Errorf("unit %d does not start with its marker: %q", i, u.RawText)
		}
		// No unit may contain another unit's marker.
		if n := marker.FindAllString(u.RawText, -1); len(n) != 1 {
			t.Errorf("unit %d contains %d markers, want 1", i, len(n))
		}
	}
}

func TestSegment_DiscardsPreamble(t *testing.T) {
	units, err := Segment(sampleCatalog)
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}
	for _, u := range units {
		if strings.Contains(u.RawText, "Preamble text") {
			t.Errorf("preamble leaked into unit %d: %q", u.SequenceIndex, u.RawText)
		}
	}
}

func TestSegment_KeepsTrailingBody(t *testing.T) {
	units, err := Segment(sampleCatalog)
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}
	if !strings.Contains(units[0].RawText, "Further notes on Acme.") {
		t.Errorf("body text between markers was lost: %q", units[0].RawText)
	}
}

func TestSegment_NoMarkers(t *testing.T) {
	_, err := Segment("a document without any vendor entries")
	if !errors.Is(err, domain.ErrNoVendors) {
		t.Fatalf("expected ErrNoVendors, got %v", err)
	}
}

func TestSegment_Empty(t *testing.T) {
	_, err := Segment("")
	if !errors.Is(err, domain.ErrNoVendors) {
		t.Fatalf("expected ErrNoVendors, got %v", err)
	}
}
