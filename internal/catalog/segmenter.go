// Package catalog segments a flat vendor catalog document into retrievable
// units, one per vendor entry.
package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"vendorrag/internal/domain"
)

// marker denotes the start of a vendor entry in the source catalog.
var marker = regexp.MustCompile(`### Vendor \d+:`)

// Load reads the catalog document from disk.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read catalog %s: %w", path, err)
	}
	return string(data), nil
}

// Segment splits the catalog text immediately before each vendor marker,
// so every unit starts at a marker and runs up to the next marker or end
// of text. Text before the first marker is front matter and is discarded.
// Zero resulting units means the catalog is malformed and is an error.
func Segment(text string) ([]domain.Unit, error) {
	locs := marker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil, domain.ErrNoVendors
	}
	units := make([]domain.Unit, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		units = append(units, domain.Unit{
			RawText:       strings.TrimSpace(text[loc[0]:end]),
			SequenceIndex: i + 1,
		})
	}
	return units, nil
}
