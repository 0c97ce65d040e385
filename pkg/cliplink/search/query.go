package search

import (
	"strings"

	"github.com/himanishpuri/ClipLink/pkg/cliplink/brand"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

const (
	// Labels beyond the top few add noise, not recall.
	maxQueryLabels = 3

	// Query used when nothing at all was detected.
	defaultQuery = "trending product"
)

// BuildQuery assembles the search query from the detected brand, the
// strongest labels and the user's note, in that order. Words are
// deduplicated case-insensitively keeping the first casing seen. An
// empty result falls back to a generic query.
func BuildQuery(brandID string, labels []models.Label, note string) string {
	var parts []string

	if b, ok := brand.Lookup(brandID); ok {
		parts = append(parts, b.Display)
	}

	for i, l := range labels {
		if i >= maxQueryLabels {
			break
		}
		parts = append(parts, l.Text)
	}

	if note = strings.TrimSpace(note); note != "" {
		parts = append(parts, note)
	}

	seen := make(map[string]bool)
	var words []string
	for _, part := range parts {
		for _, word := range strings.Fields(part) {
			key := strings.ToLower(word)
			if seen[key] {
				continue
			}
			seen[key] = true
			words = append(words, word)
		}
	}

	if len(words) == 0 {
		return defaultQuery
	}
	return strings.Join(words, " ")
}
