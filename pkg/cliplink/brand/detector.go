package brand

import (
	"strings"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

// Detect resolves a brand ID from frame annotations. Signals are
// checked in order of reliability: logo matches first, then OCR text,
// then plain labels. All matching is case-insensitive and the first hit
// in iteration order wins, so the result is deterministic for a given
// input. Empty string means no recognized brand.
func Detect(set *models.LabelSet) string {
	if set == nil {
		return ""
	}

	for _, logo := range set.Logos {
		if id := matchToken(logo.Text); id != "" {
			return id
		}
	}

	for _, line := range set.Texts {
		if id := matchToken(line); id != "" {
			return id
		}
	}

	for _, label := range set.Labels {
		if id, ok := exactMatch(label.Text); ok {
			return id
		}
	}

	return ""
}

// matchToken matches a brand name appearing anywhere inside the text.
// Logo descriptions come back as variants like "Nike Swoosh" and OCR
// lines embed the name in slogans, so substring matching is required
// for both.
func matchToken(text string) string {
	lower := strings.ToLower(text)
	for _, key := range matchOrder {
		if strings.Contains(lower, key) {
			return matchTokens[key]
		}
	}
	return ""
}

// exactMatch requires the whole label to be the brand name. Labels are
// generic category words, so substring matching there produces false
// positives like "gap" inside "bandgap".
func exactMatch(text string) (string, bool) {
	id, ok := matchTokens[strings.ToLower(strings.TrimSpace(text))]
	return id, ok
}
