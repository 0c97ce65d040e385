package vision

import (
	"sort"
	"strings"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

// Merge combines per-frame annotation sets into one. Labels and logos
// are deduplicated case-insensitively keeping the highest confidence
// seen, labels are ordered by confidence descending, and OCR lines keep
// first-seen order.
func Merge(sets []*models.LabelSet) *models.LabelSet {
	merged := emptyLabelSet()

	labelIdx := make(map[string]int)
	logoIdx := make(map[string]int)
	seenText := make(map[string]bool)

	for _, set := range sets {
		if set == nil {
			continue
		}
		for _, l := range set.Labels {
			key := strings.ToLower(l.Text)
			if i, ok := labelIdx[key]; ok {
				if l.Confidence > merged.Labels[i].Confidence {
					merged.Labels[i].Confidence = l.Confidence
				}
				continue
			}
			labelIdx[key] = len(merged.Labels)
			merged.Labels = append(merged.Labels, l)
		}
		for _, l := range set.Logos {
			key := strings.ToLower(l.Text)
			if i, ok := logoIdx[key]; ok {
				if l.Confidence > merged.Logos[i].Confidence {
					merged.Logos[i].Confidence = l.Confidence
				}
				continue
			}
			logoIdx[key] = len(merged.Logos)
			merged.Logos = append(merged.Logos, l)
		}
		for _, t := range set.Texts {
			key := strings.ToLower(t)
			if seenText[key] {
				continue
			}
			seenText[key] = true
			merged.Texts = append(merged.Texts, t)
		}
	}

	sort.SliceStable(merged.Labels, func(i, j int) bool {
		return merged.Labels[i].Confidence > merged.Labels[j].Confidence
	})
	sort.SliceStable(merged.Logos, func(i, j int) bool {
		return merged.Logos[i].Confidence > merged.Logos[j].Confidence
	})

	return merged
}
