package vision

import (
	"testing"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

func TestMergeDeduplicatesAndSorts(t *testing.T) {
	sets := []*models.LabelSet{
		{
			Labels: []models.Label{
				{Text: "Shoe", Confidence: 0.80},
				{Text: "Footwear", Confidence: 0.95},
			},
			Logos: []models.Logo{{Text: "Nike", Confidence: 0.70}},
			Texts: []string{"JUST DO IT"},
		},
		{
			Labels: []models.Label{
				{Text: "shoe", Confidence: 0.90},
				{Text: "Sneaker", Confidence: 0.60},
			},
			Logos: []models.Logo{{Text: "NIKE", Confidence: 0.85}},
			Texts: []string{"just do it", "AIR MAX"},
		},
	}

	merged := Merge(sets)

	if len(merged.Labels) != 3 {
		t.Fatalf("expected 3 labels, got %d: %v", len(merged.Labels), merged.Labels)
	}
	if merged.Labels[0].Text != "Footwear" {
		t.Errorf("expected Footwear first, got %s", merged.Labels[0].Text)
	}
	if merged.Labels[1].Text != "Shoe" || merged.Labels[1].Confidence != 0.90 {
		t.Errorf("expected Shoe at 0.90, got %s at %.2f", merged.Labels[1].Text, merged.Labels[1].Confidence)
	}

	if len(merged.Logos) != 1 {
		t.Fatalf("expected 1 logo, got %d", len(merged.Logos))
	}
	if merged.Logos[0].Confidence != 0.85 {
		t.Errorf("expected max logo confidence 0.85, got %.2f", merged.Logos[0].Confidence)
	}

	if len(merged.Texts) != 2 {
		t.Fatalf("expected 2 texts, got %d: %v", len(merged.Texts), merged.Texts)
	}
	if merged.Texts[0] != "JUST DO IT" {
		t.Errorf("expected first-seen casing kept, got %s", merged.Texts[0])
	}
}

func TestMergeEmptyAndNilSets(t *testing.T) {
	merged := Merge([]*models.LabelSet{nil, {}})

	if merged.Labels == nil || merged.Logos == nil || merged.Texts == nil {
		t.Fatal("merged slices must never be nil")
	}
	if len(merged.Labels) != 0 || len(merged.Logos) != 0 || len(merged.Texts) != 0 {
		t.Errorf("expected empty result, got %+v", merged)
	}
}
