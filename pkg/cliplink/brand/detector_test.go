package brand

import (
	"strings"
	"testing"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

func TestDetectLogoBeatsTextAndLabels(t *testing.T) {
	set := &models.LabelSet{
		Logos:  []models.Logo{{Text: "Nike Swoosh", Confidence: 0.9}},
		Texts:  []string{"adidas originals"},
		Labels: []models.Label{{Text: "Zara", Confidence: 0.8}},
	}

	if got := Detect(set); got != "nike" {
		t.Errorf("expected nike from logo, got %q", got)
	}
}

func TestDetectFallsBackToOCRText(t *testing.T) {
	set := &models.LabelSet{
		Logos:  []models.Logo{{Text: "Some Shape", Confidence: 0.9}},
		Texts:  []string{"NEW FROM SEPHORA", "50% off"},
		Labels: []models.Label{{Text: "Cosmetics", Confidence: 0.8}},
	}

	if got := Detect(set); got != "sephora" {
		t.Errorf("expected sephora from OCR text, got %q", got)
	}
}

func TestDetectLabelRequiresExactMatch(t *testing.T) {
	set := &models.LabelSet{
		Labels: []models.Label{
			{Text: "Bandgap reference", Confidence: 0.9},
			{Text: "uniqlo", Confidence: 0.7},
		},
	}

	if got := Detect(set); got != "uniqlo" {
		t.Errorf("expected uniqlo from exact label, got %q", got)
	}
}

func TestDetectPunctuationFreeAliases(t *testing.T) {
	tests := []struct {
		set  *models.LabelSet
		want string
	}{
		{&models.LabelSet{Texts: []string{"LEVIS 501 ORIGINAL"}}, "levi's"},
		{&models.LabelSet{Texts: []string{"HM HOME collection"}}, "h&m"},
		{&models.LabelSet{Labels: []models.Label{{Text: "levis", Confidence: 0.8}}}, "levi's"},
	}
	for _, tt := range tests {
		if got := Detect(tt.set); got != tt.want {
			t.Errorf("Detect(%v) = %q, want %q", tt.set, got, tt.want)
		}
	}
	if _, ok := Lookup("levi's"); !ok {
		t.Error("canonical ID missing from vocabulary")
	}
}

func TestDetectNoMatch(t *testing.T) {
	set := &models.LabelSet{
		Labels: []models.Label{{Text: "Furniture", Confidence: 0.9}},
		Texts:  []string{"summer sale"},
	}

	if got := Detect(set); got != "" {
		t.Errorf("expected no brand, got %q", got)
	}
	if got := Detect(nil); got != "" {
		t.Errorf("expected no brand for nil set, got %q", got)
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	set := &models.LabelSet{
		Texts: []string{"apple vs samsung comparison"},
	}

	first := Detect(set)
	for i := 0; i < 50; i++ {
		if got := Detect(set); got != first {
			t.Fatalf("detection not deterministic: %q then %q", first, got)
		}
	}
	if first != "apple" {
		t.Errorf("expected apple (first in scan order), got %q", first)
	}
}

func TestStorefrontURL(t *testing.T) {
	got := StorefrontURL("nike", "white shoes")
	if !strings.Contains(got, "nike.com") || !strings.Contains(got, "white+shoes") {
		t.Errorf("unexpected storefront URL %q", got)
	}
	if got := StorefrontURL("nobody", "x"); got != "" {
		t.Errorf("expected empty URL for unknown brand, got %q", got)
	}
}
