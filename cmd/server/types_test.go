package main

import (
	"testing"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		currency string
		want     string
	}{
		{"zero price", 0, "USD", "price unavailable"},
		{"negative price", -1, "USD", "price unavailable"},
		{"usd", 149.99, "USD", "$149.99"},
		{"missing currency defaults to usd", 20, "", "$20.00"},
		{"other currency", 99.5, "EUR", "99.50 EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPrice(tt.price, tt.currency); got != tt.want {
				t.Errorf("formatPrice(%v, %q) = %q, want %q", tt.price, tt.currency, got, tt.want)
			}
		})
	}
}

func TestAnalyzeRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     AnalyzeRequest
		wantErr bool
	}{
		{"valid", AnalyzeRequest{URL: "https://www.instagram.com/reel/abc"}, false},
		{"missing url", AnalyzeRequest{}, true},
		{"unsupported host", AnalyzeRequest{URL: "https://vimeo.com/1"}, true},
		{"too many frames", AnalyzeRequest{URL: "https://youtu.be/a", NumFrames: MaxFramesPerRequest + 1}, true},
		{"negative frames", AnalyzeRequest{URL: "https://youtu.be/a", NumFrames: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchRequestValidate(t *testing.T) {
	if err := (&SearchRequest{Query: "shoes"}).Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := (&SearchRequest{}).Validate(); err == nil {
		t.Error("empty query accepted")
	}
	if err := (&SearchRequest{Query: "x", TopK: -1}).Validate(); err == nil {
		t.Error("negative top_k accepted")
	}
}

func TestToProductDTO(t *testing.T) {
	dto := toProductDTO(models.RankedResult{
		ProductCandidate: models.ProductCandidate{
			ID: "p1", Title: "Shoe", Price: 50, Currency: "USD", ProductURL: "https://x",
			Source: "catalog",
		},
		Score: 0.8, TextScore: 0.9, BrandScore: 0.5, Rank: 1,
	})

	if dto.PriceDisplay != "$50.00" {
		t.Errorf("PriceDisplay = %q", dto.PriceDisplay)
	}
	if dto.Rank != 1 || dto.Score != 0.8 {
		t.Errorf("dto = %+v", dto)
	}
}
