package search

import (
	"testing"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		brandID string
		labels  []models.Label
		note    string
		want    string
	}{
		{
			name:    "brand labels and note",
			brandID: "nike",
			labels: []models.Label{
				{Text: "Footwear", Confidence: 0.95},
				{Text: "Sneaker", Confidence: 0.90},
			},
			note: "white shoes",
			want: "Nike Footwear Sneaker white shoes",
		},
		{
			name:    "duplicate words collapse keeping first casing",
			brandID: "nike",
			labels: []models.Label{
				{Text: "Shoe", Confidence: 0.95},
				{Text: "Running shoe", Confidence: 0.90},
			},
			note: "NIKE shoe red",
			want: "Nike Shoe Running red",
		},
		{
			name:   "labels capped at three",
			labels: []models.Label{{Text: "One"}, {Text: "Two"}, {Text: "Three"}, {Text: "Four"}},
			want:   "One Two Three",
		},
		{
			name:    "unknown brand ignored",
			brandID: "nobody",
			labels:  []models.Label{{Text: "Chair"}},
			want:    "Chair",
		},
		{
			name: "everything empty falls back",
			want: "trending product",
		},
		{
			name: "whitespace note ignored",
			note: "   ",
			want: "trending product",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.brandID, tt.labels, tt.note); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
