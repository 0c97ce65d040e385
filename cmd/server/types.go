package main

import (
	"fmt"
	"strings"

	"github.com/himanishpuri/ClipLink/pkg/models"
	"github.com/himanishpuri/ClipLink/pkg/utils"
)

// Maximum frames a single request may ask for.
const MaxFramesPerRequest = 10

// AnalyzeRequest is the body for POST /api/analyze
type AnalyzeRequest struct {
	URL       string `json:"url"`
	Note      string `json:"note,omitempty"`
	NumFrames int    `json:"num_frames,omitempty"`
}

// Validate checks the analyze request fields
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if err := utils.ValidateVideoURL(r.URL); err != nil {
		return err
	}
	if r.NumFrames < 0 || r.NumFrames > MaxFramesPerRequest {
		return fmt.Errorf("num_frames must be between 0 and %d", MaxFramesPerRequest)
	}
	return nil
}

// SearchRequest is the body for POST /api/search
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// Validate checks the search request fields
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query is required")
	}
	if r.TopK < 0 {
		return fmt.Errorf("top_k must not be negative")
	}
	return nil
}

// ProductDTO is the wire form of a ranked product
type ProductDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	PriceDisplay string   `json:"price_display"`
	Currency     string   `json:"currency,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	ProductURL   string   `json:"product_url"`
	Source       string   `json:"source"`
	Tags         []string `json:"tags,omitempty"`
	Score        float64  `json:"score"`
	TextScore    float64  `json:"text_score"`
	BrandScore   float64  `json:"brand_score"`
	Rank         int      `json:"rank"`
}

// AnalyzeResponse is the response for POST /api/analyze
type AnalyzeResponse struct {
	Products        []ProductDTO   `json:"products"`
	Count           int            `json:"count"`
	DetectedLabels  []models.Label `json:"detected_labels"`
	DetectedBrand   string         `json:"detected_brand,omitempty"`
	Query           string         `json:"query"`
	FramesExtracted int            `json:"frames_extracted"`
	FramesLabeled   int            `json:"frames_labeled"`
}

// SearchResponse is the response for POST /api/search
type SearchResponse struct {
	Products []ProductDTO `json:"products"`
	Count    int          `json:"count"`
	Query    string       `json:"query"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status       string              `json:"status"`
	Time         string              `json:"time"`
	Capabilities models.Capabilities `json:"capabilities"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// toProductDTO converts a ranked result for the wire, rendering the
// human-readable price.
func toProductDTO(r models.RankedResult) ProductDTO {
	return ProductDTO{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		PriceDisplay: formatPrice(r.Price, r.Currency),
		Currency:     r.Currency,
		ImageURL:     r.ImageURL,
		ProductURL:   r.ProductURL,
		Source:       r.Source,
		Tags:         r.Tags,
		Score:        r.Score,
		TextScore:    r.TextScore,
		BrandScore:   r.BrandScore,
		Rank:         r.Rank,
	}
}

func toProductDTOs(results []models.RankedResult) []ProductDTO {
	dtos := make([]ProductDTO, len(results))
	for i, r := range results {
		dtos[i] = toProductDTO(r)
	}
	return dtos
}

// formatPrice renders a display price. Scraped and pseudo candidates
// often carry no price; those render as unavailable rather than $0.00.
func formatPrice(price float64, currency string) string {
	if price <= 0 {
		return "price unavailable"
	}
	if currency == "" {
		currency = "USD"
	}
	if currency == "USD" {
		return fmt.Sprintf("$%.2f", price)
	}
	return fmt.Sprintf("%.2f %s", price, currency)
}
