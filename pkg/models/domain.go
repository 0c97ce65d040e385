package models

// Frame is a single still image sampled from a video.
type Frame struct {
	Data      []byte  // JPEG bytes, held in memory for the request only
	OffsetSec float64 // Timestamp offset within the source video
	Index     int     // Sequence index within the extracted batch
}

// Label is a descriptive tag for image content with a confidence score.
type Label struct {
	Text       string  `json:"label"`
	Confidence float64 `json:"confidence"` // always within [0,1]
}

// Logo is a detected brand mark with a confidence score.
type Logo struct {
	Text       string  `json:"logo"`
	Confidence float64 `json:"confidence"`
}

// LabelSet is the visual annotation output for one frame, or the merged
// annotations of all frames. Slices may be empty but are never nil.
type LabelSet struct {
	Labels []Label
	Logos  []Logo
	Texts  []string // raw OCR lines
}

// ProductCandidate is an unranked product listing returned by a search
// backend. Price is 0 when the backend could not determine it.
type ProductCandidate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	ImageURL    string   `json:"image_url"`
	ProductURL  string   `json:"product_url"`
	Source      string   `json:"source"`
	Tags        []string `json:"tags"`
}

// RankedResult is a ProductCandidate with its combined ranking score.
type RankedResult struct {
	ProductCandidate
	Score      float64 // combined weighted score in [0,1]
	TextScore  float64
	BrandScore float64
	Rank       int
}

// Capabilities reports which optional upstream integrations are
// configured. A missing capability degrades the pipeline rather than
// failing it at startup.
type Capabilities struct {
	Vision     bool `json:"vision"`
	Embeddings bool `json:"embeddings"`
	Search     bool `json:"search"`
	Catalog    bool `json:"catalog"`
}
