package cliplink

import (
	"context"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

// Service is the top-level entry point for the analyze/search pipeline.
type Service interface {
	// AnalyzeClip runs the full pipeline: download, frame extraction,
	// vision labeling, brand detection, product search, ranking.
	AnalyzeClip(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error)

	// SearchProducts runs the finder and ranker on a raw text query,
	// bypassing video download and vision labeling.
	SearchProducts(ctx context.Context, query string, topK int) ([]models.RankedResult, error)

	// Capabilities reports which optional upstreams are configured.
	Capabilities() models.Capabilities

	Close() error
}

// FrameSource downloads a remote video and samples still frames from it.
type FrameSource interface {
	ExtractFrames(ctx context.Context, videoURL string, count int) ([]models.Frame, error)
}

// Labeler annotates a single frame with labels, logos and OCR text.
type Labeler interface {
	Label(ctx context.Context, frame models.Frame) (*models.LabelSet, error)
	Available() bool
	Close() error
}

// Finder queries product-search backends in priority order and returns
// raw candidates. An empty result with a nil error is a valid outcome.
type Finder interface {
	Find(ctx context.Context, query, brandID string, limit int) ([]models.ProductCandidate, error)
}

// Ranker scores candidates against the query and detected brand and
// returns them sorted descending, truncated to topN. A topN of 0 or
// less means the ranker's configured default.
type Ranker interface {
	Rank(ctx context.Context, candidates []models.ProductCandidate, query, brandID string, topN int) []models.RankedResult
}

// Storage is the persistent product catalog used as the last-resort
// search backend.
type Storage interface {
	AddProduct(p models.ProductCandidate) (string, error)
	SearchProducts(query string, limit int) ([]models.ProductCandidate, error)
	ListProducts() ([]models.ProductCandidate, error)
	CountProducts() (int64, error)
	Close() error
}

// Logger is the minimal logging surface the pipeline depends on.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
