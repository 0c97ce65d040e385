package cliplink

import "github.com/himanishpuri/ClipLink/pkg/models"

// AnalyzeRequest describes one analyze invocation.
type AnalyzeRequest struct {
	URL       string // video URL (required)
	Note      string // optional free-text description from the user
	NumFrames int    // frames to sample; 0 means the configured default
}

// AnalyzeResult is the pipeline output for one request.
type AnalyzeResult struct {
	Products        []models.RankedResult
	Labels          []models.Label // merged labels, descending confidence
	Brand           string         // detected brand id, empty when none
	Query           string         // the search query actually used
	FramesExtracted int
	FramesLabeled   int // may be lower than FramesExtracted on partial failures
}
