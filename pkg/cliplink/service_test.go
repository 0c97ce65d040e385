package cliplink

import (
	"context"
	"errors"
	"testing"

	"github.com/himanishpuri/ClipLink/pkg/cliplink/rank"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

type fakeFrameSource struct {
	frames []models.Frame
	err    error
}

func (f *fakeFrameSource) ExtractFrames(ctx context.Context, videoURL string, count int) ([]models.Frame, error) {
	return f.frames, f.err
}

type fakeLabeler struct {
	sets map[int]*models.LabelSet
	errs map[int]error
}

func (f *fakeLabeler) Label(ctx context.Context, frame models.Frame) (*models.LabelSet, error) {
	if err, ok := f.errs[frame.Index]; ok {
		return nil, err
	}
	return f.sets[frame.Index], nil
}

func (f *fakeLabeler) Available() bool { return true }
func (f *fakeLabeler) Close() error    { return nil }

type fakeFinder struct {
	candidates []models.ProductCandidate
	err        error
	gotQuery   string
	gotBrand   string
}

func (f *fakeFinder) Find(ctx context.Context, query, brandID string, limit int) ([]models.ProductCandidate, error) {
	f.gotQuery = query
	f.gotBrand = brandID
	return f.candidates, f.err
}

type fakeRanker struct{}

func (fakeRanker) Rank(ctx context.Context, candidates []models.ProductCandidate, query, brandID string, topN int) []models.RankedResult {
	if topN > 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}
	out := make([]models.RankedResult, len(candidates))
	for i, c := range candidates {
		out[i] = models.RankedResult{ProductCandidate: c, Rank: i + 1}
	}
	return out
}

type fakeStorage struct{}

func (fakeStorage) AddProduct(p models.ProductCandidate) (string, error) { return p.ID, nil }
func (fakeStorage) SearchProducts(query string, limit int) ([]models.ProductCandidate, error) {
	return nil, nil
}
func (fakeStorage) ListProducts() ([]models.ProductCandidate, error) { return nil, nil }
func (fakeStorage) CountProducts() (int64, error)                    { return 0, nil }
func (fakeStorage) Close() error                                     { return nil }

func newTestService(t *testing.T, opts ...Option) Service {
	t.Helper()

	base := []Option{
		WithStorage(fakeStorage{}),
		WithFrameSource(&fakeFrameSource{frames: []models.Frame{{Index: 0}}}),
		WithLabeler(&fakeLabeler{sets: map[int]*models.LabelSet{0: {
			Labels: []models.Label{{Text: "Footwear", Confidence: 0.9}},
			Logos:  []models.Logo{},
			Texts:  []string{},
		}}}),
		WithFinder(&fakeFinder{}),
		WithRanker(fakeRanker{}),
	}
	svc, err := NewService(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestAnalyzeClipRejectsBadURL(t *testing.T) {
	svc := newTestService(t)

	tests := []string{
		"",
		"not a url",
		"ftp://instagram.com/reel/x",
		"https://example.com/video",
	}
	for _, url := range tests {
		_, err := svc.AnalyzeClip(context.Background(), AnalyzeRequest{URL: url})
		var inputErr *models.InputError
		if !errors.As(err, &inputErr) {
			t.Errorf("AnalyzeClip(%q) error = %v, want InputError", url, err)
		}
	}
}

func TestAnalyzeClipFullPipeline(t *testing.T) {
	finder := &fakeFinder{candidates: []models.ProductCandidate{
		{ID: "p1", Title: "Nike Shoe"},
	}}

	svc := newTestService(t,
		WithFrameSource(&fakeFrameSource{frames: []models.Frame{{Index: 0}, {Index: 1}}}),
		WithLabeler(&fakeLabeler{sets: map[int]*models.LabelSet{
			0: {
				Labels: []models.Label{{Text: "Footwear", Confidence: 0.95}},
				Logos:  []models.Logo{{Text: "Nike", Confidence: 0.8}},
				Texts:  []string{},
			},
			1: {
				Labels: []models.Label{{Text: "Shoe", Confidence: 0.9}},
				Logos:  []models.Logo{},
				Texts:  []string{},
			},
		}}),
		WithFinder(finder),
	)

	result, err := svc.AnalyzeClip(context.Background(), AnalyzeRequest{
		URL:  "https://www.instagram.com/reel/abc123",
		Note: "white shoes",
	})
	if err != nil {
		t.Fatalf("AnalyzeClip() error = %v", err)
	}

	if result.Brand != "nike" {
		t.Errorf("Brand = %q, want nike", result.Brand)
	}
	if result.Query != "Nike Footwear Shoe white shoes" {
		t.Errorf("Query = %q", result.Query)
	}
	if finder.gotBrand != "nike" {
		t.Errorf("finder received brand %q, want nike", finder.gotBrand)
	}
	if len(result.Products) != 1 || result.Products[0].ID != "p1" {
		t.Errorf("Products = %+v", result.Products)
	}
	if result.FramesExtracted != 2 || result.FramesLabeled != 2 {
		t.Errorf("frames = %d/%d, want 2/2", result.FramesLabeled, result.FramesExtracted)
	}
}

func TestAnalyzeClipToleratesPartialLabelFailures(t *testing.T) {
	svc := newTestService(t,
		WithFrameSource(&fakeFrameSource{frames: []models.Frame{{Index: 0}, {Index: 1}, {Index: 2}}}),
		WithLabeler(&fakeLabeler{
			sets: map[int]*models.LabelSet{
				1: {
					Labels: []models.Label{{Text: "Chair", Confidence: 0.9}},
					Logos:  []models.Logo{},
					Texts:  []string{},
				},
			},
			errs: map[int]error{
				0: errors.New("quota"),
				2: errors.New("quota"),
			},
		}),
	)

	result, err := svc.AnalyzeClip(context.Background(), AnalyzeRequest{
		URL: "https://www.youtube.com/watch?v=abc",
	})
	if err != nil {
		t.Fatalf("AnalyzeClip() error = %v", err)
	}
	if result.FramesLabeled != 1 {
		t.Errorf("FramesLabeled = %d, want 1", result.FramesLabeled)
	}
	if len(result.Labels) != 1 || result.Labels[0].Text != "Chair" {
		t.Errorf("Labels = %+v", result.Labels)
	}
}

func TestAnalyzeClipFailsWhenNoFrameLabels(t *testing.T) {
	svc := newTestService(t,
		WithLabeler(&fakeLabeler{errs: map[int]error{0: errors.New("auth")}}),
	)

	_, err := svc.AnalyzeClip(context.Background(), AnalyzeRequest{
		URL: "https://www.tiktok.com/@user/video/1",
	})

	var visionErr *models.VisionError
	if !errors.As(err, &visionErr) {
		t.Errorf("error = %v, want VisionError", err)
	}
}

func TestAnalyzeClipEmptyFindersIsNotAnError(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.AnalyzeClip(context.Background(), AnalyzeRequest{
		URL: "https://youtu.be/abc",
	})
	if err != nil {
		t.Fatalf("AnalyzeClip() error = %v", err)
	}
	if len(result.Products) != 0 {
		t.Errorf("expected no products, got %+v", result.Products)
	}
}

func TestAnalyzeClipPropagatesDownloadFailure(t *testing.T) {
	svc := newTestService(t,
		WithFrameSource(&fakeFrameSource{err: &models.DownloadError{URL: "u", Err: errors.New("blocked")}}),
	)

	_, err := svc.AnalyzeClip(context.Background(), AnalyzeRequest{
		URL: "https://www.instagram.com/reel/x",
	})

	var dlErr *models.DownloadError
	if !errors.As(err, &dlErr) {
		t.Errorf("error = %v, want DownloadError", err)
	}
}

func TestSearchProductsValidatesQuery(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SearchProducts(context.Background(), "", 5)
	var inputErr *models.InputError
	if !errors.As(err, &inputErr) {
		t.Errorf("error = %v, want InputError", err)
	}
}

func TestSearchProductsTruncatesToTopK(t *testing.T) {
	finder := &fakeFinder{candidates: []models.ProductCandidate{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
	}}
	svc := newTestService(t, WithFinder(finder))

	results, err := svc.SearchProducts(context.Background(), "shoes", 2)
	if err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
	if finder.gotQuery != "shoes" {
		t.Errorf("finder received query %q", finder.gotQuery)
	}
}

func TestSearchProductsHonorsTopKAboveDefault(t *testing.T) {
	candidates := make([]models.ProductCandidate, 8)
	for i := range candidates {
		candidates[i] = models.ProductCandidate{ID: string(rune('a' + i)), Title: "thing"}
	}
	finder := &fakeFinder{candidates: candidates}

	svc := newTestService(t,
		WithFinder(finder),
		WithRanker(rank.NewWeightedRanker(nil, 0.7, 0.3, 5, nil)),
	)

	results, err := svc.SearchProducts(context.Background(), "thing", 8)
	if err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	if results[7].Rank != 8 {
		t.Errorf("last Rank = %d, want 8", results[7].Rank)
	}
}
