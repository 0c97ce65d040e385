package search

import (
	"context"
	"errors"
	"testing"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

type fakeBackend struct {
	name    string
	results []models.ProductCandidate
	err     error
	calls   int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Search(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error) {
	f.calls++
	return f.results, f.err
}

func TestChainFinderFirstNonEmptyWins(t *testing.T) {
	first := &fakeBackend{name: "first"}
	second := &fakeBackend{
		name:    "second",
		results: []models.ProductCandidate{{ID: "a", Title: "Found"}},
	}
	third := &fakeBackend{
		name:    "third",
		results: []models.ProductCandidate{{ID: "b", Title: "Unreached"}},
	}

	finder := NewChainFinder(nil, first, second, third)
	got, err := finder.Find(context.Background(), "shoes", "", 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("expected second backend's result, got %+v", got)
	}
	if third.calls != 0 {
		t.Errorf("third backend should not be queried after a hit")
	}
}

func TestChainFinderSkipsFailedBackends(t *testing.T) {
	broken := &fakeBackend{name: "broken", err: errors.New("boom")}
	healthy := &fakeBackend{
		name:    "healthy",
		results: []models.ProductCandidate{{ID: "a"}},
	}

	finder := NewChainFinder(nil, broken, healthy)
	got, err := finder.Find(context.Background(), "shoes", "", 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("expected healthy backend's result, got %+v", got)
	}
}

func TestChainFinderAllEmptyReturnsEmptyNotError(t *testing.T) {
	finder := NewChainFinder(nil,
		&fakeBackend{name: "a"},
		&fakeBackend{name: "b", err: errors.New("down")},
	)

	got, err := finder.Find(context.Background(), "shoes", "", 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %+v", got)
	}
}

func TestChainFinderPrependsBrandSite(t *testing.T) {
	backend := &fakeBackend{
		name:    "backend",
		results: []models.ProductCandidate{{ID: "a", Title: "Shoe"}},
	}

	finder := NewChainFinder(nil, backend)
	got, err := finder.Find(context.Background(), "white shoes", "nike", 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected brand site plus backend result, got %d", len(got))
	}
	if got[0].Source != "brand_site" {
		t.Errorf("expected brand_site first, got %s", got[0].Source)
	}
	if got[1].ID != "a" {
		t.Errorf("expected backend result second, got %+v", got[1])
	}
}

func TestChainFinderBrandSiteSurvivesEmptyBackends(t *testing.T) {
	finder := NewChainFinder(nil, &fakeBackend{name: "empty"})
	got, err := finder.Find(context.Background(), "white shoes", "nike", 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 1 || got[0].Source != "brand_site" {
		t.Errorf("expected the brand site candidate alone, got %+v", got)
	}
}

func TestChainFinderRespectsLimit(t *testing.T) {
	backend := &fakeBackend{
		name: "big",
		results: []models.ProductCandidate{
			{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"},
		},
	}

	finder := NewChainFinder(nil, backend)
	got, err := finder.Find(context.Background(), "q", "", 2)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(got))
	}
}
