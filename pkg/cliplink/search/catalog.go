package search

import (
	"context"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

// CatalogStore is the slice of the storage layer the catalog backend
// needs.
type CatalogStore interface {
	SearchProducts(query string, limit int) ([]models.ProductCandidate, error)
}

// CatalogBackend serves candidates from the local seeded catalog. It is
// the last link in the chain so a fully offline deployment still
// returns products.
type CatalogBackend struct {
	store CatalogStore
}

func NewCatalogBackend(store CatalogStore) *CatalogBackend {
	return &CatalogBackend{store: store}
}

func (c *CatalogBackend) Name() string { return "catalog" }

func (c *CatalogBackend) Search(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error) {
	return c.store.SearchProducts(query, limit)
}
