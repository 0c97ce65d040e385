package search

import (
	"context"

	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

// Backend is one product search source. Returning an empty slice means
// "nothing found here"; an error means the source itself failed. The
// chain treats both the same and moves on.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error)
}

// ChainFinder queries backends in order and keeps the first non-empty
// answer. A detected brand always contributes a storefront link at the
// head of the results, even when every backend comes up empty.
type ChainFinder struct {
	backends []Backend
	log      *logger.Logger
}

func NewChainFinder(log *logger.Logger, backends ...Backend) *ChainFinder {
	if log == nil {
		log = logger.GetLogger()
	}
	return &ChainFinder{backends: backends, log: log}
}

func (f *ChainFinder) Find(ctx context.Context, query, brandID string, limit int) ([]models.ProductCandidate, error) {
	if limit < 1 {
		limit = 1
	}

	results := make([]models.ProductCandidate, 0, limit)
	if c, ok := BrandSiteCandidate(brandID, query); ok {
		results = append(results, c)
	}

	for _, backend := range f.backends {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		found, err := backend.Search(ctx, query, limit)
		if err != nil {
			f.log.Warnf("Search backend %s failed: %v", backend.Name(), err)
			continue
		}
		if len(found) == 0 {
			f.log.Debugf("Search backend %s found nothing for %q", backend.Name(), query)
			continue
		}

		f.log.Infof("Search backend %s returned %d candidates for %q", backend.Name(), len(found), query)
		results = append(results, found...)
		break
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
