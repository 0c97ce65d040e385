package search

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/himanishpuri/ClipLink/pkg/cliplink/brand"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

// BrandSiteCandidate builds a pseudo-candidate pointing at the brand's
// own storefront search for the query. It carries no price or image; it
// exists so a detected brand always yields at least one actionable
// link.
func BrandSiteCandidate(brandID, query string) (models.ProductCandidate, bool) {
	b, ok := brand.Lookup(brandID)
	if !ok {
		return models.ProductCandidate{}, false
	}

	return models.ProductCandidate{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("Shop %q on %s", query, b.Display),
		Description: fmt.Sprintf("Search results for %q on the official %s store", query, b.Display),
		ProductURL:  brand.StorefrontURL(brandID, query),
		Source:      "brand_site",
		Tags:        []string{b.ID},
	}, true
}
