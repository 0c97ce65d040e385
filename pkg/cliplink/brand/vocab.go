package brand

import (
	"fmt"
	"net/url"
	"sort"
)

// Brand is one entry of the recognized vocabulary. SearchURL is the
// storefront search endpoint with a %s placeholder for the query.
type Brand struct {
	ID        string
	Display   string
	SearchURL string
}

// vocabulary keys are the lowercase match tokens used against logo,
// OCR and label text.
var vocabulary = map[string]Brand{
	"nike":    {ID: "nike", Display: "Nike", SearchURL: "https://www.nike.com/w?q=%s"},
	"adidas":  {ID: "adidas", Display: "Adidas", SearchURL: "https://www.adidas.com/us/search?q=%s"},
	"zara":    {ID: "zara", Display: "Zara", SearchURL: "https://www.zara.com/us/en/search?searchTerm=%s"},
	"h&m":     {ID: "h&m", Display: "H&M", SearchURL: "https://www2.hm.com/en_us/search-results.html?q=%s"},
	"uniqlo":  {ID: "uniqlo", Display: "Uniqlo", SearchURL: "https://www.uniqlo.com/us/en/search?q=%s"},
	"levi's":  {ID: "levi's", Display: "Levi's", SearchURL: "https://www.levi.com/US/en_US/search/%s"},
	"gap":     {ID: "gap", Display: "Gap", SearchURL: "https://www.gap.com/browse/search.do?searchText=%s"},
	"apple":   {ID: "apple", Display: "Apple", SearchURL: "https://www.apple.com/us/search/%s"},
	"samsung": {ID: "samsung", Display: "Samsung", SearchURL: "https://www.samsung.com/us/search/searchMain/?searchTerm=%s"},
	"sephora": {ID: "sephora", Display: "Sephora", SearchURL: "https://www.sephora.com/search?keyword=%s"},
	"ikea":    {ID: "ikea", Display: "IKEA", SearchURL: "https://www.ikea.com/us/en/search/?q=%s"},
	"target":  {ID: "target", Display: "Target", SearchURL: "https://www.target.com/s?searchTerm=%s"},
	"walmart": {ID: "walmart", Display: "Walmart", SearchURL: "https://www.walmart.com/search?q=%s"},
}

// aliases are alternate match tokens for brands whose canonical name
// carries punctuation that logos and OCR rarely preserve.
var aliases = map[string]string{
	"hm":    "h&m",
	"levis": "levi's",
}

// matchTokens maps every recognizable token, canonical or alias, to
// its brand ID.
var matchTokens = func() map[string]string {
	m := make(map[string]string, len(vocabulary)+len(aliases))
	for k, b := range vocabulary {
		m[k] = b.ID
	}
	for k, id := range aliases {
		m[k] = id
	}
	return m
}()

// matchOrder fixes the scan order so detection never depends on map
// iteration.
var matchOrder = func() []string {
	keys := make([]string, 0, len(matchTokens))
	for k := range matchTokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// Lookup returns the vocabulary entry for a brand ID.
func Lookup(id string) (Brand, bool) {
	b, ok := vocabulary[id]
	return b, ok
}

// StorefrontURL renders the brand's search URL for a query. Empty when
// the brand is unknown.
func StorefrontURL(id, query string) string {
	b, ok := vocabulary[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf(b.SearchURL, url.QueryEscape(query))
}
