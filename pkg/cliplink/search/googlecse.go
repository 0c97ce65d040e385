package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

const cseEndpoint = "https://www.googleapis.com/customsearch/v1"

// URL fragments that mark a product detail page across common
// storefronts.
var productHints = []string{"/t/", "/product/", "/p/", "/dp/", "/gp/product/", "/item/"}

// URL fragments for listing, social and editorial pages that never lead
// to a buyable product.
var badFragments = []string{
	"/search", "/category", "/collections", "/blog", "/help",
	"pinterest.com", "facebook.com", "twitter.com", "instagram.com",
	"youtube.com", "reddit.com", "wikipedia.org",
}

// GoogleCSE searches the Programmable Search Engine JSON API for
// shopping results.
type GoogleCSE struct {
	apiKey string
	cx     string
	client *http.Client
	log    *logger.Logger
}

func NewGoogleCSE(log *logger.Logger) *GoogleCSE {
	if log == nil {
		log = logger.GetLogger()
	}
	return &GoogleCSE{
		apiKey: strings.TrimSpace(os.Getenv("GOOGLE_CSE_API_KEY")),
		cx:     strings.TrimSpace(os.Getenv("GOOGLE_CSE_CX")),
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

func (g *GoogleCSE) Name() string { return "google_cse" }

func (g *GoogleCSE) Available() bool {
	return g != nil && g.apiKey != "" && g.cx != ""
}

type cseImage struct {
	Src string `json:"src"`
}

type csePagemap struct {
	CseImage []cseImage          `json:"cse_image"`
	Metatags []map[string]string `json:"metatags"`
}

type cseItem struct {
	Title       string     `json:"title"`
	Snippet     string     `json:"snippet"`
	Link        string     `json:"link"`
	DisplayLink string     `json:"displayLink"`
	Pagemap     csePagemap `json:"pagemap"`
}

type cseResponse struct {
	Items []cseItem `json:"items"`
}

// Search returns up to limit candidates. Results whose URL looks like a
// product detail page are preferred; if none qualify the raw results
// are used so a thin search still produces something.
func (g *GoogleCSE) Search(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error) {
	if !g.Available() {
		return nil, &models.UpstreamError{Service: "google cse", Err: fmt.Errorf("not configured")}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 10 {
		limit = 10
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.cx)
	params.Set("q", query+" buy product")
	params.Set("num", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cseEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &models.UpstreamError{Service: "google cse", Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Service: "google cse", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &models.UpstreamError{
			Service: "google cse",
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var parsed cseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &models.UpstreamError{Service: "google cse", Err: err}
	}

	var preferred, rest []models.ProductCandidate
	for _, item := range parsed.Items {
		if item.Link == "" || hasBadFragment(item.Link) {
			continue
		}

		c := models.ProductCandidate{
			ID:          uuid.NewString(),
			Title:       item.Title,
			Description: item.Snippet,
			ProductURL:  item.Link,
			ImageURL:    itemImage(item.Pagemap),
			Source:      "google_cse",
			Tags:        []string{item.DisplayLink},
		}

		if looksLikeProductPage(item.Link) {
			preferred = append(preferred, c)
		} else {
			rest = append(rest, c)
		}
	}

	out := preferred
	if len(out) == 0 {
		out = rest
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func itemImage(pm csePagemap) string {
	for _, tags := range pm.Metatags {
		if src := tags["og:image"]; src != "" {
			return src
		}
	}
	if len(pm.CseImage) > 0 {
		return pm.CseImage[0].Src
	}
	return ""
}

func looksLikeProductPage(link string) bool {
	lower := strings.ToLower(link)
	for _, hint := range productHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func hasBadFragment(link string) bool {
	lower := strings.ToLower(link)
	for _, frag := range badFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
