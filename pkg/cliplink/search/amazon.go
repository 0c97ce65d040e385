package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

const amazonSearchURL = "https://www.amazon.com/s?k=%s"

// A desktop user agent; the mobile markup uses different class names.
const amazonUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

var priceRe = regexp.MustCompile(`\$([\d,]+(?:\.\d{1,2})?)`)

// Amazon scrapes the public search results page. Best effort only:
// markup drifts and bot checks appear, so callers treat failures as an
// empty backend, not a fatal error.
type Amazon struct {
	client *http.Client
	log    *logger.Logger
}

func NewAmazon(log *logger.Logger) *Amazon {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Amazon{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

func (a *Amazon) Name() string { return "amazon" }

func (a *Amazon) Search(ctx context.Context, query string, limit int) ([]models.ProductCandidate, error) {
	if limit < 1 {
		limit = 1
	}

	target := fmt.Sprintf(amazonSearchURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &models.UpstreamError{Service: "amazon", Err: err}
	}
	req.Header.Set("User-Agent", amazonUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Service: "amazon", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.UpstreamError{Service: "amazon", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &models.UpstreamError{Service: "amazon", Err: err}
	}

	candidates := parseAmazonResults(doc, limit)
	a.log.Debugf("Amazon scrape for %q yielded %d candidates", query, len(candidates))
	return candidates, nil
}

// parseAmazonResults walks the DOM collecting search result cards,
// identified by data-component-type="s-search-result".
func parseAmazonResults(doc *html.Node, limit int) []models.ProductCandidate {
	var out []models.ProductCandidate

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(out) >= limit {
			return
		}
		if n.Type == html.ElementNode && attrVal(n, "data-component-type") == "s-search-result" {
			if c, ok := parseResultCard(n); ok {
				out = append(out, c)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return out
}

func parseResultCard(card *html.Node) (models.ProductCandidate, bool) {
	title, link := cardTitleAndLink(card)
	if title == "" || link == "" {
		return models.ProductCandidate{}, false
	}

	if strings.HasPrefix(link, "/") {
		link = "https://www.amazon.com" + link
	}

	return models.ProductCandidate{
		ID:         uuid.NewString(),
		Title:      title,
		Price:      cardPrice(card),
		Currency:   "USD",
		ImageURL:   cardImage(card),
		ProductURL: link,
		Source:     "amazon",
	}, true
}

// cardTitleAndLink finds the h2 heading and its enclosing anchor.
func cardTitleAndLink(card *html.Node) (string, string) {
	h2 := findNode(card, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "h2"
	})
	if h2 == nil {
		return "", ""
	}

	title := strings.TrimSpace(textContent(h2))

	a := findNode(h2, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a"
	})
	if a == nil {
		a = findNode(card, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "a" && attrVal(n, "href") != ""
		})
	}
	if a == nil {
		return title, ""
	}
	return title, attrVal(a, "href")
}

// cardPrice reads the hidden a-offscreen span Amazon renders for screen
// readers, which carries the clean "$12.34" form.
func cardPrice(card *html.Node) float64 {
	span := findNode(card, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "span" && hasClass(n, "a-offscreen")
	})
	if span == nil {
		return 0
	}

	m := priceRe.FindStringSubmatch(textContent(span))
	if len(m) < 2 {
		return 0
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return price
}

func cardImage(card *html.Node) string {
	img := findNode(card, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "img" && hasClass(n, "s-image")
	})
	if img == nil {
		return ""
	}
	return attrVal(img, "src")
}

func findNode(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := findNode(child, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
