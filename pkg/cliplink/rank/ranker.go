package rank

import (
	"context"
	"sort"
	"strings"

	"github.com/himanishpuri/ClipLink/pkg/cliplink/brand"
	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

// Neutral brand score used when no brand was detected, so brandless
// analyses neither reward nor punish any candidate.
const neutralBrandScore = 0.5

// WeightedRanker orders candidates by a weighted blend of text
// similarity to the query and brand agreement. Text similarity uses
// embeddings when the embedder is reachable; any embedding failure
// degrades the whole pass to lexical overlap so all candidates are
// scored on the same scale.
type WeightedRanker struct {
	embedder    Embedder
	textWeight  float64
	brandWeight float64
	topN        int
	log         *logger.Logger
}

func NewWeightedRanker(embedder Embedder, textWeight, brandWeight float64, topN int, log *logger.Logger) *WeightedRanker {
	if log == nil {
		log = logger.GetLogger()
	}
	if topN < 1 {
		topN = 5
	}
	if sum := textWeight + brandWeight; sum > 0 && sum != 1 {
		textWeight /= sum
		brandWeight /= sum
	} else if sum <= 0 {
		textWeight, brandWeight = 0.7, 0.3
	}
	return &WeightedRanker{
		embedder:    embedder,
		textWeight:  textWeight,
		brandWeight: brandWeight,
		topN:        topN,
		log:         log,
	}
}

// Rank scores and orders candidates. A topN of 0 or less falls back to
// the ranker's configured default.
func (r *WeightedRanker) Rank(ctx context.Context, candidates []models.ProductCandidate, query, brandID string, topN int) []models.RankedResult {
	if topN < 1 {
		topN = r.topN
	}
	if len(candidates) == 0 {
		return []models.RankedResult{}
	}

	textScores := r.textScores(ctx, candidates, query)

	results := make([]models.RankedResult, len(candidates))
	for i, c := range candidates {
		brandScore := brandAgreement(c, brandID)
		results[i] = models.RankedResult{
			ProductCandidate: c,
			TextScore:        textScores[i],
			BrandScore:       brandScore,
			Score:            r.textWeight*textScores[i] + r.brandWeight*brandScore,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topN {
		results = results[:topN]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// textScores embeds the query plus every candidate in one batch. On any
// failure every candidate is rescored lexically; embedding and lexical
// scores are never mixed within a pass.
func (r *WeightedRanker) textScores(ctx context.Context, candidates []models.ProductCandidate, query string) []float64 {
	scores := make([]float64, len(candidates))

	if r.embedder != nil && r.embedder.Available() {
		texts := make([]string, 0, len(candidates)+1)
		texts = append(texts, query)
		for _, c := range candidates {
			texts = append(texts, candidateText(c))
		}

		vectors, err := r.embedder.Embed(ctx, texts)
		if err == nil && len(vectors) == len(texts) {
			for i := range candidates {
				scores[i] = cosineSimilarity(vectors[0], vectors[i+1])
			}
			return scores
		}
		r.log.Warnf("Embedding pass failed, falling back to lexical scoring: %v", err)
	}

	for i, c := range candidates {
		scores[i] = lexicalSimilarity(query, candidateText(c))
	}
	return scores
}

func candidateText(c models.ProductCandidate) string {
	if c.Description == "" {
		return c.Title
	}
	return c.Title + " " + c.Description
}

// brandAgreement is 1 when the candidate mentions the detected brand,
// 0 when it does not, and neutral when no brand was detected at all.
func brandAgreement(c models.ProductCandidate, brandID string) float64 {
	b, ok := brand.Lookup(brandID)
	if !ok {
		return neutralBrandScore
	}

	needle := strings.ToLower(b.ID)
	haystack := strings.ToLower(c.Title + " " + c.Description + " " + c.Source + " " + strings.Join(c.Tags, " "))
	if strings.Contains(haystack, needle) {
		return 1
	}
	return 0
}
