package rank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/himanishpuri/ClipLink/pkg/models"
)

const (
	embeddingsEndpoint = "https://api.openai.com/v1/embeddings"
	embeddingModel     = "text-embedding-3-small"
)

// Embedder produces vector representations for texts. One call embeds
// the whole batch.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	Available() bool
}

// OpenAIEmbedder calls the OpenAI embeddings API.
type OpenAIEmbedder struct {
	apiKey string
	client *http.Client
}

func NewOpenAIEmbedder() *OpenAIEmbedder {
	return &OpenAIEmbedder{
		apiKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

func (e *OpenAIEmbedder) Available() bool {
	return e != nil && e.apiKey != ""
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if !e.Available() {
		return nil, &models.UpstreamError{Service: "openai", Err: fmt.Errorf("not configured")}
	}
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	payload, err := json.Marshal(embeddingRequest{Model: embeddingModel, Input: texts})
	if err != nil {
		return nil, &models.UpstreamError{Service: "openai", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, embeddingsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &models.UpstreamError{Service: "openai", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Service: "openai", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &models.UpstreamError{
			Service: "openai",
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &models.UpstreamError{Service: "openai", Err: err}
	}
	if len(parsed.Data) != len(texts) {
		return nil, &models.UpstreamError{
			Service: "openai",
			Err:     fmt.Errorf("expected %d embeddings, got %d", len(texts), len(parsed.Data)),
		}
	}

	out := make([][]float64, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, &models.UpstreamError{Service: "openai", Err: fmt.Errorf("embedding index %d out of range", d.Index)}
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}
