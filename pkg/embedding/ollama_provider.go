package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/viterin/vek/vek32"
)

// OllamaEncoder embeds texts with a sentence-embedding model served by Ollama
// (e.g. all-minilm, the all-MiniLM-L6-v2 model).
type OllamaEncoder struct {
	BaseURL string
	model   string
	client  *http.Client

	mu        sync.Mutex
	dimension int
}

var _ Encoder = &OllamaEncoder{}

func NewOllamaEncoder(baseURL string, model string, timeout time.Duration) *OllamaEncoder {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "all-minilm"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaEncoder{
		BaseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float64 `json:"embeddings"`
}

func (p *OllamaEncoder) Model() string {
	return p.model
}

// Dimension reports the vector length fixed by the first successful call, or 0.
func (p *OllamaEncoder) Dimension() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dimension
}

// Warmup forces the model to load before the first real request.
func (p *OllamaEncoder) Warmup(ctx context.Context) error {
	_, err := p.Encode(ctx, []string{"warmup"})
	return err
}

func (p *OllamaEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	jsonBody, err := json.Marshal(ollamaEmbedRequest{
		Model: p.model,
		Input: texts,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/embed", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embedding error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var ollamaResp ollamaEmbedResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return nil, fmt.Errorf("unmarshal embedding response: %w", err)
	}

	if len(ollamaResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d texts", len(ollamaResp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(ollamaResp.Embeddings))
	for i, raw := range ollamaResp.Embeddings {
		if err := p.checkDimension(len(raw)); err != nil {
			return nil, err
		}

		values := make([]float32, len(raw))
		for j, v := range raw {
			values[j] = float32(v)
		}
		// Unit length keeps euclidean distances in the same range the clustering eps was tuned for.
		vectors[i] = normalizeVector(values)
	}

	return vectors, nil
}

func (p *OllamaEncoder) checkDimension(n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n == 0 {
		return fmt.Errorf("%w: empty vector", ErrDimensionMismatch)
	}
	if p.dimension == 0 {
		p.dimension = n
		return nil
	}
	if p.dimension != n {
		return fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, p.dimension, n)
	}
	return nil
}

// normalizeVector scales a vector to unit L2 norm. Zero vectors are returned as is.
func normalizeVector(vec []float32) []float32 {
	norm := vek32.Norm(vec)
	if norm == 0 {
		return vec
	}
	return vek32.DivNumber(vec, norm)
}
