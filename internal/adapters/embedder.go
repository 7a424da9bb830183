// Package adapters supplies concrete, swappable implementations of the
// internal/ports interfaces backed by a local HTTP-JSON service, so the
// matcher cascade can run end-to-end without a caller wiring in their own
// embedder or LLM client. Plain net/http covers it directly rather than a
// third-party HTTP client, since these are simple request/response JSON
// calls with no streaming or retry-with-backoff requirement.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// HTTPEmbedder implements ports.Embedder by POSTing a batch of texts to a
// configured endpoint and parsing a JSON array of equal-length float
// vectors, one per input text, in order.
type HTTPEmbedder struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Vectors [][]float32 `json:"vectors"`
}

// Embed satisfies ports.Embedder.
func (a *HTTPEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(embedRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("adapters: encoding embed request: %w", err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("adapters: building embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("adapters: embed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("adapters: embed endpoint returned %d: %s", resp.StatusCode, string(data))
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("adapters: decoding embed response: %w", err)
	}
	if len(out.Vectors) != len(texts) {
		return nil, fmt.Errorf("adapters: embed endpoint returned %d vectors for %d texts", len(out.Vectors), len(texts))
	}

	for i := range out.Vectors {
		normalize(out.Vectors[i])
	}
	return out.Vectors, nil
}

func (a *HTTPEmbedder) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

func (a *HTTPEmbedder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Timeout)
}

// normalize L2-normalizes v in place. A zero vector is left unchanged —
// there is no direction to normalize to, and returning it as-is keeps
// downstream cosine similarity a well-defined zero rather than NaN.
func normalize(v []float32) {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}
