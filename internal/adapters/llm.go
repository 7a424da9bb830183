package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fulmenhq/docmatch/internal/ports"
)

// HTTPLLMClient implements ports.LLMClient by POSTing a single bounded
// position query to a configured endpoint and parsing its JSON answer:
// one request, one atomic response, no partial-token handling.
type HTTPLLMClient struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

type llmRequest struct {
	ChunkText  string `json:"chunk_text"`
	WindowText string `json:"window_text"`
}

type llmResponse struct {
	StartOffset int  `json:"start_offset"`
	EndOffset   int  `json:"end_offset"`
	Found       bool `json:"found"`
}

// FindPosition satisfies ports.LLMClient.
func (a *HTTPLLMClient) FindPosition(ctx context.Context, q ports.PositionQuery) (ports.PositionAnswer, error) {
	body, err := json.Marshal(llmRequest{ChunkText: q.ChunkText, WindowText: q.Window})
	if err != nil {
		return ports.PositionAnswer{}, fmt.Errorf("adapters: encoding position query: %w", err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.PositionAnswer{}, fmt.Errorf("adapters: building position request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client().Do(req)
	if err != nil {
		return ports.PositionAnswer{}, fmt.Errorf("adapters: position request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ports.PositionAnswer{}, fmt.Errorf("adapters: llm endpoint returned %d: %s", resp.StatusCode, string(data))
	}

	var out llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.PositionAnswer{}, fmt.Errorf("adapters: decoding position response: %w", err)
	}

	return ports.PositionAnswer{Start: out.StartOffset, End: out.EndOffset, Found: out.Found}, nil
}

func (a *HTTPLLMClient) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

func (a *HTTPLLMClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Timeout)
}
