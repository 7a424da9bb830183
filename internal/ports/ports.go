// Package ports defines the three external services the matcher cascade
// consumes by injection. The matcher never constructs a concrete embedder,
// LLM client, or progress sink itself — callers wire one in, or leave it
// nil to have the corresponding layer short-circuit.
package ports

import "context"

// Embedder batches texts into unit-normalized, equal-dimension vectors,
// one per input, in order. Required for Layer 2 (embedding window scan);
// if the caller supplies none, Layer 2 treats every chunk as unmatched.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// PositionQuery is the request Layer 3 sends the LLM client: the verbatim
// chunk text to locate, and the bounded window of target text to search
// within. Offsets in the response are relative to the start of Window.
type PositionQuery struct {
	ChunkText string
	Window    string
}

// PositionAnswer is the LLM client's structured response. Found is false
// when the model could not locate the chunk in the window; Start/End are
// meaningless in that case.
type PositionAnswer struct {
	Start int
	End   int
	Found bool
}

// LLMClient answers a single bounded position query synchronously — one
// request, one atomic JSON response, no streaming. Optional; if the
// caller supplies none, Layer 3 treats every chunk as unmatched.
type LLMClient interface {
	FindPosition(ctx context.Context, q PositionQuery) (PositionAnswer, error)
}

// ProgressFunc reports coarse cascade progress. Percent is one of the
// coarse milestones the orchestrator emits; Stage names the layer;
// Message is a short human-readable note.
type ProgressFunc func(percent int, stage, message string)
