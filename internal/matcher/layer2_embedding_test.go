package matcher

import (
	"context"
	"strings"
	"testing"
)

// stubEmbedder maps known texts to fixed vectors and returns a zero vector
// for anything else, so tests can script exact cosine outcomes.
type stubEmbedder struct {
	vectors map[string][]float32
	def     []float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vectors[t]; ok {
			out[i] = v
			continue
		}
		out[i] = s.def
	}
	return out, nil
}

func TestRunLayer2_NilEmbedderShortCircuits(t *testing.T) {
	unmatched := []SourceChunk{chunk(0, "anything")}
	matched, still, err := runLayer2(context.Background(), "some target text", unmatched, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 0 || len(still) != 1 {
		t.Fatalf("expected short-circuit to all-unmatched, got matched=%d still=%d", len(matched), len(still))
	}
}

func TestRunLayer2_RescuesViaWindow(t *testing.T) {
	target := strings.Repeat("z", 100) + strings.Repeat("q", 160) + strings.Repeat("z", 100)
	chunkVec := []float32{1, 0}
	windowVec := []float32{1, 0}
	customEmbedder := &windowAwareEmbedder{chunkVec: chunkVec, windowVec: windowVec, other: []float32{0, 1}}

	unmatched := []SourceChunk{chunk(0, "rescue-me")}

	matched, still, err := runLayer2(context.Background(), target, unmatched, customEmbedder, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(still) != 0 {
		t.Fatalf("expected chunk to be rescued, got still unmatched=%d", len(still))
	}
	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	if matched[0].Method != MethodEmbeddingMatch {
		t.Errorf("method = %s, want embedding_match", matched[0].Method)
	}
	if matched[0].Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want high (similarity 1.0)", matched[0].Confidence)
	}
}

// windowAwareEmbedder returns chunkVec for the known chunk text and
// windowVec for any window overlapping the 'q' run, otherwise `other`.
type windowAwareEmbedder struct {
	chunkVec, windowVec, other []float32
}

func (w *windowAwareEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		switch {
		case t == "rescue-me":
			out[i] = w.chunkVec
		case strings.Contains(t, "qqq"):
			out[i] = w.windowVec
		default:
			out[i] = w.other
		}
	}
	return out, nil
}

func TestRunLayer2_BelowThresholdStaysUnmatched(t *testing.T) {
	target := strings.Repeat("x", 500)
	embedder := &stubEmbedder{
		vectors: map[string][]float32{"orphan": {1, 0}},
		def:     []float32{0, 1}, // orthogonal: cosine 0 everywhere
	}
	unmatched := []SourceChunk{chunk(0, "orphan")}
	matched, still, err := runLayer2(context.Background(), target, unmatched, embedder, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 0 || len(still) != 1 {
		t.Fatalf("expected no rescue below threshold, got matched=%d still=%d", len(matched), len(still))
	}
}

func TestRunLayer2_EmbedderErrorLeavesUnmatched(t *testing.T) {
	target := strings.Repeat("x", 200)
	embedder := &stubEmbedder{err: errServiceDown}
	unmatched := []SourceChunk{chunk(0, "whatever")}
	matched, still, err := runLayer2(context.Background(), target, unmatched, embedder, 0)
	if err != nil {
		t.Fatalf("ServiceFailure must not surface as an error: %v", err)
	}
	if len(matched) != 0 || len(still) != 1 {
		t.Fatalf("expected all-unmatched on embedder error, got matched=%d still=%d", len(matched), len(still))
	}
}

func TestSegmentWindows_RespectsMaxWindows(t *testing.T) {
	target := strings.Repeat("a", 1_000_000)
	windows := segmentWindows(target, 100, 1000)
	if len(windows) > 1000 {
		t.Fatalf("got %d windows, want <= 1000", len(windows))
	}
	last := windows[len(windows)-1]
	if last.endRune != 1_000_000 {
		t.Errorf("last window end = %d, want full coverage to 1000000", last.endRune)
	}
}

var errServiceDown = &Error{Kind: KindServiceFailure, Message: "embedder unavailable", ChunkIndex: -1}
