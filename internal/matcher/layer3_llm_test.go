package matcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fulmenhq/docmatch/internal/ports"
)

type stubLLM struct {
	answer ports.PositionAnswer
	err    error
}

func (s *stubLLM) FindPosition(_ context.Context, _ ports.PositionQuery) (ports.PositionAnswer, error) {
	return s.answer, s.err
}

func TestRunLayer3_NilClientShortCircuits(t *testing.T) {
	unmatched := []SourceChunk{chunk(0, "text")}
	matched, still, err := runLayer3(context.Background(), "target", unmatched, 1, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 0 || len(still) != 1 {
		t.Fatalf("expected short-circuit, got matched=%d still=%d", len(matched), len(still))
	}
}

func TestRunLayer3_FoundAnswerTranslatesOffsets(t *testing.T) {
	target := strings.Repeat("a", 50) + "THE-CHUNK" + strings.Repeat("b", 50)
	llm := &stubLLM{answer: ports.PositionAnswer{Found: true, Start: 50, End: 59}}
	unmatched := []SourceChunk{chunk(0, "THE-CHUNK")}

	matched, still, err := runLayer3(context.Background(), target, unmatched, 1, llm, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(still) != 0 {
		t.Fatalf("expected chunk matched, got still unmatched=%d", len(still))
	}
	if matched[0].Method != MethodLLMMatch || matched[0].Confidence != ConfidenceMedium {
		t.Errorf("got method=%s confidence=%s", matched[0].Method, matched[0].Confidence)
	}
	if matched[0].Similarity != 0.7 {
		t.Errorf("similarity = %v, want 0.7", matched[0].Similarity)
	}
}

func TestRunLayer3_NotFoundLeavesUnmatched(t *testing.T) {
	target := strings.Repeat("x", 100)
	llm := &stubLLM{answer: ports.PositionAnswer{Found: false}}
	unmatched := []SourceChunk{chunk(0, "missing")}

	matched, still, err := runLayer3(context.Background(), target, unmatched, 1, llm, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 0 || len(still) != 1 {
		t.Fatalf("expected not-found to leave unmatched, got matched=%d still=%d", len(matched), len(still))
	}
}

func TestRunLayer3_ServiceErrorNonFatal(t *testing.T) {
	target := strings.Repeat("x", 100)
	llm := &stubLLM{err: errors.New("timeout")}
	unmatched := []SourceChunk{chunk(0, "missing")}

	matched, still, err := runLayer3(context.Background(), target, unmatched, 1, llm, 5000)
	if err != nil {
		t.Fatalf("ServiceFailure must not surface: %v", err)
	}
	if len(matched) != 0 || len(still) != 1 {
		t.Fatalf("expected all-unmatched on service error, got matched=%d still=%d", len(matched), len(still))
	}
}

func TestRunLayer3_InvalidBoundsLeavesUnmatched(t *testing.T) {
	target := strings.Repeat("x", 100)
	llm := &stubLLM{answer: ports.PositionAnswer{Found: true, Start: 10, End: 5}} // end < start
	unmatched := []SourceChunk{chunk(0, "bad")}

	matched, still, err := runLayer3(context.Background(), target, unmatched, 1, llm, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matched) != 0 || len(still) != 1 {
		t.Fatalf("expected invalid bounds to leave unmatched, got matched=%d still=%d", len(matched), len(still))
	}
}
