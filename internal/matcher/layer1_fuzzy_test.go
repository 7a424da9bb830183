package matcher

import (
	"testing"

	"github.com/fulmenhq/docmatch/internal/textkit"
)

func chunk(idx int, content string) SourceChunk {
	return SourceChunk{Index: idx, Content: content}
}

func TestRunLayer1_ExactMatch(t *testing.T) {
	target := "Hello world, this is the cleaned document body."
	chunks := []SourceChunk{chunk(0, "this is the cleaned document")}

	matched, unmatched := runLayer1(target, chunks, textkit.AlgorithmLevenshtein)
	if len(unmatched) != 0 {
		t.Fatalf("expected no unmatched chunks, got %d", len(unmatched))
	}
	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	m := matched[0]
	if m.Method != MethodExactMatch || m.Confidence != ConfidenceExact {
		t.Errorf("got method=%s confidence=%s, want exact_match/exact", m.Method, m.Confidence)
	}
	if m.Similarity != 1.0 {
		t.Errorf("similarity = %v, want 1.0", m.Similarity)
	}
}

func TestRunLayer1_NormalizedMatch(t *testing.T) {
	target := "Section one.\n\nThe   QUICK brown FOX  jumps over the lazy dog!!"
	chunks := []SourceChunk{chunk(0, "the quick brown fox jumps over the lazy dog")}

	matched, unmatched := runLayer1(target, chunks, textkit.AlgorithmLevenshtein)
	if len(unmatched) != 0 {
		t.Fatalf("expected no unmatched chunks, got %d", len(unmatched))
	}
	m := matched[0]
	if m.Method != MethodNormalizedMatch {
		t.Fatalf("method = %s, want normalized_match", m.Method)
	}
	if m.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want high", m.Confidence)
	}
	startByte := textkit.ByteIndexFromUTF16(target, m.Start)
	endByte := textkit.ByteIndexFromUTF16(target, m.End)
	if target[startByte:endByte] == "" {
		t.Errorf("recovered span is empty")
	}
}

func TestRunLayer1_MultiAnchorSearch(t *testing.T) {
	// A chunk whose middle words have drifted from the target (so exact and
	// normalized substring both fail) but whose start/middle/end anchors
	// still appear in order.
	target := "alpha beta gamma delta XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX " +
		"epsilon zeta eta theta YYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYYY iota kappa lambda mu"
	chunkContent := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"
	chunks := []SourceChunk{chunk(0, chunkContent)}

	matched, unmatched := runLayer1(target, chunks, textkit.AlgorithmLevenshtein)
	if len(unmatched) != 0 {
		t.Fatalf("expected multi-anchor search to succeed, got unmatched=%d", len(unmatched))
	}
	m := matched[0]
	if m.Method != MethodMultiAnchorSearch {
		t.Fatalf("method = %s, want multi_anchor_search", m.Method)
	}
	if m.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want high", m.Confidence)
	}
}

func TestRunLayer1_SlidingWindowFallback(t *testing.T) {
	target := "The quick brown fox jumps over the lazy dog near the river bank at dawn."
	// Enough drift to fail exact/normalized/anchor search, but close enough
	// in edit distance for the sliding window to accept it.
	chunks := []SourceChunk{chunk(0, "The quick brown fox jump over the lazy dog")}

	matched, unmatched := runLayer1(target, chunks, textkit.AlgorithmLevenshtein)
	if len(unmatched) != 0 {
		t.Fatalf("expected sliding window to recover the chunk, got unmatched=%d", len(unmatched))
	}
	m := matched[0]
	if m.Method != MethodSlidingWindow {
		t.Fatalf("method = %s, want sliding_window", m.Method)
	}
	if m.Confidence != ConfidenceExact && m.Confidence != ConfidenceHigh && m.Confidence != ConfidenceMedium {
		t.Errorf("unexpected confidence %s", m.Confidence)
	}
}

func TestRunLayer1_SlidingWindowHonorsAlgorithmChoice(t *testing.T) {
	target := "The quick brown fox jumps over the lazy dog near the river bank at dawn."
	chunks := []SourceChunk{chunk(0, "The quikc brown fox jupms over the lazy dog")}

	matched, unmatched := runLayer1(target, chunks, textkit.AlgorithmDamerauOSA)
	if len(unmatched) != 0 {
		t.Fatalf("expected sliding window to recover the transposed chunk, got unmatched=%d", len(unmatched))
	}
	if matched[0].Method != MethodSlidingWindow {
		t.Fatalf("method = %s, want sliding_window", matched[0].Method)
	}
}

func TestRunLayer1_Unmatched(t *testing.T) {
	target := "Completely unrelated cleaned text about something else entirely."
	chunks := []SourceChunk{chunk(0, "nothing in common with the target whatsoever at all")}

	_, unmatched := runLayer1(target, chunks, textkit.AlgorithmLevenshtein)
	if len(unmatched) != 1 {
		t.Fatalf("expected chunk to remain unmatched, got matched instead")
	}
}

func TestRunLayer1_PreservesChunkOrder(t *testing.T) {
	target := "first chunk text. second chunk text. third chunk text."
	chunks := []SourceChunk{
		chunk(0, "first chunk text"),
		chunk(1, "second chunk text"),
		chunk(2, "third chunk text"),
	}
	matched, unmatched := runLayer1(target, chunks, textkit.AlgorithmLevenshtein)
	if len(unmatched) != 0 {
		t.Fatalf("expected all chunks matched, got %d unmatched", len(unmatched))
	}
	for i, m := range matched {
		if m.Chunk.Index != i {
			t.Errorf("matched[%d].Chunk.Index = %d, want %d", i, m.Chunk.Index, i)
		}
	}
}
