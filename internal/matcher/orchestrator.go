package matcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fulmenhq/docmatch/internal/ports"
	"github.com/fulmenhq/docmatch/internal/telemetry"
	"github.com/fulmenhq/docmatch/internal/textkit"
)

// Options configures the optional ports and tunables BulletproofMatch reads
// at each layer. A zero-value Options runs Layer 1 and Layer 4 only, with
// Layer 1's sliding-window strategy scored by Levenshtein ratio.
type Options struct {
	Embedder   ports.Embedder
	LLM        ports.LLMClient
	OnProgress ports.ProgressFunc
	Telemetry  *telemetry.System // optional; nil disables counter/histogram emission
	Algorithm  textkit.Algorithm // Layer 1 sliding-window, default AlgorithmLevenshtein
	MaxWindows int               // Layer 2, default DefaultMaxWindows
	LLMWindow  int               // Layer 3, default DefaultLLMWindowChars
}

// BulletproofMatch is the sole entry point: re-anchor every SourceChunk
// onto target, cascading through Layers 1-4 until all N chunks have a
// MatchResult. It never drops a chunk; Layer 4 guarantees that.
func BulletproofMatch(ctx context.Context, target string, chunks []SourceChunk, opts Options) (Result, error) {
	n := len(chunks)
	if n == 0 {
		return Result{Stats: newMatchStats()}, nil
	}
	if err := validateChunkIndices(chunks); err != nil {
		return Result{}, err
	}

	progress := opts.OnProgress
	report := func(pct int, stage, msg string) {
		if progress != nil {
			progress(pct, stage, msg)
		}
	}

	cancelled := ctx.Err() != nil
	tel := opts.Telemetry

	report(10, "layer1", "multi-strategy fuzzy match")
	layerStart := time.Now()
	matched, unmatched := runLayer1(target, chunks, opts.Algorithm)
	emitLayerMetrics(tel, "layer1", len(matched), time.Since(layerStart))

	if !cancelled && len(unmatched) > 0 && opts.Embedder != nil {
		report(30, "layer2", "embedding window scan")
		layerStart = time.Now()
		l2matched, l2unmatched, err := runLayer2(ctx, target, unmatched, opts.Embedder, opts.MaxWindows)
		if err != nil {
			cancelled = true
		}
		emitLayerMetrics(tel, "layer2", len(l2matched), time.Since(layerStart))
		matched = append(matched, l2matched...)
		unmatched = l2unmatched
	}

	if !cancelled && len(unmatched) > 0 && opts.LLM != nil {
		report(50, "layer3", "llm position query")
		layerStart = time.Now()
		l3matched, l3unmatched, err := runLayer3(ctx, target, unmatched, n, opts.LLM, opts.LLMWindow)
		if err != nil {
			cancelled = true
		}
		emitLayerMetrics(tel, "layer3", len(l3matched), time.Since(layerStart))
		matched = append(matched, l3matched...)
		unmatched = l3unmatched
	}

	report(70, "layer4", "anchor interpolation")
	if len(unmatched) > 0 {
		// Layer 4 runs unconditionally, even mid-cancellation, so the
		// 100%-recovery invariant holds regardless of how layers 2/3 ended.
		layerStart = time.Now()
		synthetic := runLayer4(target, matched, unmatched, n)
		emitLayerMetrics(tel, "layer4", len(synthetic), time.Since(layerStart))
		if tel != nil {
			tel.Counter(telemetry.MatcherSyntheticTotal, float64(len(synthetic)), nil)
		}
		matched = append(matched, synthetic...)
	}
	report(90, "sort", "restoring chunk-index order")

	sortMatchResultsByChunkIndex(matched)

	if len(matched) != n {
		return Result{}, internalInvariantViolation("produced %d results for %d chunks", len(matched), n)
	}
	for i, m := range matched {
		if m.Chunk.Index != i {
			return Result{}, internalInvariantViolation("result at position %d has chunk index %d, expected contiguous indices", i, m.Chunk.Index)
		}
		if m.Start < 0 || m.End < m.Start || m.End > textkit.UTF16Len(target) {
			return Result{}, internalInvariantViolation("chunk %d has out-of-range offsets (%d,%d)", m.Chunk.Index, m.Start, m.End)
		}
	}

	stats := newMatchStats()
	var warnings []string
	for _, m := range matched {
		stats.record(m)
		if tel != nil {
			tel.Counter(telemetry.MatcherLayerChunksTotal, 1, map[string]string{
				telemetry.TagMethod:     string(m.Method),
				telemetry.TagConfidence: string(m.Confidence),
			})
		}
		if m.Confidence == ConfidenceSynthetic {
			warnings = append(warnings, syntheticWarning(m))
		}
	}

	report(100, "done", "cascade complete")

	return Result{Matched: matched, Stats: stats, Warnings: warnings, Cancelled: cancelled}, nil
}

// emitLayerMetrics records how many chunks a layer matched and how long it
// took. tel may be nil, in which case this is a no-op.
func emitLayerMetrics(tel *telemetry.System, layer string, chunkCount int, elapsed time.Duration) {
	if tel == nil {
		return
	}
	tags := map[string]string{telemetry.TagLayer: layer}
	tel.Counter(telemetry.MatcherLayerChunksTotal, float64(chunkCount), tags)
	tel.Histogram(telemetry.MatcherLayerLatencyMS, elapsed, tags)
}

// validateChunkIndices rejects malformed input before the cascade ever
// runs: indices out of [0, n) or repeated indices can never sort into the
// contiguous 0..n-1 sequence BulletproofMatch guarantees on output, so
// there is no point spending four layers of matching on them first.
func validateChunkIndices(chunks []SourceChunk) error {
	n := len(chunks)
	seen := make(map[int]bool, n)
	for _, c := range chunks {
		if c.Index < 0 || c.Index >= n {
			return invalidInput("chunk index %d out of range for %d chunks", c.Index, n)
		}
		if seen[c.Index] {
			return invalidInput("duplicate chunk index %d", c.Index)
		}
		seen[c.Index] = true
	}
	return nil
}

func syntheticWarning(m MatchResult) string {
	if m.Chunk.Meta.PageStart != nil {
		return fmt.Sprintf("chunk %d: no match found, offsets interpolated (page %d)", m.Chunk.Index, *m.Chunk.Meta.PageStart)
	}
	return fmt.Sprintf("chunk %d: no match found, offsets interpolated", m.Chunk.Index)
}
