package matcher

import (
	"context"

	"github.com/fulmenhq/docmatch/internal/ports"
	"github.com/fulmenhq/docmatch/internal/textkit"
)

// DefaultMaxWindows bounds how many windows Layer 2 will ever embed for a
// single target, regardless of how short the stride math would otherwise
// make it.
const DefaultMaxWindows = 1000

const (
	embeddingHighThreshold   = 0.95
	embeddingAcceptThreshold = 0.85
)

type targetWindow struct {
	startRune, endRune int
	text               string
}

// runLayer2 embeds every unmatched chunk and a set of overlapping target
// windows, then assigns each chunk to its best-scoring window if the score
// clears the acceptance threshold. Returns the same chunks, partitioned
// into newly matched vs. still unmatched; errors are only returned for
// ctx cancellation, never for embedder failures (those degrade to
// "leave unmatched" for a later layer to recover).
func runLayer2(ctx context.Context, target string, unmatched []SourceChunk, embedder ports.Embedder, maxWindows int) (matched []MatchResult, stillUnmatched []SourceChunk, err error) {
	if embedder == nil || len(unmatched) == 0 {
		return nil, unmatched, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, unmatched, err
	}
	if maxWindows <= 0 {
		maxWindows = DefaultMaxWindows
	}

	chunkTexts := make([]string, len(unmatched))
	for i, c := range unmatched {
		chunkTexts[i] = c.Content
	}
	chunkVectors, embedErr := embedder.Embed(ctx, chunkTexts)
	if embedErr != nil || len(chunkVectors) != len(unmatched) {
		// ServiceFailure: absorbed locally, every chunk stays unmatched.
		return nil, unmatched, nil
	}

	windowSize := averageRuneLength(unmatched)
	if windowSize <= 0 {
		return nil, unmatched, nil
	}
	windows := segmentWindows(target, windowSize, maxWindows)
	if len(windows) == 0 {
		return nil, unmatched, nil
	}

	windowTexts := make([]string, len(windows))
	for i, w := range windows {
		windowTexts[i] = w.text
	}
	windowVectors, werr := embedder.Embed(ctx, windowTexts)
	if werr != nil || len(windowVectors) != len(windows) {
		return nil, unmatched, nil
	}

	for i, c := range unmatched {
		if err := ctx.Err(); err != nil {
			stillUnmatched = append(stillUnmatched, unmatched[i:]...)
			return matched, stillUnmatched, err
		}

		bestSim := -1.0
		bestWindow := -1
		for w := range windows {
			if err := ctx.Err(); err != nil {
				stillUnmatched = append(stillUnmatched, unmatched[i:]...)
				return matched, stillUnmatched, err
			}
			sim := textkit.CosineSimilarity(chunkVectors[i], windowVectors[w])
			if sim > bestSim {
				bestSim = sim
				bestWindow = w
			}
		}

		if bestWindow < 0 || bestSim < embeddingAcceptThreshold {
			stillUnmatched = append(stillUnmatched, c)
			continue
		}

		win := windows[bestWindow]
		confidence := ConfidenceMedium
		if bestSim >= embeddingHighThreshold {
			confidence = ConfidenceHigh
		}
		startByte := runeSliceByteOffset(target, win.startRune)
		endByte := runeSliceByteOffset(target, win.endRune)
		matched = append(matched, MatchResult{
			Chunk: c,
			Start: textkit.UTF16Index(target, startByte),
			End:   textkit.UTF16Index(target, endByte),
			Confidence: confidence, Method: MethodEmbeddingMatch,
			Similarity: bestSim, HasSimilarity: true,
		})
	}
	return matched, stillUnmatched, nil
}

func averageRuneLength(chunks []SourceChunk) int {
	if len(chunks) == 0 {
		return 0
	}
	total := 0
	for _, c := range chunks {
		total += len([]rune(c.Content))
	}
	return total / len(chunks)
}

// segmentWindows splits target into overlapping windows of windowSize runes
// with a 50% stride, enlarging the stride if needed to stay within
// maxWindows.
func segmentWindows(target string, windowSize, maxWindows int) []targetWindow {
	runes := []rune(target)
	total := len(runes)
	if total == 0 {
		return nil
	}
	if windowSize > total {
		windowSize = total
	}
	if windowSize <= 0 {
		return nil
	}

	stride := windowSize / 2
	if stride < 1 {
		stride = 1
	}
	if n := windowCount(total, windowSize, stride); n > maxWindows {
		stride = enlargedStride(total, windowSize, maxWindows)
	}

	var windows []targetWindow
	for start := 0; ; start += stride {
		if len(windows) > 0 && len(windows) == maxWindows-1 && start+windowSize < total {
			// The last window allowed always ends at the end of the target.
			start = total - windowSize
		}
		end := start + windowSize
		if end > total {
			end = total
		}
		windows = append(windows, targetWindow{
			startRune: start, endRune: end,
			text: string(runes[start:end]),
		})
		if end == total || len(windows) >= maxWindows {
			break
		}
	}
	return windows
}

func windowCount(total, windowSize, stride int) int {
	if total <= windowSize {
		return 1
	}
	return (total-windowSize)/stride + 2
}

func enlargedStride(total, windowSize, maxWindows int) int {
	if maxWindows <= 1 {
		return total
	}
	s := (total - windowSize) / (maxWindows - 1)
	if s < 1 {
		s = 1
	}
	return s
}

func runeSliceByteOffset(s string, runeIdx int) int {
	n := 0
	for i, r := range s {
		if n == runeIdx {
			return i
		}
		n++
		_ = r
	}
	return len(s)
}
