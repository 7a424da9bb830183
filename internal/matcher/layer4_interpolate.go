package matcher

import (
	"sort"

	"github.com/fulmenhq/docmatch/internal/textkit"
)

// runLayer4 deterministically assigns offsets to every remaining unmatched
// chunk by interpolating between already-matched anchors. This layer
// cannot fail: every input chunk produces exactly one synthetic result,
// clamped into [0, len(target)]. targetLen is measured in the same
// UTF-16 code-unit space as every other MatchResult offset.
func runLayer4(target string, anchors []MatchResult, unmatched []SourceChunk, n int) []MatchResult {
	if len(unmatched) == 0 {
		return nil
	}
	targetLen := textkit.UTF16Len(target)

	sortedAnchors := make([]MatchResult, len(anchors))
	copy(sortedAnchors, anchors)
	sortMatchResultsByChunkIndex(sortedAnchors)

	meanLen := meanChunkLength(sortedAnchors, n, targetLen)

	out := make([]MatchResult, 0, len(unmatched))
	for _, c := range unmatched {
		prev, next, havePrev, haveNext := bracketingAnchors(sortedAnchors, c.Index)

		var start, end int
		switch {
		case !havePrev && !haveNext:
			if n > 0 {
				start = c.Index * targetLen / n
				end = (c.Index + 1) * targetLen / n
			} else {
				start, end = 0, targetLen
			}
		case havePrev && haveNext:
			span := next.Chunk.Index - prev.Chunk.Index
			t := 0.0
			if span > 0 {
				t = float64(c.Index-prev.Chunk.Index) / float64(span)
			}
			start = prev.End + int(t*float64(next.Start-prev.End))
			end = start + meanLen
			if end > next.Start {
				end = next.Start
			}
		case havePrev && !haveNext:
			start = prev.End + (c.Index-prev.Chunk.Index-1)*meanLen
			end = start + meanLen
		case !havePrev && haveNext:
			end = next.Start
			start = end - meanLen
			if start < 0 {
				start = 0
			}
		}

		start = clamp(start, 0, targetLen)
		end = clamp(end, start, targetLen)

		out = append(out, MatchResult{
			Chunk: c, Start: start, End: end,
			Confidence: ConfidenceSynthetic, Method: MethodInterpolation,
			HasSimilarity: false,
		})
	}
	return out
}

// bracketingAnchors finds the last anchor with index < i and the first
// anchor with index > i, assuming sorted is sorted by Chunk.Index ascending.
func bracketingAnchors(sorted []MatchResult, i int) (prev, next MatchResult, havePrev, haveNext bool) {
	for _, a := range sorted {
		if a.Chunk.Index < i {
			prev, havePrev = a, true
		} else if a.Chunk.Index > i && !haveNext {
			next, haveNext = a, true
		}
	}
	return
}

func meanChunkLength(anchors []MatchResult, n, targetLen int) int {
	if len(anchors) == 0 {
		if n == 0 {
			return 0
		}
		return targetLen / n
	}
	total := 0
	for _, a := range anchors {
		total += a.End - a.Start
	}
	mean := total / len(anchors)
	if mean < 1 {
		mean = 1
	}
	return mean
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortMatchResultsByChunkIndex(results []MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Chunk.Index < results[j].Chunk.Index
	})
}
