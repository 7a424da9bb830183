package matcher

import (
	"strings"

	"github.com/fulmenhq/docmatch/internal/textkit"
)

// runLayer1 applies the four-strategy fuzzy cascade to every chunk.
// Strategies are tried in fixed order per chunk; the first that succeeds
// wins. Chunks that exhaust all four strategies come back unmatched for
// Layer 2 to try.
func runLayer1(target string, chunks []SourceChunk, algo textkit.Algorithm) (matched []MatchResult, unmatched []SourceChunk) {
	targetRunes := []rune(target)
	runeByteOffset := make([]int, len(targetRunes)+1)
	offset := 0
	for i, r := range targetRunes {
		runeByteOffset[i] = offset
		offset += len(string(r))
	}
	runeByteOffset[len(targetRunes)] = offset

	sliceByRunes := func(start, end int) string {
		return target[runeByteOffset[start]:runeByteOffset[end]]
	}

	for _, c := range chunks {
		if r, ok := tryExactSubstring(target, c); ok {
			matched = append(matched, r)
			continue
		}
		if r, ok := tryNormalizedSubstring(target, c); ok {
			matched = append(matched, r)
			continue
		}
		if r, ok := tryMultiAnchorSearch(target, c); ok {
			matched = append(matched, r)
			continue
		}
		if r, ok := trySlidingWindow(target, targetRunes, sliceByRunes, c, algo); ok {
			matched = append(matched, r)
			continue
		}
		unmatched = append(unmatched, c)
	}
	return matched, unmatched
}

func tryExactSubstring(target string, c SourceChunk) (MatchResult, bool) {
	idx := strings.Index(target, c.Content)
	if idx < 0 {
		return MatchResult{}, false
	}
	start := textkit.UTF16Index(target, idx)
	end := textkit.UTF16Index(target, idx+len(c.Content))
	return MatchResult{
		Chunk: c, Start: start, End: end,
		Confidence: ConfidenceExact, Method: MethodExactMatch,
		Similarity: 1.0, HasSimilarity: true,
	}, true
}

func tryNormalizedSubstring(target string, c SourceChunk) (MatchResult, bool) {
	normChunk := textkit.Normalize(c.Content)
	if normChunk == "" {
		return MatchResult{}, false
	}
	normTarget := textkit.Normalize(target)

	byteIdx := strings.Index(normTarget, normChunk)
	if byteIdx < 0 {
		return MatchResult{}, false
	}

	normStartRune := len([]rune(normTarget[:byteIdx]))
	normEndRune := normStartRune + len([]rune(normChunk))

	origStart := textkit.NormalizedIndexToOriginal(target, normStartRune)
	origEnd := textkit.NormalizedIndexToOriginal(target, normEndRune)
	if origStart < 0 || origEnd < 0 || origEnd < origStart {
		return MatchResult{}, false
	}

	start := textkit.UTF16Index(target, origStart)
	end := textkit.UTF16Index(target, origEnd)
	return MatchResult{
		Chunk: c, Start: start, End: end,
		Confidence: ConfidenceHigh, Method: MethodNormalizedMatch,
		Similarity: 0.95, HasSimilarity: true,
	}, true
}

const anchorWordCount = 4

func tryMultiAnchorSearch(target string, c SourceChunk) (MatchResult, bool) {
	words := textkit.SplitWords(c.Content)
	if len(words) == 0 {
		return MatchResult{}, false
	}

	startAnchor := joinWords(words, 0, anchorWordCount)
	midLo, midHi := middleWordRange(len(words), anchorWordCount)
	middleAnchor := joinWords(words, midLo, midHi)
	endAnchor := joinWords(words, len(words)-min(anchorWordCount, len(words)), len(words))

	if startAnchor == "" || middleAnchor == "" || endAnchor == "" {
		return MatchResult{}, false
	}

	startIdx := strings.Index(target, startAnchor)
	if startIdx < 0 {
		return MatchResult{}, false
	}

	searchFrom := startIdx + len(startAnchor)
	if searchFrom > len(target) {
		searchFrom = len(target)
	}
	middleRel := strings.Index(target[searchFrom:], middleAnchor)
	if middleRel < 0 {
		return MatchResult{}, false
	}
	middleIdx := searchFrom + middleRel

	searchFrom2 := middleIdx + len(middleAnchor)
	if searchFrom2 > len(target) {
		searchFrom2 = len(target)
	}
	endRel := strings.Index(target[searchFrom2:], endAnchor)
	if endRel < 0 {
		return MatchResult{}, false
	}
	endIdx := searchFrom2 + endRel + len(endAnchor)

	start := textkit.UTF16Index(target, startIdx)
	end := textkit.UTF16Index(target, endIdx)
	return MatchResult{
		Chunk: c, Start: start, End: end,
		Confidence: ConfidenceHigh, Method: MethodMultiAnchorSearch,
		Similarity: 0.85, HasSimilarity: true,
	}, true
}

func joinWords(words []string, lo, hi int) string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(words) {
		hi = len(words)
	}
	if lo >= hi {
		return ""
	}
	return strings.Join(words[lo:hi], " ")
}

// middleWordRange returns the [lo, hi) slice of word indices centered on
// the midpoint of a word list of length n, spanning at most `count` words.
func middleWordRange(n, count int) (int, int) {
	mid := n / 2
	half := count / 2
	lo := mid - half
	hi := lo + count
	if lo < 0 {
		hi -= lo
		lo = 0
	}
	if hi > n {
		lo -= hi - n
		hi = n
		if lo < 0 {
			lo = 0
		}
	}
	return lo, hi
}

const slidingWindowAcceptThreshold = 0.75

func trySlidingWindow(target string, targetRunes []rune, sliceByRunes func(int, int) string, c SourceChunk, algo textkit.Algorithm) (MatchResult, bool) {
	windowSize := len([]rune(c.Content))
	if windowSize == 0 {
		return MatchResult{}, false
	}
	totalRunes := len(targetRunes)
	if windowSize > totalRunes {
		windowSize = totalRunes
	}
	if windowSize == 0 {
		return MatchResult{}, false
	}

	step := windowSize / 4
	if step < 1 {
		step = 1
	}

	bestSim := -1.0
	bestStart := 0
	found := false
	for winStart := 0; winStart+windowSize <= totalRunes; winStart += step {
		candidate := sliceByRunes(winStart, winStart+windowSize)
		sim := textkit.AlgorithmScore(c.Content, candidate, algo)
		if sim > bestSim {
			bestSim = sim
			bestStart = winStart
			found = true
		}
		if winStart+windowSize == totalRunes {
			break
		}
	}
	if !found || bestSim <= slidingWindowAcceptThreshold {
		return MatchResult{}, false
	}

	confidence := ConfidenceMedium
	switch {
	case bestSim >= 1.0:
		confidence = ConfidenceExact
	case bestSim >= 0.85:
		confidence = ConfidenceHigh
	}

	startByte := sliceByteOffset(target, targetRunes, bestStart)
	endByte := sliceByteOffset(target, targetRunes, bestStart+windowSize)
	start := textkit.UTF16Index(target, startByte)
	end := textkit.UTF16Index(target, endByte)

	return MatchResult{
		Chunk: c, Start: start, End: end,
		Confidence: confidence, Method: MethodSlidingWindow,
		Similarity: bestSim, HasSimilarity: true,
	}, true
}

func sliceByteOffset(target string, targetRunes []rune, runeIdx int) int {
	if runeIdx >= len(targetRunes) {
		return len(target)
	}
	return len(string(targetRunes[:runeIdx]))
}
