package matcher

import (
	"context"

	"github.com/fulmenhq/docmatch/internal/ports"
	"github.com/fulmenhq/docmatch/internal/textkit"
)

// DefaultLLMWindowChars is the default half-width of the bounded window
// sliced around a chunk's estimated center before querying the LLM port.
const DefaultLLMWindowChars = 5000

const llmMatchSimilarity = 0.7

// runLayer3 asks the LLM port to locate each remaining chunk within a
// bounded slice of the target centered on the chunk's estimated position.
// N is the total chunk count across the whole call (needed to compute each
// chunk's center, since Layer 3 only ever sees the chunks Layers 1-2 left
// unmatched).
func runLayer3(ctx context.Context, target string, unmatched []SourceChunk, n int, llm ports.LLMClient, windowChars int) (matched []MatchResult, stillUnmatched []SourceChunk, err error) {
	if llm == nil || len(unmatched) == 0 {
		return nil, unmatched, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, unmatched, err
	}
	if windowChars <= 0 {
		windowChars = DefaultLLMWindowChars
	}
	targetRunes := []rune(target)
	total := len(targetRunes)

	for i, c := range unmatched {
		if err := ctx.Err(); err != nil {
			stillUnmatched = append(stillUnmatched, unmatched[i:]...)
			return matched, stillUnmatched, err
		}

		center := 0
		if n > 0 {
			center = c.Index * total / n
		}
		winStart := center - windowChars
		if winStart < 0 {
			winStart = 0
		}
		winEnd := center + windowChars
		if winEnd > total {
			winEnd = total
		}
		if winStart >= winEnd {
			stillUnmatched = append(stillUnmatched, c)
			continue
		}
		windowText := string(targetRunes[winStart:winEnd])

		answer, qerr := llm.FindPosition(ctx, ports.PositionQuery{ChunkText: c.Content, Window: windowText})
		if qerr != nil || !answer.Found || answer.Start < 0 || answer.End <= answer.Start || answer.End > len([]rune(windowText)) {
			stillUnmatched = append(stillUnmatched, c)
			continue
		}

		absStartRune := winStart + answer.Start
		absEndRune := winStart + answer.End
		if absEndRune > total {
			absEndRune = total
		}
		startByte := runeSliceByteOffset(target, absStartRune)
		endByte := runeSliceByteOffset(target, absEndRune)

		matched = append(matched, MatchResult{
			Chunk: c,
			Start: textkit.UTF16Index(target, startByte),
			End:   textkit.UTF16Index(target, endByte),
			Confidence: ConfidenceMedium, Method: MethodLLMMatch,
			Similarity: llmMatchSimilarity, HasSimilarity: true,
		})
	}
	return matched, stillUnmatched, nil
}
