package docmeta

import (
	"regexp"
	"strings"
)

var atxHeaderRegex = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

// Heading is one ATX-style markdown header.
type Heading struct {
	Level  int
	Text   string
	Offset int // byte offset into content where the heading line starts
}

// ExtractHeadings scans content for ATX headers (# through ######),
// skipping anything inside a fenced code block. Setext-style headers
// (underlined with ===/---) are not recognized — docmatch's own target
// markdown is always LLM-cleaned to ATX form upstream of this package.
func ExtractHeadings(content string) []Heading {
	var out []Heading
	inFence := false
	fence := ""
	offset := 0
	for _, line := range strings.Split(content, "\n") {
		lineStart := offset
		offset += len(line) + 1 // +1 for the stripped "\n"
		if f, ok := fenceMarker(line); ok {
			if !inFence {
				inFence, fence = true, f
			} else if f == fence {
				inFence = false
			}
			continue
		}
		if inFence {
			continue
		}
		if m := atxHeaderRegex.FindStringSubmatch(line); m != nil {
			out = append(out, Heading{Level: len(m[1]), Text: m[2], Offset: lineStart})
		}
	}
	return out
}

func fenceMarker(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "```") {
		return "```", true
	}
	if strings.HasPrefix(trimmed, "~~~") {
		return "~~~", true
	}
	return "", false
}

// HeadingPathAt returns the stack of heading texts (outermost first) that
// are in scope at byteOffset — the same "breadcrumb" shape as
// matcher.ChunkMeta.HeadingPath, used to backfill metadata for chunks a
// document loader didn't already tag.
func HeadingPathAt(content string, byteOffset int) []string {
	headings := ExtractHeadings(content[:clampOffset(byteOffset, len(content))])
	var stack []string
	var levels []int
	for _, h := range headings {
		for len(levels) > 0 && levels[len(levels)-1] >= h.Level {
			stack = stack[:len(stack)-1]
			levels = levels[:len(levels)-1]
		}
		stack = append(stack, h.Text)
		levels = append(levels, h.Level)
	}
	return stack
}

func clampOffset(offset, max int) int {
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
