package textkit

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// SplitWords breaks s into its Unicode word-boundary tokens (UAX #29) and
// returns only the tokens that contain at least one letter or number,
// discarding pure whitespace/punctuation segments. This is what the
// multi-anchor fuzzy search strategy uses to extract "first four words" /
// "last four words" / the four words centered on the midpoint — naive
// strings.Fields would mis-split locales where word boundaries aren't
// ASCII-whitespace-delimited.
func SplitWords(s string) []string {
	out := make([]string, 0, len(s)/5+1)
	seg := words.FromString(s)
	for seg.Next() {
		tok := seg.Value()
		if isWordlike(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func isWordlike(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
