// Package textkit implements the text-normalization and similarity
// primitives the matcher cascade is built on (C1/C2 in the design).
package textkit

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// dropChars is the set of punctuation characters the normalizer removes
// entirely rather than folding: `.,!?;:()[]{}"'` and backtick.
const dropChars = ".,!?;:()[]{}\"'`"

// Normalize produces the canonical comparison form of s: it is never
// emitted to a caller, only used to compare two strings approximately.
//
// In a single pass over s it:
//  1. drops the characters in dropChars
//  2. lowercases every remaining rune (unicode.ToLower)
//  3. collapses every run of whitespace to a single space
//  4. drops leading and trailing whitespace
//
// Dropped characters are removed before whitespace is collapsed, so the
// whitespace on both sides of a dropped character becomes one space
// ("a . b" normalizes to "a b"), and leading or trailing punctuation never
// leaves a space behind.
//
// The result is always shorter than or equal in length to the input.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastWasSpace := false
	wroteAny := false
	for _, r := range s {
		if strings.ContainsRune(dropChars, r) {
			continue
		}
		if unicode.IsSpace(r) {
			if wroteAny {
				lastWasSpace = true
			}
			continue
		}
		if lastWasSpace {
			b.WriteByte(' ')
			lastWasSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
		wroteAny = true
	}
	return b.String()
}

// StripAccents removes Unicode combining marks (category Mn) from s by
// decomposing to NFD, filtering combining runes, and recomposing to NFC.
// Not part of the Normalize pipeline, and not called by the matcher —
// offered for callers that want "café" to compare equal to "cafe".
func StripAccents(s string) string {
	b := norm.NFD.String(s)
	var out strings.Builder
	out.Grow(len(b))
	for _, r := range b {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out.WriteRune(r)
	}
	return norm.NFC.String(out.String())
}

// NormalizedIndexToOriginal projects a rune index into Normalize(original)
// back onto a byte offset in original. It walks original rune-by-rune,
// applying the same drop/fold/collapse decisions Normalize makes, and
// returns the original-string byte offset at which the normalizedIdx-th
// rune of the normalized string begins.
//
// Returns -1 if normalizedIdx cannot be recovered (it never falls strictly
// between two emitted runes in the normalized output).
func NormalizedIndexToOriginal(original string, normalizedIdx int) int {
	if normalizedIdx <= 0 {
		return 0
	}

	emitted := 0
	lastWasSpace := false
	spaceRunStart := -1
	wroteAny := false
	for i, r := range original {
		if strings.ContainsRune(dropChars, r) {
			continue
		}
		if unicode.IsSpace(r) {
			if wroteAny && !lastWasSpace {
				lastWasSpace = true
				spaceRunStart = i
			}
			continue
		}
		if lastWasSpace {
			if emitted == normalizedIdx {
				return spaceRunStart
			}
			emitted++
			lastWasSpace = false
		}
		if emitted == normalizedIdx {
			return i
		}
		emitted++
		wroteAny = true
	}
	if emitted == normalizedIdx {
		return len(original)
	}
	return -1
}
