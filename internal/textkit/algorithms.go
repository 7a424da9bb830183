package textkit

import "github.com/antzucaro/matchr"

// Algorithm names a similarity metric available for the sliding-window
// strategy (C3 strategy 4) beyond the default Levenshtein ratio.
type Algorithm string

const (
	// AlgorithmLevenshtein is the matcher's default (Ratio/Distance above).
	AlgorithmLevenshtein Algorithm = "levenshtein"
	// AlgorithmDamerauOSA additionally tolerates adjacent transpositions,
	// useful when cleanup occasionally swaps two adjacent characters.
	AlgorithmDamerauOSA Algorithm = "damerau_osa"
	// AlgorithmJaroWinkler favors strings sharing a common prefix. When
	// selected it replaces the Levenshtein ratio as the sliding-window
	// score; it is not used to break ties between Levenshtein candidates.
	AlgorithmJaroWinkler Algorithm = "jaro_winkler"
)

// AlgorithmScore returns a normalized [0,1] similarity score for a and b
// under the given algorithm. Levenshtein uses the package's own Ratio;
// Damerau-OSA and Jaro-Winkler delegate to github.com/antzucaro/matchr,
// which this package already depends on transitively through the distance
// family gofulmen ships (see foundry/similarity/distance_v2.go).
func AlgorithmScore(a, b string, algo Algorithm) float64 {
	switch algo {
	case AlgorithmDamerauOSA:
		if a == b {
			return 1.0
		}
		runesA := len([]rune(a))
		runesB := len([]rune(b))
		maxLen := runesA
		if runesB > maxLen {
			maxLen = runesB
		}
		if maxLen == 0 {
			return 0
		}
		dist := matchr.DamerauLevenshtein(a, b)
		score := 1.0 - float64(dist)/float64(maxLen)
		if score < 0 {
			return 0
		}
		return score
	case AlgorithmJaroWinkler:
		// longTolerance=false matches standard Jaro-Winkler behavior.
		return matchr.JaroWinkler(a, b, false)
	default:
		return Ratio(a, b)
	}
}
