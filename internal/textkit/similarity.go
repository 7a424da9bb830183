package textkit

// Distance computes the Levenshtein edit distance between a and b: the
// minimum number of single-rune insertions, deletions, or substitutions
// needed to turn a into b.
//
// Uses the Wagner-Fischer dynamic-programming algorithm with a two-row
// rolling buffer (O(min(len(a),len(b))) space) over rune slices, so
// multi-byte UTF-8 sequences count as one edit unit each.
func Distance(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	if lenB < lenA {
		runesA, runesB = runesB, runesA
		lenA, lenB = lenB, lenA
	}

	prevRow := make([]int, lenA+1)
	currRow := make([]int, lenA+1)
	for i := 0; i <= lenA; i++ {
		prevRow[i] = i
	}

	for j := 1; j <= lenB; j++ {
		currRow[0] = j
		for i := 1; i <= lenA; i++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			deletion := currRow[i-1] + 1
			insertion := prevRow[i] + 1
			substitution := prevRow[i-1] + cost

			best := deletion
			if insertion < best {
				best = insertion
			}
			if substitution < best {
				best = substitution
			}
			currRow[i] = best
		}
		prevRow, currRow = currRow, prevRow
	}

	return prevRow[lenA]
}

// Ratio returns the string-similarity ratio the matcher's similarity
// kernel is defined on: 1 - editDistance(a,b)/max(len(a),len(b)), counted
// in runes. Zero if either string is empty, including when both are.
func Ratio(a, b string) float64 {
	if a == b {
		if len(a) == 0 {
			return 0
		}
		return 1.0
	}
	runesA := len([]rune(a))
	runesB := len([]rune(b))
	if runesA == 0 || runesB == 0 {
		return 0
	}

	maxLen := runesA
	if runesB > maxLen {
		maxLen = runesB
	}
	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}

// CosineSimilarity returns the dot product of two equal-length vectors.
// The matcher's embedder port contract requires unit-normalized vectors,
// so the dot product alone equals cosine similarity; this function never
// renormalizes (per the contract, renormalization is the embedder's job).
//
// Returns 0 if the vectors differ in length or are empty.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}
