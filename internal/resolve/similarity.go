package resolve

import "strings"

// SimilarityThreshold is the minimum score a fuzzy match must exceed.
// Biased toward prefix and order-preserving typos; transpositions beyond
// a local swap are not recovered. Cheaper than edit distance on purpose.
const SimilarityThreshold = 0.70

// Similarity scores two strings in [0,1] by a monotone scan: the count of
// characters from the shorter string matched, in order, against the longer
// string, divided by the longer string's length.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1.0
	}

	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}
	if len(longer) == 0 {
		return 1.0
	}

	matches := 0
	j := 0
	for i := 0; i < len(shorter); i++ {
		for j < len(longer) && shorter[i] != longer[j] {
			j++
		}
		if j < len(longer) {
			matches++
			j++
		}
	}

	return float64(matches) / float64(len(longer))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func upper(s string) string {
	return strings.ToUpper(s)
}
