package similarity

import (
	"math"

	"contentbot/textnorm"
)

// LevenshteinSimilarity converts the classic unit-cost edit distance between
// two strings into a similarity in [0,1]: 1 - distance/max(len). Operates on
// runes. Two empty strings are identical (1.0); one empty side matches
// nothing (0.0).
func LevenshteinSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	// Two-row DP over the distance matrix.
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := 0; j <= len(r2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			best := deletion
			if insertion < best {
				best = insertion
			}
			if substitution < best {
				best = substitution
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}

	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}
	return 1.0 - float64(prev[len(r2)])/float64(maxLen)
}

// JaccardSimilarity measures keyword-set overlap: |A∩B| / |A∪B| over the
// deduplicated keyword sets of the two strings. Both sets empty → 1.0;
// exactly one empty → 0.0.
func JaccardSimilarity(s1, s2 string) float64 {
	set1 := textnorm.KeywordSet(s1)
	set2 := textnorm.KeywordSet(s2)

	if len(set1) == 0 && len(set2) == 0 {
		return 1.0
	}
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	intersection := 0
	for word := range set1 {
		if _, ok := set2[word]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	return float64(intersection) / float64(union)
}

// SemanticSimilarity is a cosine similarity over keyword term-frequency
// vectors; repeated keywords weigh more. Returns 0.0 when either side has no
// extractable keywords.
func SemanticSimilarity(s1, s2 string) float64 {
	keywords1 := textnorm.ExtractKeywords(s1)
	keywords2 := textnorm.ExtractKeywords(s2)
	if len(keywords1) == 0 || len(keywords2) == 0 {
		return 0.0
	}

	freq1 := termFrequencies(keywords1)
	freq2 := termFrequencies(keywords2)

	dot := 0.0
	for word, count1 := range freq1 {
		if count2, ok := freq2[word]; ok {
			dot += float64(count1 * count2)
		}
	}
	if dot == 0 {
		return 0.0
	}

	norm1 := vectorNorm(freq1)
	norm2 := vectorNorm(freq2)
	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}
	return dot / (norm1 * norm2)
}

func termFrequencies(keywords []string) map[string]int {
	freq := make(map[string]int, len(keywords))
	for _, keyword := range keywords {
		freq[keyword]++
	}
	return freq
}

func vectorNorm(freq map[string]int) float64 {
	sum := 0.0
	for _, count := range freq {
		sum += float64(count * count)
	}
	return math.Sqrt(sum)
}
