package textutil

import "math"

// Ratio scores how alike two strings are on a 0-100 scale as
// 200*LCS/(len(a)+len(b)), where LCS is the longest common subsequence of
// runes. Identical non-empty strings score 100; if either side is empty the
// score is 0.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	lcs := longestCommonSubsequence(ra, rb)
	return int(math.Round(200 * float64(lcs) / float64(total)))
}

// TokenSortRatio tokenizes both inputs, sorts the tokens alphabetically, and
// scores the rejoined strings with Ratio. Case, punctuation, and word order do
// not affect the score.
func TokenSortRatio(a, b string) int {
	return Ratio(SortedTokens(a), SortedTokens(b))
}

func longestCommonSubsequence(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
