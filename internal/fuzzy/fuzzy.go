// Package fuzzy suggests the closest known name for a mistyped one.
//
// It backs the "did you mean" hints for both command-line flags and
// interactive commands.
package fuzzy

// Distance returns the Damerau-Levenshtein edit distance between a
// and b: insertions, deletions, substitutions and adjacent
// transpositions all cost 1. Comparison is by rune.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	m := make([][]int, len(ra)+1)
	for i := range m {
		m[i] = make([]int, len(rb)+1)
		m[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		m[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := min(m[i-1][j]+1, m[i][j-1]+1, m[i-1][j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d = min(d, m[i-2][j-2]+cost)
			}
			m[i][j] = d
		}
	}

	return m[len(ra)][len(rb)]
}

// Suggest returns the candidate with the smallest edit distance to
// input. Only a strictly smaller distance displaces the current best,
// so ties resolve to candidate list order. An empty candidate list
// returns "".
func Suggest(input string, candidates []string) string {
	best := ""
	bestDist := 0
	for i, c := range candidates {
		d := Distance(input, c)
		if i == 0 || d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
