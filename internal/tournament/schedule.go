package tournament

// Pair is an unordered pairing of two roster positions, First < Second.
type Pair struct {
	First  int
	Second int
}

// Pairs enumerates every unordered pair of an n-player roster. Pairs are
// ordered by first index, then second, and the earlier roster position is
// always player 1.
func Pairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{First: i, Second: j})
		}
	}
	return pairs
}
