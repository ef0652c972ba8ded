package editscript

// pair is one matched (x, y) element from a longest-common-subsequence run.
type pair[X, Y any] struct {
	X X
	Y Y
}

// lcs returns the longest common subsequence of x and y under the given
// equality relation, as a list of matched (x[i], y[j]) pairs in the order
// they appear in x (equivalently y). The classic O(len(x)*len(y)) dynamic
// program, built bottom-up so the greedy left-to-right walk below can always
// pick whichever side advances the optimal length.
func lcs[X, Y any](x []X, y []Y, equal func(X, Y) bool) []pair[X, Y] {
	m, n := len(x), len(y)
	opt := make([][]int, m+1)
	for i := range opt {
		opt[i] = make([]int, n+1)
	}

	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if equal(x[i], y[j]) {
				opt[i][j] = opt[i+1][j+1] + 1
			} else {
				opt[i][j] = max(opt[i+1][j], opt[i][j+1])
			}
		}
	}

	var result []pair[X, Y]
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case equal(x[i], y[j]):
			result = append(result, pair[X, Y]{x[i], y[j]})
			i++
			j++
		case opt[i+1][j] >= opt[i][j+1]:
			i++
		default:
			j++
		}
	}
	return result
}
