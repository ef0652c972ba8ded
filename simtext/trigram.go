// Package simtext implements the normalized trigram distance used as an
// update-cost proxy by the RTED matcher (and, transitively, as the label
// comparison the bottom-up matcher's last-chance pass relies on).
package simtext

// trigrams splits s into its length-3 sliding windows, falling back to s
// itself when s is shorter than 3 bytes.
func trigrams(s string) []string {
	if len(s) < 3 {
		return []string{s}
	}
	out := make([]string, 0, len(s)-2)
	for i := 0; i+3 <= len(s); i++ {
		out = append(out, s[i:i+3])
	}
	return out
}

// NormalizedTrigramDistance treats nil strings as empty, forms the
// multisets of trigrams of a and b, and returns
// 1 - 2*|matches| / (|T(a)| + |T(b)|), where |T(s)| = max(1, len(s)-2).
// The result is always in [0, 1], is symmetric, and is 0 when a == b.
func NormalizedTrigramDistance(a, b *string) float64 {
	as, bs := deref(a), deref(b)

	ta, tb := trigrams(as), trigrams(bs)
	matches := multisetIntersectionCount(ta, tb)

	denom := float64(weight(as) + weight(bs))
	if denom == 0 {
		return 0
	}
	return 1 - 2*float64(matches)/denom
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// weight is |T(s)| = max(1, len(s)-2), matching the number of trigrams
// trigrams(s) produces for any non-empty s, and the documented convention of
// charging a floor of 1 even for strings shorter than 3 bytes.
func weight(s string) int {
	w := len(s) - 2
	if w < 1 {
		w = 1
	}
	return w
}

// multisetIntersectionCount counts how many elements two multisets (given as
// slices) have in common, each element contributing to the match count at
// most min(count in a, count in b) times.
func multisetIntersectionCount(a, b []string) int {
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	matches := 0
	for _, s := range b {
		if counts[s] > 0 {
			counts[s]--
			matches++
		}
	}
	return matches
}
