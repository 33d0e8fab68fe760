package internal

import "iter"

// PermutationSeq yields every ordering of the indices 0..n-1 in lexicographic
// order, starting with the identity, together with its position in that order.
// Each yielded slice is fresh and may be kept by the caller. n! grows fast;
// orderings are produced one at a time so callers can stop early.
func PermutationSeq(n int) iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		if n < 0 {
			return
		}
		current := make([]int, n)
		for i := range current {
			current[i] = i
		}
		for index := 0; ; index++ {
			if !yield(index, clone(current)) || !nextPermutation(current) {
				return
			}
		}
	}
}

// Permutations collects PermutationSeq(n).
func Permutations(n int) [][]int {
	var out [][]int
	for _, p := range PermutationSeq(n) {
		out = append(out, p)
	}
	return out
}

// nextPermutation rearranges p into its lexicographic successor and reports
// whether one existed.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

func clone(p []int) []int {
	c := make([]int, len(p))
	copy(c, p)
	return c
}
