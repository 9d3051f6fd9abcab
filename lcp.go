package suffixlcp

import "golang.org/x/exp/constraints"

// LCPArray computes the longest common prefix of every pair of adjacent
// suffixes with Kasai's algorithm in O(n) time: lcp[k] is shared by the
// suffixes at sorted positions k and k+1.
func LCPArray[S constraints.Ordered](text []S, sa, rank []int) []int {
	n := len(sa)
	if n < 2 {
		return []int{}
	}

	lcp := make([]int, n-1)
	h := 0
	for i := range n {
		if rank[i] == 0 {
			h = 0
			continue
		}
		j := sa[rank[i]-1]
		for i+h < n && j+h < n && text[i+h] == text[j+h] {
			h++
		}
		lcp[rank[i]-1] = h
		if h > 0 {
			h--
		}
	}

	return lcp
}
