package suffixlcp

import (
	"bytes"
	"sort"

	"github.com/jgallagher/gosaca"
	"golang.org/x/exp/constraints"
)

// Strategy selects how suffixes are sorted. Every strategy yields the same
// suffix array; only the running time differs.
type Strategy int

const (
	// SAIS sorts bytes with the linear-time induced sorting algorithm.
	SAIS Strategy = iota
	// Doubling sorts by prefix doubling, O(n log n) with counting-sort passes.
	Doubling
	// Naive compares whole suffixes, O(n² log n). Only sensible for small texts.
	Naive
)

func (s Strategy) String() string {
	switch s {
	case SAIS:
		return "sais"
	case Doubling:
		return "doubling"
	case Naive:
		return "naive"
	default:
		return "unknown"
	}
}

// SuffixArray returns the suffix array of text and its inverse, the rank array.
func SuffixArray(text []byte) (sa, rank []int) {
	return buildSuffixArray(text, SAIS)
}

// SymbolSuffixArray is SuffixArray over an arbitrary ordered alphabet.
func SymbolSuffixArray[S constraints.Ordered](text []S) (sa, rank []int) {
	sa = doublingSort(text)
	return sa, invert(sa)
}

func buildSuffixArray(text []byte, strategy Strategy) ([]int, []int) {
	var sa []int
	switch strategy {
	case Doubling:
		sa = doublingSort(text)
	case Naive:
		sa = naiveSort(text)
	default:
		sa = saisSort(text)
	}
	return sa, invert(sa)
}

func saisSort(text []byte) []int {
	sa := make([]int, len(text))
	if len(text) < 2 {
		return sa
	}
	ws := &gosaca.WorkSpace{}
	ws.ComputeSuffixArray(text, sa)
	return sa
}

func naiveSort(text []byte) []int {
	sa := make([]int, len(text))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(a, b int) bool {
		return bytes.Compare(text[sa[a]:], text[sa[b]:]) < 0
	})
	return sa
}

// doublingSort ranks suffixes by their first h symbols and doubles h until
// every rank is distinct. Each round is a stable counting sort on the first
// half, with the second half already ordered by the previous round.
func doublingSort[S constraints.Ordered](text []S) []int {
	n := len(text)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	if n < 2 {
		return sa
	}

	sort.SliceStable(sa, func(a, b int) bool {
		return text[sa[a]] < text[sa[b]]
	})
	rank := make([]int, n)
	classes := 1
	for k := 1; k < n; k++ {
		if text[sa[k]] != text[sa[k-1]] {
			classes++
		}
		rank[sa[k]] = classes - 1
	}

	next := make([]int, n)
	order := make([]int, n)
	count := make([]int, n+1)
	for h := 1; classes < n; h <<= 1 {
		// Suffixes shorter than h have an empty second half and go first.
		j := 0
		for i := n - h; i < n; i++ {
			order[j] = i
			j++
		}
		for _, p := range sa {
			if p >= h {
				order[j] = p - h
				j++
			}
		}

		clear(count[:classes+1])
		for _, p := range order {
			count[rank[p]+1]++
		}
		for c := 1; c <= classes; c++ {
			count[c] += count[c-1]
		}
		for _, p := range order {
			sa[count[rank[p]]] = p
			count[rank[p]]++
		}

		next[sa[0]] = 0
		classes = 1
		for k := 1; k < n; k++ {
			a, b := sa[k-1], sa[k]
			if rank[a] != rank[b] || secondKey(rank, a+h) != secondKey(rank, b+h) {
				classes++
			}
			next[b] = classes - 1
		}
		rank, next = next, rank
	}
	return sa
}

func secondKey(rank []int, i int) int {
	if i < len(rank) {
		return rank[i]
	}
	return -1
}

func invert(sa []int) []int {
	rank := make([]int, len(sa))
	for k, p := range sa {
		rank[p] = k
	}
	return rank
}
