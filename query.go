package suffixlcp

import (
	"bytes"
	"iter"
	"slices"
	"sort"

	"github.com/pkg/errors"
)

// Span locates a substring of the indexed text.
type Span struct {
	Offset int
	Length int
}

// Bytes returns the text under s. The result aliases the index and must not be modified.
func (x *Index) Bytes(s Span) []byte {
	end := s.Offset + s.Length
	return x.text[s.Offset:end:end]
}

// Search returns the ascending offsets at which pattern occurs.
// The empty pattern occurs at every offset.
func (x *Index) Search(pattern []byte) []int {
	pattern = x.transformPattern(pattern)
	if x.cache != nil {
		if offsets, ok := x.cache.get(pattern); ok {
			return offsets
		}
	}

	lo, hi := x.findBoundaries(pattern)
	offsets := slices.Clone(x.sa[lo:hi])
	if offsets == nil {
		offsets = []int{}
	}
	slices.Sort(offsets)

	if x.cache != nil {
		x.cache.add(pattern, offsets)
	}
	return offsets
}

// SearchRange returns the half-open interval [lo, hi) of sorted positions
// whose suffixes start with pattern. ok is false when there is no match.
func (x *Index) SearchRange(pattern []byte) (lo, hi int, ok bool) {
	lo, hi = x.findBoundaries(x.transformPattern(pattern))
	return lo, hi, hi > lo
}

// Count returns the number of occurrences of pattern.
func (x *Index) Count(pattern []byte) int {
	lo, hi, _ := x.SearchRange(pattern)
	return hi - lo
}

func (x *Index) findBoundaries(pattern []byte) (int, int) {
	n := len(x.sa)
	if len(pattern) == 0 {
		return 0, n
	}

	// first suffix that is >= pattern when cut to its length
	lo := sort.Search(n, func(k int) bool {
		return comparePrefix(x.text[x.sa[k]:], pattern) >= 0
	})
	if lo == n || !bytes.HasPrefix(x.text[x.sa[lo]:], pattern) {
		return lo, lo
	}

	// we have T T T F F F over the positions after lo: suffix lo+i+1 keeps the
	// pattern iff min(lcp[lo..lo+i]) >= |pattern|. Search for the first F.
	width := sort.Search(n-lo-1, func(i int) bool {
		shared, _ := x.rangeMin.Min(lo, lo+i)
		return shared < len(pattern)
	})
	return lo, lo + width + 1
}

// comparePrefix orders suffix against pattern looking only at the first
// len(pattern) bytes of suffix; 0 means pattern is a prefix of suffix.
func comparePrefix(suffix, pattern []byte) int {
	if len(suffix) > len(pattern) {
		suffix = suffix[:len(pattern)]
	}
	return bytes.Compare(suffix, pattern)
}

// LongestCommonPrefix returns the length of the longest common prefix of
// the suffixes starting at offsets i and j.
func (x *Index) LongestCommonPrefix(i, j int) (int, error) {
	n := len(x.sa)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, errors.Wrapf(ErrInvalidOffset, "offsets (%d, %d) with text length %d", i, j, n)
	}
	if i == j {
		return n - i, nil
	}
	ri, rj := x.rank[i], x.rank[j]
	if ri > rj {
		ri, rj = rj, ri
	}
	return x.rangeMin.Min(ri, rj-1)
}

// RankLCP is LongestCommonPrefix addressed by sorted positions instead of offsets.
func (x *Index) RankLCP(ri, rj int) (int, error) {
	n := len(x.sa)
	if ri < 0 || ri >= n || rj < 0 || rj >= n {
		return 0, errors.Wrapf(ErrInvalidRange, "positions (%d, %d) with %d suffixes", ri, rj, n)
	}
	if ri == rj {
		return n - x.sa[ri], nil
	}
	if ri > rj {
		ri, rj = rj, ri
	}
	return x.rangeMin.Min(ri, rj-1)
}

// LongestRepeated locates the longest substring occurring at least twice.
// Among equally long candidates the first one in sorted order wins.
func (x *Index) LongestRepeated() Span {
	best, at := 0, 0
	for k, l := range x.lcp {
		if l > best {
			best, at = l, x.sa[k]
		}
	}
	return Span{Offset: at, Length: best}
}

func (x *Index) LongestRepeatedSubstring() []byte {
	s := x.LongestRepeated()
	if s.Length == 0 {
		return nil
	}
	return x.Bytes(s)
}

// LongestCommonSubstring returns the longest substring shared by the indexed
// text and other, or nil when they share nothing. The result aliases
// whichever of the two texts it was found in.
//
// Both texts are lifted to int32 symbols and joined by a sentinel 0 that is
// smaller than every byte, so no common prefix can run across the join.
func (x *Index) LongestCommonSubstring(other []byte) []byte {
	other = x.transformPattern(other)
	na := len(x.text)

	joined := make([]int32, 0, na+1+len(other))
	for _, c := range x.text {
		joined = append(joined, int32(c)+1)
	}
	joined = append(joined, 0)
	for _, c := range other {
		joined = append(joined, int32(c)+1)
	}

	sa, rank := SymbolSuffixArray(joined)
	lcp := LCPArray(joined, sa, rank)

	best, at := 0, -1
	for k, l := range lcp {
		if l <= best {
			continue
		}
		p, q := sa[k], sa[k+1]
		if (p < na && q > na) || (q < na && p > na) {
			best, at = l, p
		}
	}

	switch {
	case at < 0:
		return nil
	case at < na:
		return x.text[at : at+best : at+best]
	default:
		at -= na + 1
		return other[at : at+best : at+best]
	}
}

// DistinctSubstrings counts the distinct non-empty substrings of the text:
// every suffix contributes its prefixes not shared with its sorted predecessor.
func (x *Index) DistinctSubstrings() int {
	n := len(x.sa)
	count := n * (n + 1) / 2
	for _, l := range x.lcp {
		count -= l
	}
	return count
}

// EachDistinctSubstring yields every distinct non-empty substring exactly
// once, grouped by suffix in sorted order. Yielded slices alias the index.
func (x *Index) EachDistinctSubstring() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for k, p := range x.sa {
			shared := 0
			if k > 0 {
				shared = x.lcp[k-1]
			}
			for end := p + shared + 1; end <= len(x.text); end++ {
				if !yield(x.text[p:end:end]) {
					return
				}
			}
		}
	}
}

// Suffixes yields (offset, suffix) pairs in sorted order.
func (x *Index) Suffixes() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for _, p := range x.sa {
			if !yield(p, x.text[p:]) {
				return
			}
		}
	}
}
