package suffixlcp

import (
	"math/bits"

	"github.com/pkg/errors"
	"github.com/viniciusth/rmq"
)

// RangeMin answers minimum queries over a static sequence.
type RangeMin interface {
	// Min returns the minimum of values[i..j], both ends inclusive.
	// Empty or out of bounds ranges fail with ErrInvalidRange.
	Min(i, j int) (int, error)
	Len() int
}

// RMQKind selects the RangeMin implementation built over the LCP array.
type RMQKind int

const (
	// SparseTableRMQ answers in O(1) after O(n log n) preprocessing.
	SparseTableRMQ RMQKind = iota
	// HybridRMQ uses the block-decomposed structure of viniciusth/rmq,
	// trading a slower query for O(n) memory.
	HybridRMQ
)

func (k RMQKind) String() string {
	switch k {
	case SparseTableRMQ:
		return "sparse"
	case HybridRMQ:
		return "hybrid"
	default:
		return "unknown"
	}
}

func newRangeMin(values []int, kind RMQKind) RangeMin {
	if kind == HybridRMQ {
		return NewHybridRangeMin(values)
	}
	return NewSparseTable(values)
}

// SparseTable stores layer k, the minima of every window of length 2^k,
// at table[k*n:]. Layer 0 is a copy of the input.
type SparseTable struct {
	n      int
	layers int
	table  []int
}

func NewSparseTable(values []int) *SparseTable {
	n := len(values)
	st := &SparseTable{n: n}
	if n == 0 {
		return st
	}

	st.layers = bits.Len(uint(n))
	st.table = make([]int, st.layers*n)
	copy(st.table, values)
	for k := 1; k < st.layers; k++ {
		half := 1 << (k - 1)
		prev, cur := st.layer(k-1), st.layer(k)
		for i := 0; i+(1<<k) <= n; i++ {
			cur[i] = min(prev[i], prev[i+half])
		}
	}
	return st
}

// layer returns the valid entries of layer k.
func (st *SparseTable) layer(k int) []int {
	return st.table[k*st.n : k*st.n+st.n-(1<<k)+1]
}

func (st *SparseTable) Min(i, j int) (int, error) {
	if err := checkRange(i, j, st.n); err != nil {
		return 0, err
	}
	// The two windows may overlap; min is idempotent.
	k := bits.Len(uint(j-i+1)) - 1
	row := st.table[k*st.n:]
	return min(row[i], row[j-(1<<k)+1]), nil
}

func (st *SparseTable) Len() int {
	return st.n
}

// HybridRangeMin adapts rmq.RMQHybridNaive, which reports the position of
// the minimum, to RangeMin.
type HybridRangeMin struct {
	values []int
	rmq    *rmq.RMQHybridNaive[int]
}

func NewHybridRangeMin(values []int) *HybridRangeMin {
	h := &HybridRangeMin{values: values}
	if len(values) > 0 {
		h.rmq = rmq.NewRMQHybridNaive(values)
	}
	return h
}

func (h *HybridRangeMin) Min(i, j int) (int, error) {
	if err := checkRange(i, j, len(h.values)); err != nil {
		return 0, err
	}
	return h.values[h.rmq.Query(i, j)], nil
}

func (h *HybridRangeMin) Len() int {
	return len(h.values)
}

func checkRange(i, j, n int) error {
	if i < 0 || j >= n {
		return errors.Wrapf(ErrInvalidRange, "[%d, %d] is outside [0, %d)", i, j, n)
	}
	if i > j {
		return errors.Wrapf(ErrInvalidRange, "start %d is after end %d", i, j)
	}
	return nil
}
