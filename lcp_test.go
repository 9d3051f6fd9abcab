package suffixlcp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkLCP(t *testing.T, text []byte) {
	t.Helper()
	sa, rank := SuffixArray(text)
	lcp := LCPArray(text, sa, rank)
	require.Len(t, lcp, max(len(text)-1, 0))
	for k := range lcp {
		want := naiveLCP(text[sa[k]:], text[sa[k+1]:])
		require.Equal(t, want, lcp[k], "lcp[%d] of %q", k, text)
		require.LessOrEqual(t, lcp[k], len(text)-max(sa[k], sa[k+1]))
	}
}

func TestLCPArraySamples(t *testing.T) {
	for _, s := range sampleTexts {
		checkLCP(t, []byte(s))
	}
}

func TestLCPArrayRandom(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for run := 0; run < 200; run++ {
		checkLCP(t, randomText(r, r.Intn(200), 1+r.Intn(3)))
	}
}

func TestLCPArrayBanana(t *testing.T) {
	text := []byte("banana")
	sa, rank := SuffixArray(text)
	assert.Equal(t, []int{1, 3, 0, 0, 2}, LCPArray(text, sa, rank))
}

func TestLCPArrayDegenerate(t *testing.T) {
	assert.Equal(t, []int{}, LCPArray([]byte{}, []int{}, []int{}))
	assert.Equal(t, []int{}, LCPArray([]byte("z"), []int{0}, []int{0}))
}

func TestLCPArraySymbols(t *testing.T) {
	text := []int32{2, 1, 2, 1, 0}
	sa, rank := SymbolSuffixArray(text)
	lcp := LCPArray(text, sa, rank)
	for k := range lcp {
		want := 0
		for sa[k]+want < len(text) && sa[k+1]+want < len(text) && text[sa[k]+want] == text[sa[k+1]+want] {
			want++
		}
		assert.Equal(t, want, lcp[k])
	}
}
