package suffixlcp

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	nucliozap "github.com/nuclio/zap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderStrategiesAgree(t *testing.T) {
	text := []byte("abracadabra abracadabra")
	want := New(text)

	builders := map[string]*Builder{
		"doubling": NewBuilder(text).UseDoubling(),
		"naive":    NewBuilder(text).UseNaive(),
		"hybrid":   NewBuilder(text).UseHybridRMQ(),
		"all":      NewBuilder(text).UseDoubling().UseHybridRMQ().WithSearchCache(4),
	}
	for name, b := range builders {
		t.Run(name, func(t *testing.T) {
			idx, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, want.SuffixArray(), idx.SuffixArray())
			assert.Equal(t, want.Rank(), idx.Rank())
			assert.Equal(t, want.LCP(), idx.LCP())
			assert.Equal(t, want.Search([]byte("abra")), idx.Search([]byte("abra")))
			assert.Equal(t, want.DistinctSubstrings(), idx.DistinctSubstrings())
		})
	}
}

func TestBuildCopiesText(t *testing.T) {
	text := []byte("banana")
	idx := New(text)
	text[0] = 'z'
	assert.Equal(t, "banana", string(idx.Text()))
	assert.Equal(t, []int{0}, idx.Search([]byte("b")))
}

func TestAccessorsReturnCopies(t *testing.T) {
	idx := New([]byte("banana"))
	idx.SuffixArray()[0] = 99
	idx.Rank()[0] = 99
	idx.LCP()[0] = 99
	assert.Equal(t, []int{5, 3, 1, 0, 4, 2}, idx.SuffixArray())
	assert.Equal(t, []int{3, 2, 5, 1, 4, 0}, idx.Rank())
	assert.Equal(t, []int{1, 3, 0, 0, 2}, idx.LCP())
}

func TestFoldCase(t *testing.T) {
	idx, err := NewBuilder([]byte("Hello WORLD hello")).FoldCase().Build()
	require.NoError(t, err)

	assert.Equal(t, "hello world hello", string(idx.Text()))
	assert.Equal(t, []int{0, 12}, idx.Search([]byte("HELLO")))
	assert.Equal(t, []int{6}, idx.Search([]byte("World")))
	assert.Equal(t, "hello", string(idx.LongestCommonSubstring([]byte("HELLO"))))
}

func TestNormalize(t *testing.T) {
	decomposed := []byte("cafe\u0301 cafe")
	idx, err := NewBuilder(decomposed).Normalize().Build()
	require.NoError(t, err)

	assert.Equal(t, "caf\u00e9 cafe", string(idx.Text()))
	assert.Equal(t, []int{0}, idx.Search([]byte("caf\u00e9")))
	assert.Equal(t, []int{0}, idx.Search([]byte("cafe\u0301")))
	assert.Equal(t, []int{0, 6}, idx.Search([]byte("caf")))

	plain := New(decomposed)
	assert.Empty(t, plain.Search([]byte("caf\u00e9")))
}

func TestTransformsRequireUTF8(t *testing.T) {
	_, err := NewBuilder([]byte("ok\xff")).FoldCase().Build()
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = NewBuilder([]byte("ok\xff")).Normalize().Build()
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	// without transforms any byte sequence is a valid text
	idx, err := NewBuilder([]byte("ok\xff")).Build()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, idx.Search([]byte{0xff}))
}

func TestOptionsValidation(t *testing.T) {
	tests := map[string]Options{
		"negative cache":   {CacheSize: -1},
		"negative workers": {Workers: -2},
		"bad strategy":     {Strategy: Strategy(9)},
		"bad rmq":          {RangeMin: RMQKind(5)},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)
			_, err := NewBuilder([]byte("x")).WithOptions(opts).Build()
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}

	assert.NoError(t, Options{}.Validate())
	assert.NoError(t, Options{Strategy: Naive, RangeMin: HybridRMQ, CacheSize: 10, Workers: 3}.Validate())
}

func TestParseOptionNames(t *testing.T) {
	s, err := ParseStrategy("Doubling")
	require.NoError(t, err)
	assert.Equal(t, Doubling, s)

	k, err := ParseRMQKind("hybrid")
	require.NoError(t, err)
	assert.Equal(t, HybridRMQ, k)

	_, err = ParseStrategy("dc3")
	assert.ErrorIs(t, err, ErrInvalidOptions)
	_, err = ParseRMQKind("segment")
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestSearchCache(t *testing.T) {
	idx, err := NewBuilder([]byte("banana")).WithSearchCache(2).Build()
	require.NoError(t, err)

	first := idx.Search([]byte("ana"))
	assert.Equal(t, []int{1, 3}, first)
	assert.Equal(t, 1, idx.cache.size())

	first[0] = 42
	assert.Equal(t, []int{1, 3}, idx.Search([]byte("ana")))

	idx.Search([]byte("na"))
	idx.Search([]byte("b"))
	assert.Equal(t, 2, idx.cache.size())

	assert.Equal(t, []int{}, idx.Search([]byte("x")))
	assert.Equal(t, []int{}, idx.Search([]byte("x")))
}

func TestSearchCacheVerifiesPattern(t *testing.T) {
	idx, err := NewBuilder([]byte("banana")).WithSearchCache(8).Build()
	require.NoError(t, err)

	// plant an entry for a different pattern under the hash of "na"
	idx.cache.entries.Add(xxhash.Sum64([]byte("na")), &cachedSearch{
		pattern: []byte("zz"),
		offsets: []int{42},
	})
	assert.Equal(t, []int{2, 4}, idx.Search([]byte("na")))
}

func TestBuildWithLogger(t *testing.T) {
	loggerInstance, err := nucliozap.NewNuclioZapTest("test")
	require.NoError(t, err)

	idx, err := NewBuilder([]byte("mississippi")).WithLogger(loggerInstance).Build()
	require.NoError(t, err)
	assert.Equal(t, 11, idx.Len())
}
