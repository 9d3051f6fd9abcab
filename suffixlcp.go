package suffixlcp

import (
	"bytes"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/nuclio/logger"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidRange   = errors.New("suffixlcp: invalid range")
	ErrInvalidOffset  = errors.New("suffixlcp: offset out of range")
	ErrInvalidUTF8    = errors.New("suffixlcp: invalid UTF-8 encoding in input text")
	ErrInvalidOptions = errors.New("suffixlcp: invalid options")
)

type Builder struct {
	text []byte
	opts Options
}

func NewBuilder(text []byte) *Builder {
	return &Builder{text: text}
}

// Sorts suffixes by prefix doubling instead of SA-IS.
func (b *Builder) UseDoubling() *Builder {
	b.opts.Strategy = Doubling
	return b
}

// Sorts suffixes by comparing them directly. Quadratic, meant for checking the other strategies.
func (b *Builder) UseNaive() *Builder {
	b.opts.Strategy = Naive
	return b
}

// Answers LCP range queries with the hybrid block structure instead of a sparse table.
// Saves O(n log n) memory: only O(n) extra memory is kept over the LCP array.
// Trade-off: pair LCP queries and search upper bounds are slower.
func (b *Builder) UseHybridRMQ() *Builder {
	b.opts.RangeMin = HybridRMQ
	return b
}

// Folds case before indexing, searches become case insensitive.
func (b *Builder) FoldCase() *Builder {
	b.opts.FoldCase = true
	return b
}

// Normalizes the text with NFC before indexing.
func (b *Builder) Normalize() *Builder {
	b.opts.Normalize = true
	return b
}

// Memoizes up to size Search results.
func (b *Builder) WithSearchCache(size int) *Builder {
	b.opts.CacheSize = size
	return b
}

func (b *Builder) WithLogger(l logger.Logger) *Builder {
	b.opts.Logger = l
	return b
}

// Replaces every option at once.
func (b *Builder) WithOptions(opts Options) *Builder {
	b.opts = opts
	return b
}

func (b *Builder) Options() Options {
	return b.opts
}

func (b *Builder) Build() (*Index, error) {
	return build(b.text, b.opts)
}

// Index is an immutable suffix array over a text together with its rank
// array, LCP array and a range-minimum index over the LCP array. All
// methods are safe for concurrent use.
type Index struct {
	text     []byte
	sa       []int
	rank     []int
	lcp      []int
	rangeMin RangeMin
	cache    *searchCache

	foldCase  bool
	normalize bool
}

// New indexes text with the default options.
func New(text []byte) *Index {
	idx, err := build(text, Options{})
	if err != nil {
		// the zero Options never fail validation and apply no transform
		panic(err)
	}
	return idx
}

func build(text []byte, opts Options) (*Index, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	text, err := prepareText(text, opts.FoldCase, opts.Normalize)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sa, rank := buildSuffixArray(text, opts.Strategy)
	sorted := time.Now()
	lcp := LCPArray(text, sa, rank)
	rangeMin := newRangeMin(lcp, opts.RangeMin)

	idx := &Index{
		text:      text,
		sa:        sa,
		rank:      rank,
		lcp:       lcp,
		rangeMin:  rangeMin,
		foldCase:  opts.FoldCase,
		normalize: opts.Normalize,
	}
	if opts.CacheSize > 0 {
		if idx.cache, err = newSearchCache(opts.CacheSize); err != nil {
			return nil, err
		}
	}

	if opts.Logger != nil {
		opts.Logger.DebugWith("Built suffix index",
			"length", len(text),
			"strategy", opts.Strategy.String(),
			"rmq", opts.RangeMin.String(),
			"sortDuration", sorted.Sub(start).String(),
			"totalDuration", time.Since(start).String())
	}
	return idx, nil
}

// prepareText returns a private copy of text, transformed if requested.
func prepareText(text []byte, foldCase, normalize bool) ([]byte, error) {
	if !foldCase && !normalize {
		return bytes.Clone(text), nil
	}
	if !utf8.Valid(text) {
		return nil, ErrInvalidUTF8
	}
	return applyTransforms(text, foldCase, normalize), nil
}

func applyTransforms(text []byte, foldCase, normalize bool) []byte {
	out := bytes.Clone(text)
	if foldCase {
		out = cases.Fold().Bytes(out)
	}
	if normalize {
		out = norm.NFC.Bytes(out)
	}
	return out
}

// transformPattern applies the index transforms to a query. Invalid UTF-8
// is searched verbatim, it may still occur inside the text's byte sequence.
func (x *Index) transformPattern(pattern []byte) []byte {
	if (!x.foldCase && !x.normalize) || !utf8.Valid(pattern) {
		return pattern
	}
	return applyTransforms(pattern, x.foldCase, x.normalize)
}

// Len returns the length of the indexed text.
func (x *Index) Len() int {
	return len(x.text)
}

// Text returns the indexed text after transforms. It must not be modified.
func (x *Index) Text() []byte {
	return x.text[:len(x.text):len(x.text)]
}

func (x *Index) SuffixArray() []int {
	return slices.Clone(x.sa)
}

func (x *Index) Rank() []int {
	return slices.Clone(x.rank)
}

func (x *Index) LCP() []int {
	return slices.Clone(x.lcp)
}

// RangeMin exposes the range-minimum index over the LCP array.
func (x *Index) RangeMin() RangeMin {
	return x.rangeMin
}
