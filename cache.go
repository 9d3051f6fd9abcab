package suffixlcp

import (
	"bytes"
	"slices"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// searchCache memoizes Search results. Keys are pattern hashes, so every hit
// is checked against the stored pattern before use.
type searchCache struct {
	entries *lru.Cache
}

type cachedSearch struct {
	pattern []byte
	offsets []int
}

func newSearchCache(size int) (*searchCache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create search cache")
	}
	return &searchCache{entries: entries}, nil
}

func (c *searchCache) get(pattern []byte) ([]int, bool) {
	value, ok := c.entries.Get(xxhash.Sum64(pattern))
	if !ok {
		return nil, false
	}
	entry := value.(*cachedSearch)
	if !bytes.Equal(entry.pattern, pattern) {
		return nil, false
	}
	return slices.Clone(entry.offsets), true
}

func (c *searchCache) add(pattern []byte, offsets []int) {
	c.entries.Add(xxhash.Sum64(pattern), &cachedSearch{
		pattern: bytes.Clone(pattern),
		offsets: slices.Clone(offsets),
	})
}

func (c *searchCache) size() int {
	return c.entries.Len()
}
