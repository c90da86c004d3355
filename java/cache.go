package java

import (
	"context"
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of compilation units a SourceCache keeps
// when no size is configured.
const DefaultCacheSize = 4096

// SourceCache memoizes ParseSource by path and content hash, so repeated
// loads of an unchanged source tree skip tree-sitter entirely. It is safe
// for concurrent use.
type SourceCache struct {
	entries *lru.Cache[[sha256.Size]byte, []*ClassModel]
}

func NewSourceCache(size int) (*SourceCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[[sha256.Size]byte, []*ClassModel](size)
	if err != nil {
		return nil, err
	}
	return &SourceCache{entries: entries}, nil
}

// Parse returns the cached models for src or parses and caches them. A nil
// cache parses every time.
func (c *SourceCache) Parse(ctx context.Context, src []byte, path string) ([]*ClassModel, error) {
	if c == nil {
		return ParseSource(ctx, src, path)
	}
	key := cacheKey(src, path)
	if models, ok := c.entries.Get(key); ok {
		return models, nil
	}
	models, err := ParseSource(ctx, src, path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, models)
	return models, nil
}

func (c *SourceCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func (c *SourceCache) Purge() {
	if c != nil {
		c.entries.Purge()
	}
}

func cacheKey(src []byte, path string) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(src)
	var key [sha256.Size]byte
	h.Sum(key[:0])
	return key
}
