package material

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Resolver resolves a bitmap number to its Material, loading the
// grd#####.json sidecar at most once per id.
type Resolver interface {
	Resolve(bitmapNum uint16) Material
}

// Cache is a concurrency-safe Resolver backed by a texture directory.
// Once a bitmap id has been resolved (successfully or not) the result is
// cached and never re-read from disk, using double-checked locking so
// concurrent resolves of the same id don't race to read the sidecar.
type Cache struct {
	dir string

	mu      sync.RWMutex
	entries map[uint16]Material
	warned  map[uint16]bool
}

// NewCache creates a Cache rooted at a texture directory.
func NewCache(textureDir string) *Cache {
	return &Cache{
		dir:     textureDir,
		entries: make(map[uint16]Material),
		warned:  make(map[uint16]bool),
	}
}

// Resolve loads and caches the sidecar for bitmapNum. A missing or
// malformed sidecar yields a zero-value, Valid: false Material (the
// MetadataMissing recovery path) and is logged once per bitmap id.
func (c *Cache) Resolve(bitmapNum uint16) Material {
	c.mu.RLock()
	if m, ok := c.entries[bitmapNum]; ok {
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[bitmapNum]; ok {
		return existing
	}
	m, err := c.load(bitmapNum)
	if err != nil && !c.warned[bitmapNum] {
		fmt.Fprintf(os.Stderr, "material: bitmap %d: %v\n", bitmapNum, err)
		c.warned[bitmapNum] = true
	}
	c.entries[bitmapNum] = m
	return m
}

func (c *Cache) load(bitmapNum uint16) (Material, error) {
	path := filepath.Join(c.dir, fmt.Sprintf("grd%05d.json", bitmapNum))

	raw, err := os.ReadFile(path)
	if err != nil {
		return Material{}, fmt.Errorf("read sidecar %s: %w", path, err)
	}

	var sc Sidecar
	if err := json.Unmarshal(raw, &sc); err != nil {
		return Material{}, fmt.Errorf("parse sidecar %s: %w", path, err)
	}

	m := fromSidecar(&sc)
	if !m.Valid {
		return Material{}, fmt.Errorf("invalid texture data in %s", path)
	}
	return m, nil
}
