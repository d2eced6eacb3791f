package dataset

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"sales-dashboard/internal/errors"
)

// Cache memoizes Load results keyed by source path and file
// modification time. Invalidation is explicit or happens when the file
// changes on disk; the Loader itself stays stateless.
type Cache struct {
	loader *Loader

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	dataset *Dataset
}

func NewCache(loader *Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Load(ctx context.Context, path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.SourceUnavailableWrap(err, fmt.Sprintf("cannot stat dataset %q", path))
	}

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.dataset, nil
	}

	ds, err := c.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{modTime: info.ModTime(), dataset: ds}
	c.mu.Unlock()

	return ds, nil
}

func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}
