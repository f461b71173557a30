// Package loadcache keeps the most recent library load for a short time so
// consecutive reads do not refetch every sheet.
package loadcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/webtor-io/lazymap"

	"tvlog/internal/catalog"
)

const libraryKey = "library"

// Snapshot is one completed load.
type Snapshot struct {
	Library  *catalog.Library
	Warnings []catalog.Warning
	LoadedAt time.Time
}

// LoadFunc produces a snapshot. An error is returned only when nothing
// useful was loaded; it is cached for the error TTL.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

// FromLoader adapts a catalog loader. A load whose workbook was unreachable
// becomes an error wrapping catalog.ErrStoreUnavailable.
func FromLoader(loader *catalog.Loader) LoadFunc {
	return func(ctx context.Context) (*Snapshot, error) {
		lib, warnings := loader.Load(ctx)
		for _, w := range warnings {
			if errors.Is(w, catalog.ErrStoreUnavailable) {
				return nil, fmt.Errorf("load library: %w", w)
			}
		}
		return &Snapshot{Library: lib, Warnings: warnings, LoadedAt: time.Now()}, nil
	}
}

// Cache holds at most one snapshot.
type Cache struct {
	load     LoadFunc
	enabled  bool
	errorTTL time.Duration
	entries  *lazymap.LazyMap[*Snapshot]
}

// New returns a cache around load. A ttl of zero or less disables caching
// and every Get loads afresh.
func New(load LoadFunc, ttl, errorTTL time.Duration) *Cache {
	c := &Cache{load: load, enabled: ttl > 0, errorTTL: errorTTL}
	if c.enabled {
		c.entries = lazymap.New[*Snapshot](&lazymap.Config{
			Expire:      ttl,
			ErrorExpire: errorTTL,
		})
	}
	return c
}

// Get returns the cached snapshot or loads one. Concurrent callers share a
// single load.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if !c.enabled {
		return c.load(ctx)
	}
	snap, err := c.entries.Get(libraryKey, func() (*Snapshot, error) {
		return c.load(ctx)
	})
	if err != nil && c.errorTTL <= 0 {
		c.entries.Drop(libraryKey)
	}
	return snap, err
}

// Invalidate drops the cached snapshot. Call it after every successful write.
func (c *Cache) Invalidate() {
	if c.enabled {
		c.entries.Drop(libraryKey)
	}
}
