// Package imagecache keeps decoded tileset images around so that maps
// referring to the same image sheet share one decoded copy.
//
// A Cache is an explicit value; callers who want cross-map reuse pass the
// same *Cache to every map they load. It is bounded and evicts the least
// recently used entry first. Eviction only drops the cache's own reference,
// images already handed out stay valid.
//
// Concurrent misses for the same path are coalesced: the first caller runs
// the decode function and the others wait for its result. The lock guarding
// the LRU structure is never held while decoding.
package imagecache

import (
	"image"
	"path/filepath"
	"sync"

	"github.com/golang/glog"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is the number of images kept by a cache created with a
// non-positive capacity.
const DefaultCapacity = 100

var ErrSourceNotFound = errors.New("image source not found")

// DecodeFunc loads and decodes the image at path.
type DecodeFunc func(path string) (image.Image, error)

type Cache struct {
	mu  sync.Mutex
	lru *simplelru.LRU[string, image.Image]

	inflight singleflight.Group
}

// New creates a cache holding at most capacity images.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	lru, err := simplelru.NewLRU[string, image.Image](capacity, func(key string, _ image.Image) {
		glog.V(2).Infof("imagecache: evicted %q", key)
	})
	if err != nil {
		// Only returned for non-positive sizes.
		panic(err)
	}
	return &Cache{lru: lru}
}

// Key returns the normalized form of path used as the cache key.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Get returns the image for path, calling decode only if it is not cached.
func (c *Cache) Get(path string, decode DecodeFunc) (image.Image, error) {
	key := Key(path)

	if img, ok := c.lookup(key); ok {
		glog.V(2).Infof("imagecache: hit %q", key)
		return img, nil
	}

	v, err, shared := c.inflight.Do(key, func() (interface{}, error) {
		// Another caller may have stored it between lookup and Do.
		if img, ok := c.lookup(key); ok {
			return img, nil
		}
		glog.V(2).Infof("imagecache: miss %q", key)
		img, err := decode(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.lru.Add(key, img)
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "loading image %q", path)
	}
	if shared {
		glog.V(2).Infof("imagecache: shared decode of %q", key)
	}
	return v.(image.Image), nil
}

func (c *Cache) lookup(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(key)
}

// Contains reports whether path is cached without touching its recency.
func (c *Cache) Contains(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Contains(Key(path))
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Purge drops every cached image.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
