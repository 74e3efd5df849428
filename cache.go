package datefmt

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes compiled patterns per (layout, locale). Concurrent misses
// for the same key share one compilation.
type Cache struct {
	compiler *Compiler
	mu       sync.RWMutex
	entries  map[cacheKey]*MatchingPattern
	group    singleflight.Group
}

type cacheKey struct {
	layout string
	locale string
}

func (k cacheKey) String() string {
	return k.locale + "\x00" + k.layout
}

// NewCache wraps compiler; a nil compiler uses the bundled tables.
func NewCache(compiler *Compiler) *Cache {
	if compiler == nil {
		compiler = defaultCompiler
	}
	return &Cache{
		compiler: compiler,
		entries:  make(map[cacheKey]*MatchingPattern),
	}
}

func (c *Cache) Compiler() *Compiler {
	return c.compiler
}

// Get returns the compiled pattern for layout and locale, compiling it on
// first use. Errors are not cached.
func (c *Cache) Get(layout, locale string) (*MatchingPattern, error) {
	key := cacheKey{layout: layout, locale: normalizeLocale(locale)}

	c.mu.RLock()
	mp, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return mp, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		compiled, err := c.compiler.Compile(layout, locale)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = compiled
		c.mu.Unlock()
		return compiled, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MatchingPattern), nil
}

// Invalidate drops every entry for locale, or the whole cache when locale
// is empty.
func (c *Cache) Invalidate(locale string) {
	locale = normalizeLocale(locale)

	c.mu.Lock()
	defer c.mu.Unlock()
	if locale == "" {
		c.entries = make(map[cacheKey]*MatchingPattern)
		return
	}
	for key := range c.entries {
		if key.locale == locale {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
