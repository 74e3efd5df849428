package datefmt

import (
	"sync"
	"testing"
)

func TestCacheSharesCompiledPatterns(t *testing.T) {
	cache := NewCache(nil)

	const workers = 32
	results := make([]*MatchingPattern, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mp, err := cache.Get("mm/dd/yyyy", "en")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = mp
		}(i)
	}
	wg.Wait()

	for i, mp := range results {
		if mp != results[0] {
			t.Fatalf("worker %d got a different pattern", i)
		}
	}
	if cache.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cache.Len())
	}
}

func TestCacheKeysAndInvalidate(t *testing.T) {
	cache := NewCache(nil)

	for _, key := range [][2]string{
		{"mm/dd/yyyy", "en"},
		{"mm/dd/yyyy", "de"},
		{"dd.mm.yyyy", "de"},
		{"dd.mm.yyyy", "de"},
	} {
		if _, err := cache.Get(key[0], key[1]); err != nil {
			t.Fatalf("Get(%q, %q): %v", key[0], key[1], err)
		}
	}
	if cache.Len() != 3 {
		t.Fatalf("Len = %d, want 3", cache.Len())
	}

	cache.Invalidate("de")
	if cache.Len() != 1 {
		t.Fatalf("Len after Invalidate(de) = %d, want 1", cache.Len())
	}
	cache.Invalidate("")
	if cache.Len() != 0 {
		t.Fatalf("Len after Invalidate() = %d, want 0", cache.Len())
	}
}

func TestCacheDoesNotKeepErrors(t *testing.T) {
	cache := NewCache(nil)
	if _, err := cache.Get("", "en"); err == nil {
		t.Fatalf("expected error for empty layout")
	}
	if cache.Len() != 0 {
		t.Fatalf("Len = %d, want 0", cache.Len())
	}
	if cache.Compiler() != defaultCompiler {
		t.Fatalf("nil compiler should fall back to the package compiler")
	}
}
