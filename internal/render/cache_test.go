package render

import (
	"sync"
	"testing"
)

func TestCacheKey(t *testing.T) {
	key1 := cacheKey(DefaultOptions())
	key2 := cacheKey(DefaultOptions().WithWidth(100))
	key3 := cacheKey(DefaultOptions().WithStyle("light"))

	if key1 == key2 {
		t.Error("Different widths should produce different keys")
	}
	if key1 == key3 {
		t.Error("Different styles should produce different keys")
	}
	if cacheKey(DefaultOptions()) != key1 {
		t.Error("Same options should produce same key")
	}
}

func TestPoolGetAndPut(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions()

	renderer, err := globalPool.get(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renderer == nil {
		t.Fatal("expected non-nil renderer")
	}
	globalPool.put(opts, renderer)
	globalPool.put(opts, nil)

	if CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", CacheSize())
	}

	_, _ = globalPool.get(opts.WithWidth(40))
	if CacheSize() != 2 {
		t.Errorf("CacheSize() = %d, want 2", CacheSize())
	}
}

func TestPoolConcurrentRender(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithStyle("notty")
	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("```\ncode\n```", opts); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render failed: %v", err)
	}
}

func TestInvalidStylePath(t *testing.T) {
	ClearCache()
	defer ClearCache()

	if _, err := Markdown("x", DefaultOptions().WithStyle("/nonexistent/style.json")); err == nil {
		t.Error("expected error for missing style file")
	}
}
