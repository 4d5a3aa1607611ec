package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %v, %v, %v; want nil, false, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	png := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	if err := c.Set(ctx, "asset:a", png, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, hit, err := c.Get(ctx, "asset:a")
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v; want hit", hit, err)
	}
	if !bytes.Equal(got, png) {
		t.Errorf("Get() = %v, want %v", got, png)
	}

	if _, hit, _ := c.Get(ctx, "asset:b"); hit {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Delete(ctx, "asset:a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "asset:a"); hit {
		t.Error("deleted key still present")
	}
	if err := c.Delete(ctx, "asset:a"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}

	time.Sleep(20 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheNoTTL(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry without ttl should never expire")
	}
}

func TestFileCacheTruncatedEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte{1, 2}, 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("truncated entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), time.Hour)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	a := k.AssetKey("https://example.com/a.png")
	if a != "asset:"+Hash([]byte("https://example.com/a.png")) {
		t.Errorf("AssetKey unexpected: %s", a)
	}
	if a == k.AssetKey("https://example.com/b.png") {
		t.Error("different refs should produce different keys")
	}

	scoped := NewScopedKeyer(nil, "lootgrid:")
	if got := scoped.AssetKey("x"); got != "lootgrid:"+k.AssetKey("x") {
		t.Errorf("ScopedKeyer AssetKey = %s", got)
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	transient := errors.New("connection refused")

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return &retryableError{err: transient}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("retry: %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("returns last error unwrapped", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 2, time.Millisecond, func() error {
			calls++
			return &retryableError{err: transient}
		})
		if err != transient {
			t.Errorf("err = %v, want %v", err, transient)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		permanent := errors.New("auth failed")
		err := retry(ctx, 5, time.Millisecond, func() error {
			calls++
			return permanent
		})
		if err != permanent || calls != 1 {
			t.Errorf("err = %v after %d calls, want %v after 1", err, calls, permanent)
		}
	})

	t.Run("zero attempts runs once", func(t *testing.T) {
		calls := 0
		_ = retry(ctx, 0, time.Millisecond, func() error {
			calls++
			return nil
		})
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := retry(cctx, 3, time.Hour, func() error {
			return &retryableError{err: transient}
		})
		if err != context.Canceled {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestFileCacheConcurrentSetSameKey(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	values := make([][]byte, 8)
	for i := range values {
		values[i] = bytes.Repeat([]byte{byte('a' + i)}, 64*1024)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(values))
	for _, v := range values {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Set(ctx, "same", v, time.Hour)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	got, ok, err := c.Get(ctx, "same")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !slices.ContainsFunc(values, func(v []byte) bool { return bytes.Equal(v, got) }) {
		t.Error("stored value is a mix of concurrent writes")
	}

	leftovers, _ := filepath.Glob(filepath.Join(c.Dir(), "*", "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}
