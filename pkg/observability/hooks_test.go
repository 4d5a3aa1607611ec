package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "small_safe")
	r.OnRenderComplete(ctx, "small_safe", RenderStats{Selected: 3, Placed: 2, Dropped: 1, Duration: time.Millisecond}, nil)

	a := NoopAssetHooks{}
	a.OnResolved(ctx, "remote", "https://example.com/a.png", time.Millisecond)
	a.OnFallback(ctx, "remote", "https://example.com/a.png", errors.New("timeout"))
	a.OnPlaceholder(ctx, "https://example.com/a.png")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "asset")
	c.OnCacheMiss(ctx, "asset")
	c.OnCacheSet(ctx, "asset", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Asset().(NoopAssetHooks); !ok {
		t.Error("Asset() should return NoopAssetHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customAsset := &testAssetHooks{}
	SetAssetHooks(customAsset)
	if Asset() != customAsset {
		t.Error("SetAssetHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)

	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}
}

type testRenderHooks struct{ NoopRenderHooks }
type testAssetHooks struct{ NoopAssetHooks }
type testCacheHooks struct{ NoopCacheHooks }
