// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about renders, asset resolution and cache
// operations.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetAssetHooks(&myAssetHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, containerKey)
//	// ... render ...
//	observability.Render().OnRenderComplete(ctx, containerKey, stats, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderStats summarises one render.
type RenderStats struct {
	Selected int
	Placed   int
	Dropped  int
	Duration time.Duration
}

// RenderHooks receives events from the render entrypoint.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, container string)
	OnRenderComplete(ctx context.Context, container string, stats RenderStats, err error)
}

// =============================================================================
// Asset Hooks
// =============================================================================

// AssetHooks receives events from image reference resolution.
type AssetHooks interface {
	// OnResolved records which strategy produced the bytes for ref.
	OnResolved(ctx context.Context, strategy, ref string, duration time.Duration)

	// OnFallback records a strategy failure that moved resolution on.
	OnFallback(ctx context.Context, strategy, ref string, err error)

	// OnPlaceholder records that every strategy failed for ref.
	OnPlaceholder(ctx context.Context, ref string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                        {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, RenderStats, error) {}

// NoopAssetHooks is a no-op implementation of AssetHooks.
type NoopAssetHooks struct{}

func (NoopAssetHooks) OnResolved(context.Context, string, string, time.Duration) {}
func (NoopAssetHooks) OnFallback(context.Context, string, string, error)         {}
func (NoopAssetHooks) OnPlaceholder(context.Context, string)                     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	assetHooks  AssetHooks  = NoopAssetHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetAssetHooks registers custom asset hooks.
func SetAssetHooks(h AssetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		assetHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Asset returns the registered asset hooks.
func Asset() AssetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return assetHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	assetHooks = NoopAssetHooks{}
	cacheHooks = NoopCacheHooks{}
}
