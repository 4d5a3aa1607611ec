//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("LOOTGRID_REDIS_ADDR")
	if addr == "" {
		t.Skip("LOOTGRID_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	key := NewScopedKeyer(nil, "lootgrid-test:").AssetKey(t.Name())
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get() before Set = %v, %v; want miss", hit, err)
	}
	if err := c.Set(ctx, key, []byte("png"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "png" {
		t.Errorf("Get() = %q, %v, %v; want png, true, nil", data, hit, err)
	}
}
