package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/domain"
)

func TestBuildSnapshotKeyDefault(t *testing.T) {
	t.Parallel()

	key := buildSnapshotKey("user-1", 7, domain.FilterCriteria{})
	if key != "analytics:snapshot:user-1:7:default" {
		t.Fatalf("key = %q", key)
	}
}

func TestBuildSnapshotKeyFiltered(t *testing.T) {
	t.Parallel()

	filter := domain.FilterCriteria{Region: "Москва", Category: "Техника"}

	key := buildSnapshotKey("user-1", 7, filter)
	if !strings.HasPrefix(key, "analytics:snapshot:user-1:7:") {
		t.Fatalf("key = %q", key)
	}
	if strings.HasSuffix(key, ":default") {
		t.Fatalf("filtered key must not use the default suffix: %q", key)
	}

	// Same filter yields the same key; filter casing does not matter.
	if again := buildSnapshotKey("user-1", 7, domain.FilterCriteria{Region: "МОСКВА", Category: "техника"}); again != key {
		t.Fatalf("keys differ for equivalent filters: %q vs %q", key, again)
	}

	if other := buildSnapshotKey("user-1", 7, domain.FilterCriteria{Region: "Казань"}); other == key {
		t.Fatalf("distinct filters share key %q", key)
	}
}

func TestBuildSnapshotKeyVersionSeparatesEntries(t *testing.T) {
	t.Parallel()

	before := buildSnapshotKey("user-1", 1, domain.FilterCriteria{})
	after := buildSnapshotKey("user-1", 2, domain.FilterCriteria{})
	if before == after {
		t.Fatalf("version bump did not change key: %q", before)
	}
}

func TestNoopSnapshotCache(t *testing.T) {
	t.Parallel()

	c, err := NewSnapshotCache(config.CacheConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewSnapshotCache: %v", err)
	}

	ctx := context.Background()
	if err := c.Set(ctx, "user-1", 1, domain.FilterCriteria{}, &domain.AnalyticsSnapshot{TotalSales: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	snap, hit, err := c.Get(ctx, "user-1", 1, domain.FilterCriteria{})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit || snap != nil {
		t.Fatalf("noop cache returned a hit: %+v", snap)
	}

	if err := c.InvalidateUser(ctx, "user-1"); err != nil {
		t.Fatalf("InvalidateUser: %v", err)
	}
}

func TestBuildRedisOptions(t *testing.T) {
	t.Parallel()

	opts, err := buildRedisOptions(config.CacheConfig{Enabled: true})
	if err != nil {
		t.Fatalf("buildRedisOptions: %v", err)
	}
	if opts.Addr != "127.0.0.1:6379" {
		t.Fatalf("default addr = %q", opts.Addr)
	}

	opts, err = buildRedisOptions(config.CacheConfig{Enabled: true, RedisURL: "redis://:secret@cache.internal:6380/2"})
	if err != nil {
		t.Fatalf("buildRedisOptions with url: %v", err)
	}
	if opts.Addr != "cache.internal:6380" || opts.Password != "secret" || opts.DB != 2 {
		t.Fatalf("url options = %+v", opts)
	}

	if _, err := buildRedisOptions(config.CacheConfig{Enabled: true, RedisURL: "://bad"}); err == nil {
		t.Fatalf("expected error for malformed url")
	}
}
