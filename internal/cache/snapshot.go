package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/domain"
)

const (
	snapshotKeyPrefix  = "analytics:snapshot"
	scanBatchSize      = 100
	defaultSnapshotTTL = time.Minute
)

// SnapshotCache stores computed analytics snapshots keyed by user, data
// version and filter. Bumping the version on every write makes stale entries
// unreachable, so invalidation is only housekeeping.
type SnapshotCache interface {
	Get(ctx context.Context, userID string, version int64, filter domain.FilterCriteria) (*domain.AnalyticsSnapshot, bool, error)
	Set(ctx context.Context, userID string, version int64, filter domain.FilterCriteria, snap *domain.AnalyticsSnapshot) error
	InvalidateUser(ctx context.Context, userID string) error
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSnapshotCache struct{}

func NewSnapshotCache(cfg config.CacheConfig) (SnapshotCache, error) {
	if !cfg.Enabled {
		return &noopSnapshotCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SnapshotTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}

	return &redisSnapshotCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSnapshotCache() SnapshotCache {
	return &noopSnapshotCache{}
}

func (c *redisSnapshotCache) Get(ctx context.Context, userID string, version int64, filter domain.FilterCriteria) (*domain.AnalyticsSnapshot, bool, error) {
	key := buildSnapshotKey(userID, version, filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var snap domain.AnalyticsSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, false, fmt.Errorf("decode snapshot cache: %w", err)
	}

	return &snap, true, nil
}

func (c *redisSnapshotCache) Set(ctx context.Context, userID string, version int64, filter domain.FilterCriteria, snap *domain.AnalyticsSnapshot) error {
	key := buildSnapshotKey(userID, version, filter)
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSnapshotCache) InvalidateUser(ctx context.Context, userID string) error {
	prefix := fmt.Sprintf("%s:%s:", snapshotKeyPrefix, userID)

	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, prefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopSnapshotCache) Get(ctx context.Context, userID string, version int64, filter domain.FilterCriteria) (*domain.AnalyticsSnapshot, bool, error) {
	return nil, false, nil
}

func (n *noopSnapshotCache) Set(ctx context.Context, userID string, version int64, filter domain.FilterCriteria, snap *domain.AnalyticsSnapshot) error {
	return nil
}

func (n *noopSnapshotCache) InvalidateUser(ctx context.Context, userID string) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildSnapshotKey(userID string, version int64, filter domain.FilterCriteria) string {
	var parts []string
	if filter.StartDate != "" {
		parts = append(parts, "start="+filter.StartDate)
	}
	if filter.EndDate != "" {
		parts = append(parts, "end="+filter.EndDate)
	}
	if filter.Region != "" {
		parts = append(parts, "region="+strings.ToLower(filter.Region))
	}
	if filter.Category != "" {
		parts = append(parts, "category="+strings.ToLower(filter.Category))
	}
	if filter.CustomerType != "" {
		parts = append(parts, "customer_type="+filter.CustomerType)
	}

	suffix := "default"
	if len(parts) > 0 {
		hash := sha1.Sum([]byte(strings.Join(parts, "|")))
		suffix = hex.EncodeToString(hash[:])
	}

	return fmt.Sprintf("%s:%s:%s:%s", snapshotKeyPrefix, userID, strconv.FormatInt(version, 10), suffix)
}
