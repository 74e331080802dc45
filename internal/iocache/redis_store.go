package iocache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
	"github.com/redis/go-redis/v9"
)

// redisOpTimeout bounds every round trip made by the Redis store.
const redisOpTimeout = 5 * time.Second

// RedisCacheStore stores provider responses as Redis hashes.
// A sorted set keyed by timestamp indexes every entry for status and clearing.
type RedisCacheStore struct {
	client *redis.Client
	prefix string
}

var _ contract.CacheStore = &RedisCacheStore{} // Compile-time check

// NewRedisCacheStore connects to Redis using a redis:// or rediss:// URL.
func NewRedisCacheStore(namespace string, connStr string) (*RedisCacheStore, error) {
	if err := validateTableName(namespace); err != nil {
		return nil, err
	}
	opt, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opt.Addr, err)
	}

	return &RedisCacheStore{client: client, prefix: namespace + ":"}, nil
}

func (rs *RedisCacheStore) entryKey(key string) string { return rs.prefix + key }

func (rs *RedisCacheStore) indexKey() string { return rs.prefix + "__index" }

// Get retrieves a value by key. A missing entry returns redis.Nil.
func (rs *RedisCacheStore) Get(key string) ([]byte, int, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	vals, err := rs.client.HMGet(ctx, rs.entryKey(key), "value", "version", "ts").Result()
	if err != nil {
		return nil, 0, 0, err
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, 0, 0, redis.Nil
	}

	version, err := strconv.Atoi(fmt.Sprint(vals[1]))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache version for %s: %w", key, err)
	}
	ts, err := strconv.ParseInt(fmt.Sprint(vals[2]), 10, 64)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache timestamp for %s: %w", key, err)
	}
	return []byte(raw), version, ts, nil
}

// Set inserts or replaces a key/value pair and updates the index.
func (rs *RedisCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, rs.entryKey(key), "value", value, "version", version, "ts", timestamp)
		pipe.ZAdd(ctx, rs.indexKey(), redis.Z{Score: float64(timestamp), Member: key})
		return nil
	})
	return err
}

// Clear deletes every indexed entry along with the index itself.
func (rs *RedisCacheStore) Clear(ctx context.Context) error {
	keys, err := rs.client.ZRange(ctx, rs.indexKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read cache index: %w", err)
	}

	const chunk = 500
	for start := 0; start < len(keys); start += chunk {
		end := min(start+chunk, len(keys))
		batch := make([]string, 0, end-start)
		for _, k := range keys[start:end] {
			batch = append(batch, rs.entryKey(k))
		}
		if err := rs.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache entries: %w", err)
		}
	}
	return rs.client.Del(ctx, rs.indexKey()).Err()
}

// GetStatus returns status information about the cache store.
func (rs *RedisCacheStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.RedisBackend),
		Connected: rs.client != nil,
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	total, err := rs.client.ZCard(ctx, rs.indexKey()).Result()
	if err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	status.TotalEntries = int(total)
	if total == 0 {
		return status, nil
	}

	oldest, err := rs.client.ZRangeWithScores(ctx, rs.indexKey(), 0, 0).Result()
	if err != nil {
		return status, fmt.Errorf("failed to get oldest entry time: %w", err)
	}
	last, err := rs.client.ZRangeWithScores(ctx, rs.indexKey(), -1, -1).Result()
	if err != nil {
		return status, fmt.Errorf("failed to get last entry time: %w", err)
	}
	if len(oldest) == 0 || len(last) == 0 {
		return status, nil
	}
	status.OldestEntryTime = time.Unix(int64(oldest[0].Score), 0)
	status.LastEntryTime = time.Unix(int64(last[0].Score), 0)

	// Rough estimate, Redis has no cheap per-namespace size
	status.TableSizeBytes = total * 1000
	return status, nil
}

// Close closes the Redis client.
func (rs *RedisCacheStore) Close() error {
	if rs.client != nil {
		return rs.client.Close()
	}
	return nil
}
