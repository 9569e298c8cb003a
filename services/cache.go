package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"stayhub/services/logger"
)

// Cache wraps a redis client. A nil client turns every call into a miss,
// so the app runs without Redis.
type Cache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewCache(rdb *redis.Client, log logger.Logger) *Cache {
	if log == nil {
		log = logger.Default()
	}
	return &Cache{rdb: rdb, logger: log}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get lấy data từ Redis, trả về false nếu không có
func (c *Cache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	cached, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cached, target); err != nil {
		return false, err
	}
	return true, nil
}

// Set lưu dữ liệu vào Redis
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}

// DeleteByPrefix xóa mọi key bắt đầu bằng prefix
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if !c.Enabled() {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// invalidate drops a key family and only logs failures.
func (c *Cache) invalidate(ctx context.Context, prefix string) {
	if err := c.DeleteByPrefix(ctx, prefix); err != nil {
		c.logger.Warn("cache invalidation for %s failed: %v", prefix, err)
	}
}

// KeyFor builds a stable key from a prefix and any JSON-encodable value.
func KeyFor(prefix string, v interface{}) string {
	raw, _ := json.Marshal(v)
	sum := sha1.Sum(raw)
	return prefix + hex.EncodeToString(sum[:8])
}
