package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"stayhub/services/logger"
)

// ConnectRedis returns nil when no address is configured; the cache then
// stays disabled. A failed ping is logged and also disables it.
func ConnectRedis(cfg *Config, log logger.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, caching disabled")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUser,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Warn("Kết nối Redis thất bại, caching disabled: %v", err)
		_ = rdb.Close()
		return nil
	}
	log.Info("Kết nối Redis thành công: %s", res)
	return rdb
}
