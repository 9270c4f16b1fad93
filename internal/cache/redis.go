package cache

import (
	"context"
	"log"

	"github.com/campuseats/gateway/internal/config"
	"github.com/go-redis/redis/v8"
)

// InitRedis connects to Redis. Sessions and the compensation outbox both
// live here, so unlike a best-effort cache the connection is mandatory.
func InitRedis(cfg config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}

	log.Println("Redis connection established")
	return rdb
}
