package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

// GetRedisLock returns the lock client, or nil when Redis is not configured.
// Callers that use it for serialization (backup restore) must tolerate nil
// and fall back to in-process locking.
func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis connects and sets the global Redis client + lock client.
// Unlike the store, Redis is optional here: without REDIS_ADDRESS the
// process runs with rdb == nil and every Redis-backed feature degrades.
func ConnectRedis(ctx context.Context) {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		log.Printf("REDIS_ADDRESS not set; running without redis")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0, // use default DB
		PoolSize: 100,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("failed to connect redis (addr=%s): %v; running without redis", redisAddr, err)
		return
	}
	rdb = client
	locker = redislock.New(client)
	log.Printf("connected to redis (addr=%s)", redisAddr)
}
