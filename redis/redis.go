package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// AllowOTPRequest enforces the per-contact OTP request limit: at most max
// requests per window. The first request in a window sets the expiry.
func AllowOTPRequest(contact string, max int, window time.Duration) (bool, error) {
	key := "otp_rate:" + contact
	count, err := Client.Incr(Ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		Client.Expire(Ctx, key, window)
	}
	return count <= int64(max), nil
}

// CacheGet returns the cached value for key, or "" when absent.
func CacheGet(key string) string {
	val, err := Client.Get(Ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// CacheSet stores value under key with a TTL.
func CacheSet(key, value string, ttl time.Duration) {
	Client.Set(Ctx, key, value, ttl)
}
