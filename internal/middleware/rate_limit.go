package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
)

// RateLimiter counts requests per client key within a fixed window. The
// in-memory variant is the default; the Redis variant shares the counters
// across replicas when REDIS_ADDR is configured.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type memoryRateLimiter struct {
	mu        sync.Mutex
	tokens    map[string]int
	lastReset time.Time
	rate      int
	window    time.Duration
}

func NewMemoryRateLimiter(rate int, window time.Duration) RateLimiter {
	return &memoryRateLimiter{
		tokens:    make(map[string]int),
		lastReset: time.Now(),
		rate:      rate,
		window:    window,
	}
}

func (rl *memoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastReset) > rl.window {
		rl.tokens = make(map[string]int)
		rl.lastReset = time.Now()
	}

	count := rl.tokens[key]
	if count >= rl.rate {
		return false, nil
	}
	rl.tokens[key] = count + 1
	return true, nil
}

type redisRateLimiter struct {
	rdb    *redis.Client
	rate   int
	window time.Duration
}

func NewRedisRateLimiter(addr string, rate int, window time.Duration) (RateLimiter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisRateLimiter{rdb: rdb, rate: rate, window: window}, nil
}

func (rl *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := fmt.Sprintf("ratelimit:%s", key)
	count, err := rl.rdb.Incr(ctx, bucket).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.rdb.Expire(ctx, bucket, rl.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(rl.rate), nil
}

// RateLimit limits requests per client IP. Limiter errors fail open so a
// Redis outage does not take the API down with it.
func RateLimit(log *logger.Logger, limiter RateLimiter) gin.HandlerFunc {
	limitLog := log.With("middleware", "RateLimit")
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			limitLog.Warn("rate limiter unavailable", "client_ip", clientIP, "error", err)
			c.Next()
			return
		}
		if !allowed {
			limitLog.Warn("rate limit exceeded",
				"client_ip", clientIP,
				"request_id", GetRequestID(c),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
