package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
)

func TestMemoryRateLimiter_AllowsUpToRate(t *testing.T) {
	rl := NewMemoryRateLimiter(3, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, err := rl.Allow(ctx, "10.0.0.1")
		if err != nil || !allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i+1, allowed, err)
		}
	}
	allowed, err := rl.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("fourth request should be rejected")
	}
}

func TestMemoryRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewMemoryRateLimiter(1, time.Minute)
	ctx := context.Background()
	if allowed, _ := rl.Allow(ctx, "10.0.0.1"); !allowed {
		t.Fatalf("first key rejected")
	}
	if allowed, _ := rl.Allow(ctx, "10.0.0.2"); !allowed {
		t.Fatalf("second key throttled by first key's counter")
	}
}

func TestMemoryRateLimiter_WindowResets(t *testing.T) {
	rl := NewMemoryRateLimiter(1, 10*time.Millisecond)
	ctx := context.Background()
	if allowed, _ := rl.Allow(ctx, "k"); !allowed {
		t.Fatalf("first request rejected")
	}
	if allowed, _ := rl.Allow(ctx, "k"); allowed {
		t.Fatalf("second request within window allowed")
	}
	time.Sleep(20 * time.Millisecond)
	if allowed, _ := rl.Allow(ctx, "k"); !allowed {
		t.Fatalf("request after window reset rejected")
	}
}

type erroringLimiter struct{}

func (erroringLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, errors.New("backend down")
}

type denyingLimiter struct{}

func (denyingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func newRateLimitTestRouter(t *testing.T, limiter RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	router := gin.New()
	router.Use(RateLimit(log, limiter))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	router := newRateLimitTestRouter(t, erroringLimiter{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("limiter error must fail open, got %d", rec.Code)
	}
}

func TestRateLimit_RejectsWhenDenied(t *testing.T) {
	router := newRateLimitTestRouter(t, denyingLimiter{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
