package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_FixedWindow(t *testing.T) {
	limiter := NewRateLimiter()
	for i := 0; i < 3; i++ {
		if !limiter.Allow("auth:1.2.3.4", 3, time.Minute) {
			t.Fatalf("expected request %d within the limit to pass", i+1)
		}
	}
	if limiter.Allow("auth:1.2.3.4", 3, time.Minute) {
		t.Fatal("expected request over the limit to be blocked")
	}
	if !limiter.Allow("auth:5.6.7.8", 3, time.Minute) {
		t.Fatal("expected a different key to have its own window")
	}
}

func TestRedisLimiter_AllowsWhenUnconfigured(t *testing.T) {
	if NewRedisLimiter(nil) != nil {
		t.Fatal("expected nil limiter for nil client")
	}
	var limiter *RedisLimiter
	if !limiter.Allow("auth:1.2.3.4", 5, time.Minute) {
		t.Fatal("expected nil limiter to allow requests")
	}
}
