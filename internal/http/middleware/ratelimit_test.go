package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterReserve(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(t.Context(), 1, 2)
	rl.now = func() time.Time { return clock }

	ok, _ := rl.Reserve("1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.Reserve("1.1.1.1")
	assert.True(t, ok)

	ok, wait := rl.Reserve("1.1.1.1")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Reserve("2.2.2.2")
	assert.True(t, ok, "buckets are per ip")

	clock = clock.Add(time.Second)
	ok, _ = rl.Reserve("1.1.1.1")
	assert.True(t, ok)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(t.Context(), 1, 1)
	rl.now = func() time.Time { return clock }

	rl.Reserve("1.1.1.1")
	clock = clock.Add(limiterIdleTTL + time.Second)
	rl.Reserve("2.2.2.2")
	rl.evict()

	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "2.2.2.2")
}

func TestRateLimitMiddleware(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(t.Context(), 1, 1)
	rl.now = func() time.Time { return clock }
	handler := RateLimit(rl)(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("X-Real-Ip", "9.9.9.9")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Real-Ip", "8.8.8.8")
	assert.Equal(t, "8.8.8.8", clientIP(req))
}
