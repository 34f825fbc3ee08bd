package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"bookshelf-api/pkg/appenv"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore maps client keys to token buckets. A janitor goroutine evicts
// entries idle longer than staleAfter so memory stays bounded.
type limiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	staleAfter time.Duration
}

func newLimiterStore(staleAfter time.Duration) *limiterStore {
	store := &limiterStore{
		entries:    make(map[string]*limiterEntry),
		staleAfter: staleAfter,
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			store.cleanup()
		}
	}()
	return store
}

func (s *limiterStore) getOrCreate(key string, r rate.Limit, burst int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	lim := rate.NewLimiter(r, burst)
	s.entries[key] = &limiterEntry{limiter: lim, lastSeen: time.Now()}
	return lim
}

func (s *limiterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.staleAfter)
	for k, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

func envRate() (rate.Limit, int) {
	rps := 5.0
	burst := 20
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			burst = i
		}
	}
	return rate.Limit(rps), burst
}

// limitingDisabled reports whether rate limiting is off, either explicitly
// via RATE_LIMIT_ENABLED=false or implicitly under APP_ENV=test.
func limitingDisabled() bool {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED"))); v == "0" || v == "false" || v == "no" {
		return true
	}
	return appenv.IsTest()
}

// RateLimit applies a per-IP token bucket. It runs before the auth gate, so
// the client IP is the only identity available for keying. Preflight
// requests and /health are exempt. Configure with RATE_LIMIT_RPS and
// RATE_LIMIT_BURST.
func RateLimit() gin.HandlerFunc {
	if limitingDisabled() {
		return func(c *gin.Context) { c.Next() }
	}
	r, burst := envRate()
	store := newLimiterStore(10 * time.Minute)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		key := "ip:" + c.ClientIP()
		if !store.getOrCreate(key, r, burst).Allow() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitAuth puts a stricter per-IP bucket in front of /register and
// /login so credential stuffing cannot hide inside the general limit.
func RateLimitAuth() gin.HandlerFunc {
	if limitingDisabled() {
		return func(c *gin.Context) { c.Next() }
	}
	store := newLimiterStore(10 * time.Minute)
	limit := rate.Limit(1.0)
	burst := 5

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if !store.getOrCreate("auth:"+c.ClientIP(), limit, burst).Allow() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
