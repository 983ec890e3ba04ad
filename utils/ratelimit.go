package utils

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// requestRecord stores a single request entry with its timestamp.
type requestRecord struct {
	timestamp time.Time
}

// RequestTracker counts requests within a sliding window and enforces
// a limit. A limit of 0 disables tracking (unlimited).
type RequestTracker struct {
	mu       sync.Mutex
	records  []requestRecord
	window   time.Duration
	limit    int
	timeFunc func() time.Time // for testing
}

// NewRequestTracker creates a tracker with the given window and limit.
func NewRequestTracker(window time.Duration, limit int) *RequestTracker {
	return &RequestTracker{
		records:  make([]requestRecord, 0),
		window:   window,
		limit:    limit,
		timeFunc: time.Now,
	}
}

// prune removes records outside the sliding window. Must be called
// with mu held.
func (t *RequestTracker) prune() {
	cutoff := t.timeFunc().Add(-t.window)
	i := 0
	for i < len(t.records) && t.records[i].timestamp.Before(cutoff) {
		i++
	}
	t.records = t.records[i:]
}

// Allow records one request if the limit permits it and reports
// whether the request may proceed.
func (t *RequestTracker) Allow() bool {
	if t.limit <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.prune()
	if len(t.records) >= t.limit {
		return false
	}
	t.records = append(t.records, requestRecord{timestamp: t.timeFunc()})
	return true
}

// CurrentUsage returns the number of requests inside the window.
func (t *RequestTracker) CurrentUsage() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prune()
	return len(t.records)
}

// RateLimitMiddleware rejects requests beyond limit per window with
// 503, shared across all callers of the route group it wraps.
func RateLimitMiddleware(window time.Duration, limit int) gin.HandlerFunc {
	tracker := NewRequestTracker(window, limit)

	return func(c *gin.Context) {
		if !tracker.Allow() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Too many requests. Please wait and retry.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
