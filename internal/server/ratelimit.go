package server

import (
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const (
	defaultLimitPerMinute = 30
	defaultBurst          = 10
	maxTrackedIPs         = 4096
)

type ipBucket struct {
	tokens float64
	last   time.Time
}

// limiter is a per-IP token bucket.
type limiter struct {
	mu            sync.Mutex
	ratePerSecond float64
	burst         float64
	buckets       map[string]ipBucket
}

func newLimiter(limitPerMinute, burst int) *limiter {
	if limitPerMinute <= 0 {
		limitPerMinute = defaultLimitPerMinute
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &limiter{
		ratePerSecond: float64(limitPerMinute) / 60.0,
		burst:         float64(burst),
		buckets:       make(map[string]ipBucket),
	}
}

func (l *limiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[ip]
	if !ok {
		if len(l.buckets) >= maxTrackedIPs {
			l.prune(now)
		}
		bucket = ipBucket{tokens: l.burst, last: now}
	}

	bucket.refill(now, l.ratePerSecond, l.burst)
	if bucket.tokens < 1 {
		l.buckets[ip] = bucket
		return false
	}

	bucket.tokens--
	l.buckets[ip] = bucket
	return true
}

// prune drops buckets that have refilled completely. Callers hold mu.
func (l *limiter) prune(now time.Time) {
	for ip, bucket := range l.buckets {
		bucket.refill(now, l.ratePerSecond, l.burst)
		if bucket.tokens >= l.burst {
			delete(l.buckets, ip)
		}
	}
}

func (b *ipBucket) refill(now time.Time, rate, burst float64) {
	elapsed := now.Sub(b.last).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens += elapsed * rate
	if b.tokens > burst {
		b.tokens = burst
	}
	b.last = now
}

// RateLimitMiddleware enforces per-IP connection limits using a token bucket.
func RateLimitMiddleware(limitPerMinute, burst int, logger *log.Logger) wish.Middleware {
	l := newLimiter(limitPerMinute, burst)
	return rateLimit(l, logger, time.Now)
}

func rateLimit(l *limiter, logger *log.Logger, now func() time.Time) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			at := now().UTC()
			ip := remoteIP(s)
			if !l.allow(ip, at) {
				logger.Warn("connection throttled", "event", "rate_limit_throttled", "remote_ip", ip)
				wish.Println(s, "rate limit exceeded")
				return
			}
			next(s)
		}
	}
}

func remoteIP(s ssh.Session) string {
	remote := s.RemoteAddr()
	if remote == nil {
		return "unknown"
	}

	host, _, err := net.SplitHostPort(remote.String())
	if err != nil {
		return remote.String()
	}

	if host == "" {
		return "unknown"
	}
	return host
}
