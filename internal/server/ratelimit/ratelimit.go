// Package ratelimit provides per-client, per-endpoint request limiting backed
// by golang.org/x/time/rate token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig is used when NewLimiter is given no configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

type bucket struct {
	limiter    *rate.Limiter
	limit      int
	lastAccess time.Time
}

// Limiter manages one token bucket per client, endpoint and method.
type Limiter struct {
	config      *Config
	mu          sync.Mutex
	buckets     map[string]*bucket
	cleanupStop chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = time.Hour
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.getBucket(clientID+":"+endpoint+":"+method, endpointConfig, now)

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	perSecond := float64(b.limiter.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(0, int(tokens)),
		ResetTime: now,
	}
	if missing := float64(b.limiter.Burst()) - tokens; missing > 0 {
		info.ResetTime = now.Add(secondsToDuration(missing / perSecond))
	}
	if !allowed {
		info.RetryAfter = secondsToDuration((1 - tokens) / perSecond)
	}
	return allowed, info
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// getBucket gets or creates the bucket for key.
func (l *Limiter) getBucket(key string, cfg *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(cfg.Limit)/cfg.Window.Seconds()), burst),
			limit:   cfg.Limit,
		}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets idle for longer than IdleTimeout.
func (l *Limiter) cleanupBuckets() {
	cutoff := l.now().Add(-l.config.IdleTimeout)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
