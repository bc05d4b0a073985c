// Defines rate limit tiers and routing rules.

package ratelimit

import (
	"net/http"
	"time"
)

// Tier defines a rate limit tier. All tiers key on client IP; the server
// has no notion of user identity.
type Tier struct {
	Name    string
	Limiter *Limiter
}

// Config holds the rate limiters for the two traffic classes.
type Config struct {
	Write Tier // mutations: notebook/page/settings writes, imports
	Read  Tier // everything else under /api
}

// NewConfig creates a Config with the given per-minute budgets. Burst
// capacity is a sixth of the budget so short spikes pass while sustained
// abuse does not.
func NewConfig(writePerMinute, readPerMinute int) *Config {
	return &Config{
		Write: Tier{
			Name:    "write",
			Limiter: NewLimiter(writePerMinute, time.Minute, max(writePerMinute/6, 1)),
		},
		Read: Tier{
			Name:    "read",
			Limiter: NewLimiter(readPerMinute, time.Minute, max(readPerMinute/6, 1)),
		},
	}
}

// DefaultConfig creates a Config with the default limits:
//   - Write: 120 req/min (the canvas autosaves strokes on a timer, so
//     write traffic from a single active client is steady but modest)
//   - Read: 6,000 req/min
func DefaultConfig() *Config {
	return NewConfig(120, 6000)
}

// Match returns the tier for a request, or nil for requests that should
// not be rate limited.
func (c *Config) Match(method, path string) *Tier {
	// Health checks come from orchestrators on a tight period; limiting
	// them only causes flapping.
	if path == "/api/health" {
		return nil
	}

	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return &c.Write
	case http.MethodGet:
		return &c.Read
	}
	return nil
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	c.Write.Limiter.Close()
	c.Read.Limiter.Close()
}
