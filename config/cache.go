package config

import "time"

// CacheConfig sizes the caches for course roles and login outcomes.
type CacheConfig struct {
	// TTL is how long cached lookups stay valid.
	TTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Size is the maximum number of cached entries per cache; beyond it the
	// least-recently-used entries are evicted. Ignored by the Redis backend.
	Size int `env:"CACHE_SIZE" envDefault:"1024"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
	if c.Size <= 0 {
		c.Size = 1024
	}
}

// RedisConfig selects an optional Redis backend for the caches so multiple
// instances behind a load balancer share lookup results. When Addr is empty
// the in-process cache is used.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`
}

// Enabled returns true when a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}
