package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. Every variable carries the
// TOBIRA_AUTH_ prefix, applied at parse time. See individual domain
// config files for details on available environment variables:
//   - auth.go: identity headers, admin lists, custom roles
//   - http.go: HTTP server configuration
//   - upstream.go: external user web service endpoints
//   - cache.go: role cache sizing and optional Redis backend
//   - observability.go: logging and metrics
type AppConfig struct {
	// IsDev controls development mode behavior.
	// Set TOBIRA_AUTH_DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// External user web service configuration
	Upstream UpstreamConfig

	// Role cache configuration
	Cache CacheConfig
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.Upstream.Sanitize()
	c.Cache.Sanitize()
	c.Observability.Sanitize()
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the callback endpoints are enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsDummyBackendEnabled returns true if the dummy user web services are enabled.
func (c *AppConfig) IsDummyBackendEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeDummyBackend]
}
