package config

import (
	"strings"
	"time"
)

// UpstreamConfig points at the external user web services. Both URLs are
// templates with a {username} placeholder; leaving one empty disables the
// corresponding feature.
type UpstreamConfig struct {
	// UserCoursesURL is the course listing endpoint, e.g.
	// "https://lms.example.org/user/{username}/courses".
	UserCoursesURL string `env:"USER_COURSES_WS_URL"`

	// UserLoginURL is the login verification endpoint, e.g.
	// "https://idm.example.org/user/login/{username}".
	UserLoginURL string `env:"USER_LOGIN_WS_URL"`

	// Timeout bounds each outbound request.
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (c *UpstreamConfig) Sanitize() {
	c.UserCoursesURL = strings.TrimSpace(c.UserCoursesURL)
	c.UserLoginURL = strings.TrimSpace(c.UserLoginURL)
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}
