// Package userlogin verifies credentials against an external login web
// service.
package userlogin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/elan-ev/tobira-auth-callback-service/internal/core"
	apperrors "github.com/elan-ev/tobira-auth-callback-service/internal/errors"
	"github.com/elan-ev/tobira-auth-callback-service/internal/observability/metrics"
)

const targetName = "login"

// Config controls the login verification client.
type Config struct {
	// URLTemplate is the verification endpoint with a {username}
	// placeholder. Empty disables credential logins entirely.
	URLTemplate string
	// Timeout bounds each outbound request. Zero selects 10s.
	Timeout time.Duration
}

// Options bundles dependencies for NewClient.
type Options struct {
	Config  Config
	Client  *http.Client
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Client implements core.LoginVerifier by POSTing the password as a form
// field to the templated endpoint.
type Client struct {
	urlTemplate string
	client      *http.Client
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// NewClient creates a login verification client.
func NewClient(opts Options) *Client {
	timeout := opts.Config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := opts.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		urlTemplate: strings.TrimSpace(opts.Config.URLTemplate),
		client:      hc,
		logger:      logger,
		metrics:     opts.Metrics,
	}
}

// Verify checks the credentials against the external service. Rejected
// credentials, responses missing the required username/email fields, and an
// unconfigured endpoint all report ok=false with a nil error; only transport
// failures return an error.
func (c *Client) Verify(ctx context.Context, username, password string) (core.UserData, bool, error) {
	if c.urlTemplate == "" {
		return core.UserData{}, false, nil
	}

	reqURL := strings.ReplaceAll(c.urlTemplate, "{username}", url.PathEscape(username))
	form := url.Values{"password": {password}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return core.UserData{}, false, apperrors.Wrap(err, apperrors.ErrCodeUpstream,
			"create login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(targetName, metrics.OutcomeError)
		return core.UserData{}, false, apperrors.Wrapf(err, apperrors.ErrCodeUpstream,
			"verify login for %s", username)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordUpstream(targetName, metrics.OutcomeHTTPError)
		c.logger.DebugContext(ctx, "login verification rejected",
			"username", username, "status", resp.StatusCode)
		return core.UserData{}, false, nil
	}

	var user core.UserData
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		c.metrics.RecordUpstream(targetName, metrics.OutcomeError)
		return core.UserData{}, false, apperrors.Wrap(err, apperrors.ErrCodeUpstream,
			"decode login response")
	}

	if user.Username == "" || user.Email == "" {
		c.metrics.RecordUpstream(targetName, metrics.OutcomeHTTPError)
		c.logger.DebugContext(ctx, "login response missing required fields",
			"username", username)
		return core.UserData{}, false, nil
	}

	c.metrics.RecordUpstream(targetName, metrics.OutcomeSuccess)
	return user, true, nil
}
