// Package courses resolves course-membership roles from an external user
// web service, with bounded caching.
package courses

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/elan-ev/tobira-auth-callback-service/internal/core"
	"github.com/elan-ev/tobira-auth-callback-service/internal/domain/identity"
	apperrors "github.com/elan-ev/tobira-auth-callback-service/internal/errors"
	"github.com/elan-ev/tobira-auth-callback-service/internal/observability/metrics"
)

const cacheName = "courses"

// Config controls the course lookup client.
type Config struct {
	// URLTemplate is the course listing endpoint with a {username}
	// placeholder. Empty disables the lookup entirely.
	URLTemplate string
	// Timeout bounds each outbound request. Zero selects 10s.
	Timeout time.Duration
}

// Options bundles dependencies for NewClient.
type Options struct {
	Config  Config
	Cache   core.Cache
	Client  *http.Client
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Client implements core.CourseRoleLookup against an HTTP endpoint returning
// a JSON array of course identifiers. Results are cached per username and
// concurrent lookups for the same username are collapsed into one call.
type Client struct {
	urlTemplate string
	client      *http.Client
	cache       core.Cache
	group       singleflight.Group
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// NewClient creates a course lookup client.
func NewClient(opts Options) *Client {
	timeout := opts.Config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := opts.Client
	if hc == nil {
		// The default client follows redirects, which the endpoint relies on.
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		urlTemplate: strings.TrimSpace(opts.Config.URLTemplate),
		client:      hc,
		cache:       opts.Cache,
		logger:      logger,
		metrics:     opts.Metrics,
	}
}

// CourseRoles returns the learner role tokens for the user's courses.
// An unconfigured endpoint is a valid disabled state and yields (nil, nil).
// A non-success response yields an empty list; only transport failures
// surface as errors, typed for the caller to isolate.
func (c *Client) CourseRoles(ctx context.Context, username string) ([]string, error) {
	if c.urlTemplate == "" {
		return nil, nil
	}

	key := cacheName + ":" + username
	if roles, ok := c.cachedRoles(ctx, key); ok {
		c.metrics.RecordCacheLookup(cacheName, metrics.ResultHit)
		return roles, nil
	}
	c.metrics.RecordCacheLookup(cacheName, metrics.ResultMiss)

	value, err, _ := c.group.Do(key, func() (any, error) {
		roles, fetchErr := c.fetch(ctx, username)
		if fetchErr != nil {
			return nil, fetchErr
		}
		c.storeRoles(ctx, key, roles)
		return roles, nil
	})
	if err != nil {
		return nil, err
	}
	roles, ok := value.([]string)
	if !ok {
		return nil, apperrors.Internal("unexpected course lookup result type")
	}
	return roles, nil
}

func (c *Client) cachedRoles(ctx context.Context, key string) ([]string, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "course role cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var roles []string
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, false
	}
	return roles, true
}

func (c *Client) storeRoles(ctx context.Context, key string, roles []string) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(roles)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data); err != nil {
		c.logger.WarnContext(ctx, "course role cache write failed", "error", err)
	}
}

func (c *Client) fetch(ctx context.Context, username string) ([]string, error) {
	reqURL := strings.ReplaceAll(c.urlTemplate, "{username}", url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "create course request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(cacheName, metrics.OutcomeError)
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream,
			"query user courses for %s", username)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordUpstream(cacheName, metrics.OutcomeHTTPError)
		c.logger.DebugContext(ctx, "unable to query user courses",
			"username", username, "status", resp.StatusCode)
		return []string{}, nil
	}

	roles, err := decodeCourseRoles(resp.Body)
	if err != nil {
		c.metrics.RecordUpstream(cacheName, metrics.OutcomeError)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode course response")
	}
	c.metrics.RecordUpstream(cacheName, metrics.OutcomeSuccess)
	return roles, nil
}

// decodeCourseRoles maps a JSON array of opaque course identifiers (numbers
// or strings) to learner role tokens, preserving response order.
func decodeCourseRoles(body io.Reader) ([]string, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var ids []any
	if err := dec.Decode(&ids); err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(ids))
	for _, id := range ids {
		switch v := id.(type) {
		case json.Number:
			roles = append(roles, identity.CourseRole(v.String()))
		case string:
			roles = append(roles, identity.CourseRole(v))
		default:
			roles = append(roles, identity.CourseRole(fmt.Sprint(v)))
		}
	}
	return roles, nil
}
