package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elan-ev/tobira-auth-callback-service/internal/domain/identity"
)

// stubLoginVerifier is a test double for the login verification service.
type stubLoginVerifier struct {
	user  UserData
	ok    bool
	err   error
	calls int
}

func (s *stubLoginVerifier) Verify(_ context.Context, _, _ string) (UserData, bool, error) {
	s.calls++
	return s.user, s.ok, s.err
}

func TestResolveHeadersNoUser(t *testing.T) {
	resolver := NewResolver(ResolverOptions{})

	for _, username := range []string{"", "   "} {
		outcome := resolver.ResolveHeaders(context.Background(), HeaderValues{Username: username})
		assert.Equal(t, identity.NoUser(), outcome)
	}
}

func TestResolveHeadersUser(t *testing.T) {
	resolver := NewResolver(ResolverOptions{})

	outcome := resolver.ResolveHeaders(context.Background(), HeaderValues{
		Username:    "jane@edu.org",
		DisplayName: "Jane Doe",
		Email:       "jane@edu.org",
	})

	assert.Equal(t, identity.OutcomeUser, outcome.Outcome)
	assert.Equal(t, "jane@edu.org", outcome.Username)
	assert.Equal(t, "Jane Doe", outcome.DisplayName)
	assert.Equal(t, "ROLE_USER_JANE_EDU_ORG", outcome.UserRole)
	assert.Contains(t, outcome.Roles, "ROLE_AAI_USER_jane@edu.org")
}

func TestResolveHeadersDisplayNameSynthesis(t *testing.T) {
	tests := []struct {
		name     string
		values   HeaderValues
		format   string
		expected string
	}{
		{
			name:     "both parts present",
			values:   HeaderValues{Username: "jane", GivenName: "Jane", Surname: "Doe"},
			expected: "Jane Doe",
		},
		{
			name:     "custom format",
			values:   HeaderValues{Username: "jane", GivenName: "Jane", Surname: "Doe"},
			format:   "{surname}, {given_name}",
			expected: "Doe, Jane",
		},
		{
			name:     "surname missing",
			values:   HeaderValues{Username: "jane", GivenName: "Jane"},
			expected: "",
		},
		{
			name:     "explicit display name wins",
			values:   HeaderValues{Username: "jane", DisplayName: "J. Doe", GivenName: "Jane", Surname: "Doe"},
			expected: "J. Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(ResolverOptions{DisplayNameFormat: tt.format})
			outcome := resolver.ResolveHeaders(context.Background(), tt.values)
			assert.Equal(t, tt.expected, outcome.DisplayName)
		})
	}
}

func TestResolveHeadersCustomRoles(t *testing.T) {
	resolver := NewResolver(ResolverOptions{
		CustomRoles: []string{"ROLE_EXTRA", " ROLE_ORG_{home_organization} ", "ROLE_MAIL_{email}", ""},
	})

	outcome := resolver.ResolveHeaders(context.Background(), HeaderValues{
		Username:         "jane",
		Email:            "jane@edu.org",
		HomeOrganization: "edu.org",
	})

	assert.Contains(t, outcome.Roles, "ROLE_EXTRA")
	assert.Contains(t, outcome.Roles, "ROLE_ORG_edu.org")
	assert.Contains(t, outcome.Roles, "ROLE_MAIL_jane@edu.org")
	// 4 base roles plus the 3 custom entries, deduplicated.
	assert.Len(t, outcome.Roles, 7)
}

func TestResolveCredentialsSuccess(t *testing.T) {
	verifier := &stubLoginVerifier{
		user: UserData{Username: "admin", GivenName: "Admin", Surname: "Opencast", Email: "admin@localhost"},
		ok:   true,
	}
	resolver := NewResolver(ResolverOptions{Login: verifier})

	outcome := resolver.ResolveCredentials(context.Background(), "admin", "opencast")

	assert.Equal(t, identity.OutcomeUser, outcome.Outcome)
	assert.Equal(t, "admin", outcome.Username)
	assert.Equal(t, "Admin Opencast", outcome.DisplayName)
	assert.Equal(t, "admin@localhost", outcome.Email)
	assert.Equal(t, "ROLE_USER_ADMIN", outcome.UserRole)
	assert.Contains(t, outcome.Roles, identity.RoleUser)
}

func TestResolveCredentialsRejected(t *testing.T) {
	resolver := NewResolver(ResolverOptions{Login: &stubLoginVerifier{ok: false}})

	outcome := resolver.ResolveCredentials(context.Background(), "admin", "wrong")
	assert.Equal(t, identity.NoUser(), outcome)
}

func TestResolveCredentialsTransportFailure(t *testing.T) {
	resolver := NewResolver(ResolverOptions{
		Login: &stubLoginVerifier{err: errors.New("connection refused")},
	})

	// Upstream failures resolve to no-user, they never escape as errors.
	outcome := resolver.ResolveCredentials(context.Background(), "admin", "opencast")
	assert.Equal(t, identity.NoUser(), outcome)
}

func TestResolveCredentialsNoVerifierConfigured(t *testing.T) {
	resolver := NewResolver(ResolverOptions{})

	outcome := resolver.ResolveCredentials(context.Background(), "admin", "opencast")
	assert.Equal(t, identity.NoUser(), outcome)
}

func TestResolveCredentialsCached(t *testing.T) {
	verifier := &stubLoginVerifier{
		user: UserData{Username: "admin", GivenName: "Admin", Surname: "Opencast", Email: "admin@localhost"},
		ok:   true,
	}
	resolver := NewResolver(ResolverOptions{
		Login:      verifier,
		LoginCache: NewMemoryCache(16, time.Minute),
	})

	first := resolver.ResolveCredentials(context.Background(), "admin", "opencast")
	second := resolver.ResolveCredentials(context.Background(), "admin", "opencast")

	require.Equal(t, 1, verifier.calls, "second resolution must be served from cache")
	assert.Equal(t, first, second)

	// A different password is a different cache key.
	resolver.ResolveCredentials(context.Background(), "admin", "other")
	assert.Equal(t, 2, verifier.calls)
}

func TestLoginCacheKeyHidesPassword(t *testing.T) {
	key := loginCacheKey("admin", "opencast")
	assert.NotContains(t, key, "opencast")
	assert.NotEqual(t, key, loginCacheKey("admin", "other"))
	assert.NotEqual(t, loginCacheKey("a", "bc"), loginCacheKey("ab", "c"))
}
