package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/elan-ev/tobira-auth-callback-service/internal/domain/identity"
)

// DefaultDisplayNameFormat composes a display name from the given-name and
// surname attributes.
const DefaultDisplayNameFormat = "{given_name} {surname}"

// HeaderValues carries the raw identity attributes the HTTP layer read from
// the configured request headers. Empty strings mean the header was absent.
type HeaderValues struct {
	Username         string
	DisplayName      string
	Email            string
	HomeOrganization string
	GivenName        string
	Surname          string
	Affiliations     []string
}

// Resolver turns identity attributes or credentials into the outcome document
// consumed by Tobira.
type Resolver struct {
	roles             *RoleService
	login             LoginVerifier
	loginCache        Cache
	displayNameFormat string
	customRoles       []string
	logger            *slog.Logger
}

// ResolverOptions bundles dependencies for NewResolver.
type ResolverOptions struct {
	Roles      *RoleService
	Login      LoginVerifier
	LoginCache Cache
	// DisplayNameFormat is the template used to synthesize a display name,
	// with {given_name} and {surname} placeholders. Empty selects the default.
	DisplayNameFormat string
	// CustomRoles are extra role tokens added to every header-based result.
	// Entries containing '{' are templates with {username}, {email} and
	// {home_organization} placeholders.
	CustomRoles []string
	Logger      *slog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	roles := opts.Roles
	if roles == nil {
		roles = NewRoleService(RoleServiceOptions{Logger: opts.Logger})
	}
	format := opts.DisplayNameFormat
	if format == "" {
		format = DefaultDisplayNameFormat
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		roles:             roles,
		login:             opts.Login,
		loginCache:        opts.LoginCache,
		displayNameFormat: format,
		customRoles:       opts.CustomRoles,
		logger:            logger,
	}
}

// ResolveHeaders derives the outcome document from proxy-provided identity
// headers. A missing or blank username yields the no-user outcome.
func (r *Resolver) ResolveHeaders(ctx context.Context, h HeaderValues) identity.Outcome {
	if strings.TrimSpace(h.Username) == "" {
		return identity.NoUser()
	}

	displayName := h.DisplayName
	if displayName == "" && h.GivenName != "" && h.Surname != "" {
		displayName = r.formatDisplayName(h.GivenName, h.Surname)
	}

	roles := identity.NewRoleSet(r.roles.Assemble(ctx, RoleInputs{
		Username:     h.Username,
		Email:        h.Email,
		Affiliations: h.Affiliations,
	})...)
	roles.Add(r.renderCustomRoles(identity.Identity{
		Username:         h.Username,
		Email:            h.Email,
		HomeOrganization: h.HomeOrganization,
	})...)

	return identity.Outcome{
		Outcome:     identity.OutcomeUser,
		Username:    h.Username,
		DisplayName: displayName,
		Email:       h.Email,
		UserRole:    identity.UserRole(h.Username),
		Roles:       roles.Slice(),
	}
}

// ResolveCredentials derives the outcome document for a userid/password pair.
// The result is cached per credential pair so repeated logins within the cache
// TTL do not hit the verification service again. Verification failures of any
// kind resolve to the no-user outcome, never to an error.
func (r *Resolver) ResolveCredentials(ctx context.Context, userid, password string) identity.Outcome {
	if userid == "" || password == "" {
		return identity.NoUser()
	}

	key := loginCacheKey(userid, password)
	if r.loginCache != nil {
		data, ok, err := r.loginCache.Get(ctx, key)
		if err != nil {
			r.logger.WarnContext(ctx, "login cache read failed", "error", err)
		} else if ok {
			var cached identity.Outcome
			if unmarshalErr := json.Unmarshal(data, &cached); unmarshalErr == nil {
				return cached
			}
		}
	}

	outcome := r.verifyAndBuild(ctx, userid, password)

	if r.loginCache != nil {
		if data, err := json.Marshal(outcome); err == nil {
			if setErr := r.loginCache.Set(ctx, key, data); setErr != nil {
				r.logger.WarnContext(ctx, "login cache write failed", "error", setErr)
			}
		}
	}

	return outcome
}

func (r *Resolver) verifyAndBuild(ctx context.Context, userid, password string) identity.Outcome {
	if r.login == nil {
		return identity.NoUser()
	}

	user, ok, err := r.login.Verify(ctx, userid, password)
	if err != nil {
		r.logger.WarnContext(ctx, "login verification failed",
			"username", userid, "error", err)
		return identity.NoUser()
	}
	if !ok {
		return identity.NoUser()
	}

	// Affiliation headers and admin-mail checks are not available in this
	// path; the registry still applies by username and configured mail.
	roles := r.roles.Assemble(ctx, RoleInputs{Username: userid, Email: user.Email})

	return identity.Outcome{
		Outcome:     identity.OutcomeUser,
		Username:    userid,
		DisplayName: r.formatDisplayName(user.GivenName, user.Surname),
		Email:       user.Email,
		UserRole:    identity.UserRole(userid),
		Roles:       roles,
	}
}

func (r *Resolver) formatDisplayName(givenName, surname string) string {
	return strings.NewReplacer(
		"{given_name}", givenName,
		"{surname}", surname,
	).Replace(r.displayNameFormat)
}

func (r *Resolver) renderCustomRoles(id identity.Identity) []string {
	if len(r.customRoles) == 0 {
		return nil
	}
	replacer := strings.NewReplacer(
		"{username}", id.Username,
		"{email}", id.Email,
		"{home_organization}", id.HomeOrganization,
	)
	rendered := make([]string, 0, len(r.customRoles))
	for _, role := range r.customRoles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if strings.Contains(role, "{") {
			role = replacer.Replace(role)
		}
		rendered = append(rendered, role)
	}
	return rendered
}

// loginCacheKey hashes the credential pair so raw passwords never appear in
// cache keys, in memory dumps or on a shared Redis.
func loginCacheKey(userid, password string) string {
	sum := sha256.Sum256([]byte(userid + "\x00" + password))
	return "login:" + hex.EncodeToString(sum[:])
}
