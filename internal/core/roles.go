package core

import (
	"context"
	"log/slog"

	"github.com/elan-ev/tobira-auth-callback-service/internal/domain/identity"
)

// RoleService assembles the final deduplicated role set for one identity.
type RoleService struct {
	admins  *AdminRegistry
	courses CourseRoleLookup
	logger  *slog.Logger
}

// RoleServiceOptions bundles dependencies for NewRoleService.
type RoleServiceOptions struct {
	Admins  *AdminRegistry
	Courses CourseRoleLookup
	Logger  *slog.Logger
}

// NewRoleService creates a new RoleService.
func NewRoleService(opts RoleServiceOptions) *RoleService {
	admins := opts.Admins
	if admins == nil {
		admins = NewAdminRegistry(nil, nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RoleService{
		admins:  admins,
		courses: opts.Courses,
		logger:  logger,
	}
}

// RoleInputs carries the identity attributes role assembly depends on.
// Username is required; Email and Affiliations may be empty.
type RoleInputs struct {
	Username     string
	Email        string
	Affiliations []string
}

// Assemble produces the deduplicated role set for the given identity.
//
// The base roles are always present. Administrative privilege grants the
// admin role plus the three staff roles; otherwise a "staff" affiliation
// grants the staff roles alone. Course roles come from the external lookup;
// a lookup failure is logged and yields no course roles, it never propagates
// to the caller.
func (s *RoleService) Assemble(ctx context.Context, in RoleInputs) []string {
	roles := identity.NewRoleSet(
		identity.RoleAnonymous,
		identity.RoleUser,
		identity.UserRole(in.Username),
		identity.AAIUserRole(in.Username),
	)

	if s.admins.IsAdmin(in.Username, in.Email) {
		roles.Add(identity.RoleAdmin, identity.RoleUpload, identity.RoleStudio, identity.RoleEditor)
	} else if identity.HasStaffAffiliation(in.Affiliations) {
		roles.Add(identity.RoleUpload, identity.RoleStudio, identity.RoleEditor)
	}

	if s.courses != nil {
		courseRoles, err := s.courses.CourseRoles(ctx, in.Username)
		if err != nil {
			s.logger.WarnContext(ctx, "unable to get user course roles",
				"username", in.Username, "error", err)
		} else {
			roles.Add(courseRoles...)
		}
	}

	return roles.Slice()
}
