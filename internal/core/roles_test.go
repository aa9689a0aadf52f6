package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elan-ev/tobira-auth-callback-service/internal/domain/identity"
)

// stubCourseLookup is a test double for the external course lookup.
type stubCourseLookup struct {
	roles []string
	err   error
	calls int
}

func (s *stubCourseLookup) CourseRoles(_ context.Context, _ string) ([]string, error) {
	s.calls++
	return s.roles, s.err
}

func TestAssembleBaseRoles(t *testing.T) {
	svc := NewRoleService(RoleServiceOptions{})

	roles := svc.Assemble(context.Background(), RoleInputs{Username: "jane"})

	assert.ElementsMatch(t, []string{
		identity.RoleAnonymous,
		identity.RoleUser,
		"ROLE_USER_JANE",
		"ROLE_AAI_USER_jane",
	}, roles)
	assert.NotContains(t, roles, identity.RoleEditor)
}

func TestAssembleStaffAffiliation(t *testing.T) {
	svc := NewRoleService(RoleServiceOptions{})

	roles := svc.Assemble(context.Background(), RoleInputs{
		Username:     "jane@edu.org",
		Affiliations: []string{"member;staff"},
	})

	assert.Len(t, roles, 7)
	assert.Contains(t, roles, identity.RoleEditor)
	assert.Contains(t, roles, identity.RoleStudio)
	assert.Contains(t, roles, identity.RoleUpload)
	assert.Contains(t, roles, "ROLE_USER_JANE_EDU_ORG")
	assert.Contains(t, roles, "ROLE_AAI_USER_jane@edu.org")
	assert.NotContains(t, roles, identity.RoleAdmin)
}

func TestAssembleAdminByUsername(t *testing.T) {
	svc := NewRoleService(RoleServiceOptions{
		Admins: NewAdminRegistry([]string{"jane.admin@edu.org", " bob@edu.org"}, nil),
	})

	roles := svc.Assemble(context.Background(), RoleInputs{Username: "jane.admin@edu.org"})
	assert.Contains(t, roles, identity.RoleAdmin)
	assert.Contains(t, roles, identity.RoleEditor)
	assert.Contains(t, roles, identity.RoleStudio)
	assert.Contains(t, roles, identity.RoleUpload)

	roles = svc.Assemble(context.Background(), RoleInputs{Username: "jane.nonadmin@edu.org"})
	assert.NotContains(t, roles, identity.RoleAdmin)
}

func TestAssembleAdminByMail(t *testing.T) {
	svc := NewRoleService(RoleServiceOptions{
		Admins: NewAdminRegistry(nil, []string{"jane@edu.org"}),
	})

	roles := svc.Assemble(context.Background(), RoleInputs{
		Username: "jane",
		Email:    "jane@edu.org",
		// Admin privilege wins over the affiliation scan.
		Affiliations: []string{"member"},
	})
	assert.Contains(t, roles, identity.RoleAdmin)
}

func TestAssembleAdminExcludesAffiliationPath(t *testing.T) {
	svc := NewRoleService(RoleServiceOptions{
		Admins: NewAdminRegistry([]string{"jane"}, nil),
	})

	// Staff affiliation and admin privilege produce the same staff roles; the
	// admin branch must not double-add or skip them.
	roles := svc.Assemble(context.Background(), RoleInputs{
		Username:     "jane",
		Affiliations: []string{"staff"},
	})
	assert.Len(t, roles, 8)
	assert.Contains(t, roles, identity.RoleAdmin)
}

func TestAssembleCourseRoles(t *testing.T) {
	lookup := &stubCourseLookup{roles: []string{
		"ROLE_COURSE_1_Learner",
		"ROLE_COURSE_2_Learner",
		"ROLE_COURSE_3_Learner",
		"ROLE_COURSE_4_Learner",
	}}
	svc := NewRoleService(RoleServiceOptions{Courses: lookup})

	roles := svc.Assemble(context.Background(), RoleInputs{Username: "jane@edu.org"})

	require.Equal(t, 1, lookup.calls)
	assert.Len(t, roles, 8)
	for i := 1; i <= 4; i++ {
		assert.Contains(t, roles, identity.CourseRole(string(rune('0'+i))))
	}
}

func TestAssembleCourseLookupFailureIsolated(t *testing.T) {
	lookup := &stubCourseLookup{err: errors.New("connection refused")}
	svc := NewRoleService(RoleServiceOptions{Courses: lookup})

	roles := svc.Assemble(context.Background(), RoleInputs{Username: "jane"})

	// The failure is swallowed; only the base roles remain.
	assert.Len(t, roles, 4)
}
