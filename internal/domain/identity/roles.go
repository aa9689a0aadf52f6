package identity

import (
	"sort"
	"strings"
)

// Role tokens granted in the downstream authorization model.
const (
	RoleAnonymous = "ROLE_ANONYMOUS"
	RoleUser      = "ROLE_USER"
	RoleAdmin     = "ROLE_TOBIRA_ADMIN"
	RoleUpload    = "ROLE_TOBIRA_UPLOAD"
	RoleStudio    = "ROLE_TOBIRA_STUDIO"
	RoleEditor    = "ROLE_TOBIRA_EDITOR"
)

// UserRole derives the per-user role token from a username: whitespace is
// trimmed, every character outside [A-Za-z0-9] becomes '_', the result is
// upper-cased and prefixed with "ROLE_USER_". A blank username yields "".
func UserRole(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return ""
	}
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, username)
	return "ROLE_USER_" + strings.ToUpper(normalized)
}

// AAIUserRole derives the federation role token. Unlike UserRole the username
// keeps its original casing and characters; only surrounding whitespace is
// trimmed. A blank username yields "".
func AAIUserRole(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return ""
	}
	return "ROLE_AAI_USER_" + username
}

// CourseRole derives the learner role token for a single course identifier.
func CourseRole(courseID string) string {
	return "ROLE_COURSE_" + courseID + "_Learner"
}

// HasStaffAffiliation reports whether any semicolon-delimited segment of any
// affiliation header value contains the tag "staff" after trimming.
func HasStaffAffiliation(values []string) bool {
	for _, value := range values {
		for _, segment := range strings.Split(value, ";") {
			if strings.Contains(strings.TrimSpace(segment), "staff") {
				return true
			}
		}
	}
	return false
}

// RoleSet accumulates role tokens with deduplication. The zero value is not
// usable; construct with NewRoleSet.
type RoleSet struct {
	roles map[string]struct{}
}

// NewRoleSet returns a RoleSet seeded with the given roles. Empty tokens are
// ignored so formatter results for blank input can be added unconditionally.
func NewRoleSet(roles ...string) *RoleSet {
	s := &RoleSet{roles: make(map[string]struct{}, len(roles))}
	s.Add(roles...)
	return s
}

// Add inserts the given roles, skipping empty tokens and duplicates.
func (s *RoleSet) Add(roles ...string) {
	for _, role := range roles {
		if role == "" {
			continue
		}
		s.roles[role] = struct{}{}
	}
}

// Len returns the number of distinct roles in the set.
func (s *RoleSet) Len() int { return len(s.roles) }

// Contains reports whether the set holds the given role.
func (s *RoleSet) Contains(role string) bool {
	_, ok := s.roles[role]
	return ok
}

// Slice returns the roles as a sorted slice. Callers treat the result as an
// unordered set; sorting just keeps JSON output deterministic.
func (s *RoleSet) Slice() []string {
	out := make([]string, 0, len(s.roles))
	for role := range s.roles {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}
