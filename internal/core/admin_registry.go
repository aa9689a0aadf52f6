package core

import "strings"

// AdminRegistry holds the administrator usernames and mail addresses from
// configuration. It is built once at startup, is immutable afterwards and
// therefore safe for concurrent reads.
type AdminRegistry struct {
	usernames map[string]struct{}
	mails     map[string]struct{}
}

// NewAdminRegistry builds a registry from the configured username and mail
// lists. Entries are trimmed; blank entries are dropped.
func NewAdminRegistry(usernames, mails []string) *AdminRegistry {
	return &AdminRegistry{
		usernames: toSet(usernames),
		mails:     toSet(mails),
	}
}

// IsAdmin reports whether the user has administrative privilege: the username
// is a configured admin, or the mail address is non-empty and configured as an
// admin mail.
func (r *AdminRegistry) IsAdmin(username, mail string) bool {
	if r == nil {
		return false
	}
	if _, ok := r.usernames[strings.TrimSpace(username)]; ok {
		return true
	}
	mail = strings.TrimSpace(mail)
	if mail == "" {
		return false
	}
	_, ok := r.mails[mail]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
