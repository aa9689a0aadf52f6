package config

import "strings"

// HeaderConfig names the request headers carrying identity attributes, as set
// by the upstream Shibboleth/SAML reverse proxy. Defaults match the common
// SWITCHaai attribute names.
type HeaderConfig struct {
	Username         string `env:"USERNAME_HEADER"          envDefault:"uniqueID"`
	DisplayName      string `env:"DISPLAY_NAME_HEADER"      envDefault:"displayName"`
	Email            string `env:"EMAIL_HEADER"             envDefault:"mail"`
	Affiliation      string `env:"AFFILIATION_HEADER"       envDefault:"affiliation"`
	GivenName        string `env:"GIVEN_NAME_HEADER"        envDefault:"givenName"`
	Surname          string `env:"SURNAME_HEADER"           envDefault:"surname"`
	HomeOrganization string `env:"HOME_ORGANIZATION_HEADER" envDefault:"homeOrganization"`
}

// AuthConfig groups all identity-derivation configuration.
type AuthConfig struct {
	// Headers configures where identity attributes are read from.
	Headers HeaderConfig

	// DisplayNameFormat composes a display name from the given-name and
	// surname attributes when no display name header is present.
	DisplayNameFormat string `env:"DISPLAY_NAME_FORMAT" envDefault:"{given_name} {surname}"`

	// CustomRoles are extra role tokens added to every header-based result.
	// Entries containing '{' are templates with {username}, {email} and
	// {home_organization} placeholders.
	CustomRoles []string `env:"CUSTOM_ROLES" envSeparator:","`

	// AdminUsers lists usernames with administrative privilege.
	AdminUsers []string `env:"ADMIN_USERS" envSeparator:","`

	// AdminMails lists mail addresses with administrative privilege.
	AdminMails []string `env:"ADMIN_MAILS" envSeparator:","`
}

// Sanitize trims list entries and drops blanks so values like
// "jane.admin@edu.org, bob@edu.org" behave as expected.
func (c *AuthConfig) Sanitize() {
	c.CustomRoles = trimAll(c.CustomRoles)
	c.AdminUsers = trimAll(c.AdminUsers)
	c.AdminMails = trimAll(c.AdminMails)
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
