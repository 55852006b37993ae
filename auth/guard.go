package auth

import (
	"github.com/jrsteele09/training-portal/sessions"
	"github.com/jrsteele09/training-portal/users"
)

// Decision is the outcome of a route guard check.
type Decision int

const (
	Render Decision = iota
	PromptLogin
	Deny
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case PromptLogin:
		return "prompt_login"
	case Deny:
		return "deny"
	}
	return "unknown"
}

// Requirement is the role restriction of a view. The zero value places no
// restriction; a requirement built from zero roles admits nobody.
type Requirement struct {
	roles      []users.RoleType
	restricted bool
}

// AnyRole admits every authenticated session.
var AnyRole = Requirement{}

// RequireRoles admits sessions whose role is one of roles.
func RequireRoles(roles ...users.RoleType) Requirement {
	return Requirement{roles: append([]users.RoleType(nil), roles...), restricted: true}
}

func (r Requirement) Restricted() bool {
	return r.restricted
}

// Roles returns the admitted roles, or nil when unrestricted.
func (r Requirement) Roles() []users.RoleType {
	return append([]users.RoleType(nil), r.roles...)
}

func (r Requirement) admits(role users.RoleType) bool {
	if !r.restricted {
		return true
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Authorize decides how a protected view is served for session. It has no
// side effects and must be evaluated on every navigation.
func Authorize(session sessions.Session, required Requirement) Decision {
	role, ok := session.Role()
	if !ok {
		return PromptLogin
	}
	if required.admits(role) {
		return Render
	}
	return Deny
}

// Allowed is the visibility form of Authorize, used for menu entries.
func Allowed(session sessions.Session, required Requirement) bool {
	return Authorize(session, required) == Render
}
