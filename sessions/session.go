package sessions

import (
	"github.com/jrsteele09/training-portal/users"
)

// Session is the login state of one client slot. The zero value is Anonymous.
// The authenticated flag is derived from the identity, so the two can never
// disagree.
type Session struct {
	user *users.User
}

// Anonymous returns the logged-out session.
func Anonymous() Session {
	return Session{}
}

// Authenticated returns a session holding user. A nil user yields Anonymous.
func Authenticated(user *users.User) Session {
	return Session{user: user}
}

// User returns the held identity, or nil when anonymous.
func (s Session) User() *users.User {
	return s.user
}

// IsAuthenticated is true iff an identity is held.
func (s Session) IsAuthenticated() bool {
	return s.user != nil
}

// Role returns the identity's role and false when anonymous.
func (s Session) Role() (users.RoleType, bool) {
	if s.user == nil {
		return "", false
	}
	return s.user.Role, true
}

// Equal compares the held identities field by field.
func (s Session) Equal(other Session) bool {
	return s.user.Equal(other.user)
}
