package users

import (
	"crypto/subtle"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("duplicate user")
)

// Credential is one directory entry: an identity with the secrets that unlock it.
type Credential struct {
	Identity     *User
	PasswordHash string // bcrypt hash
	Passcode     string // one-time passcode, unique per identity
}

// Matches reports whether both the password and the passcode are exactly right.
// Both checks always run so a wrong password and a wrong passcode cost the same.
func (c *Credential) Matches(password, passcode string) bool {
	passwordOK := CheckPasswordHash(password, c.PasswordHash)
	passcodeOK := c.MatchesPasscode(passcode)
	return passwordOK && passcodeOK
}

// MatchesPasscode compares only the passcode, in constant time.
func (c *Credential) MatchesPasscode(passcode string) bool {
	return subtle.ConstantTimeCompare([]byte(passcode), []byte(c.Passcode)) == 1
}

// Directory is the read-only credential lookup used by the session store.
type Directory interface {
	// Lookup finds the single entry whose username or email equals identifier.
	Lookup(identifier string) (*Credential, error)

	// GetByID resolves an identity by its ID.
	GetByID(id string) (*User, error)

	// List returns all identities ordered by ID.
	List() []*User
}
