package users

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// RoleType is the portal role of an identity. The set is closed.
type RoleType string

const (
	RoleEmployee RoleType = "employee" // Training, policies and own dashboard
	RoleManager  RoleType = "manager"  // Adds compliance and reports
	RoleAdmin    RoleType = "admin"    // Adds the admin panel
)

// Roles lists every valid role, lowest privilege first.
var Roles = []RoleType{RoleEmployee, RoleManager, RoleAdmin}

var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts s into a RoleType, rejecting anything outside the closed set.
func ParseRole(s string) (RoleType, error) {
	r := RoleType(s)
	if !r.Valid() {
		return "", errors.Wrapf(ErrInvalidRole, "%q", s)
	}
	return r, nil
}

func (r RoleType) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (r RoleType) String() string {
	return string(r)
}

// User is an authenticated principal. Instances are built once by a Directory
// and shared by pointer; nothing mutates them afterwards.
type User struct {
	ID       string   `json:"id" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     RoleType `json:"role" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewIdentity validates the fields and returns the identity.
func NewIdentity(id, username, name, email string, role RoleType) (*User, error) {
	u := &User{
		ID:       id,
		Username: username,
		Name:     name,
		Email:    email,
		Role:     role,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate reports the first problem with u, if any.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return errors.Wrap(err, "[users.Validate]")
	}
	if !u.Role.Valid() {
		return errors.Wrapf(ErrInvalidRole, "[users.Validate] %q", u.Role)
	}
	return nil
}

// Equal reports whether both identities carry the same fields.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return *u == *other
}

func (u *User) HasRole(roles ...RoleType) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) String() string {
	return fmt.Sprintf("%s <%s> (%s)", u.Name, u.Email, u.Role)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
