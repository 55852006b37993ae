package errors

import (
	"errors"
	"fmt"
)

// Errors surfaced to HTTP clients. Invalid credentials and access denial are
// expected outcomes; they are only turned into errors at the transport edge.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPasscode    = errors.New("invalid passcode")
	ErrUnauthorized       = errors.New("access denied")
	ErrLoginRequired      = errors.New("login required")

	ErrFlowNotFound = errors.New("login flow not found")
	ErrFlowExpired  = errors.New("login flow expired")

	ErrNotFound    = errors.New("not found")
	ErrInvalidBody = errors.New("invalid request body")
	ErrInternal    = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
