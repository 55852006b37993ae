// Package loginflow tracks two-step logins between the password step and the
// passcode step.
package loginflow

import (
	"time"

	"github.com/jrsteele09/training-portal/auth"
)

// Flow is a login whose password has been accepted and which now waits for
// the one-time passcode. Only the proof of the password step is kept.
type Flow struct {
	DeviceID  string
	Check     *auth.PasswordCheck
	CreatedAt time.Time
}

type Repo interface {
	Upsert(flowID string, flow *Flow) error
	Get(flowID string) (*Flow, error)
	Delete(flowID string) error
	DeleteExpired(before time.Time) int
}
