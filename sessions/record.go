package sessions

import (
	"encoding/json"

	"github.com/jrsteele09/training-portal/users"
	"github.com/pkg/errors"
)

var ErrCorruptRecord = errors.New("corrupt session record")

// Record is the persisted form of a Session.
type Record struct {
	ID            string         `json:"id,omitempty"`
	Username      string         `json:"username,omitempty"`
	Email         string         `json:"email,omitempty"`
	Role          users.RoleType `json:"role,omitempty"`
	Name          string         `json:"name,omitempty"`
	Authenticated bool           `json:"authenticated"`
}

// NewRecord captures s for persistence.
func NewRecord(s Session) Record {
	u := s.User()
	if u == nil {
		return Record{}
	}
	return Record{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		Name:          u.Name,
		Authenticated: true,
	}
}

// Encode serializes s as a JSON record.
func Encode(s Session) ([]byte, error) {
	return json.Marshal(NewRecord(s))
}

// Decode parses and checks a persisted record. Any inconsistency is reported
// as ErrCorruptRecord so callers can fall back to Anonymous.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, errors.Wrap(ErrCorruptRecord, err.Error())
	}
	if err := r.check(); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (r Record) check() error {
	hasIdentity := r.ID != "" || r.Username != "" || r.Email != "" || r.Role != "" || r.Name != ""
	if r.Authenticated != hasIdentity {
		return errors.Wrap(ErrCorruptRecord, "authenticated flag disagrees with identity")
	}
	if !r.Authenticated {
		return nil
	}
	if _, err := r.Identity(); err != nil {
		return errors.Wrap(ErrCorruptRecord, err.Error())
	}
	return nil
}

// Identity rebuilds the identity stored in the record.
func (r Record) Identity() (*users.User, error) {
	if !r.Authenticated {
		return nil, nil
	}
	return users.NewIdentity(r.ID, r.Username, r.Name, r.Email, r.Role)
}
