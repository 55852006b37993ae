package fakeuserrepo

import (
	"sort"
	"sync"

	"github.com/jrsteele09/training-portal/users"
	"github.com/pkg/errors"
)

var _ users.Directory = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory credential directory.
type FakeUserRepo struct {
	credentials map[string]*users.Credential // user id to credential
	identifiers map[string]string            // username or email to user id
	lock        sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		credentials: make(map[string]*users.Credential),
		identifiers: make(map[string]string),
	}
}

// Add stores a credential. The identity must be valid and its ID, username and
// email must not collide with any existing identifier.
func (ur *FakeUserRepo) Add(credential *users.Credential) error {
	if credential == nil || credential.Identity == nil {
		return errors.New("[FakeUserRepo.Add] credential identity is required")
	}
	if err := credential.Identity.Validate(); err != nil {
		return errors.Wrap(err, "[FakeUserRepo.Add]")
	}
	if credential.PasswordHash == "" || credential.Passcode == "" {
		return errors.Errorf("[FakeUserRepo.Add] %s: password and passcode are required", credential.Identity.ID)
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	u := credential.Identity
	if _, ok := ur.credentials[u.ID]; ok {
		return errors.Wrapf(users.ErrDuplicateUser, "id %q", u.ID)
	}
	for _, identifier := range []string{u.Username, u.Email} {
		if _, ok := ur.identifiers[identifier]; ok {
			return errors.Wrapf(users.ErrDuplicateUser, "identifier %q", identifier)
		}
	}
	ur.credentials[u.ID] = credential
	ur.identifiers[u.Username] = u.ID
	ur.identifiers[u.Email] = u.ID
	return nil
}

// AddUser hashes password and stores the resulting credential.
func (ur *FakeUserRepo) AddUser(user *users.User, password, passcode string) error {
	hash, err := users.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "[FakeUserRepo.AddUser] hash password")
	}
	return ur.Add(&users.Credential{Identity: user, PasswordHash: hash, Passcode: passcode})
}

func (ur *FakeUserRepo) Lookup(identifier string) (*users.Credential, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.identifiers[identifier]
	if !ok {
		return nil, users.ErrNotFound
	}
	return ur.credentials[id], nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	c, ok := ur.credentials[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return c.Identity, nil
}

func (ur *FakeUserRepo) List() []*users.User {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.credentials))
	for _, c := range ur.credentials {
		userList = append(userList, c.Identity)
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})
	return userList
}
