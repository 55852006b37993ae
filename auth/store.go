package auth

import (
	"context"
	"sync"

	"github.com/jrsteele09/training-portal/sessions"
	"github.com/jrsteele09/training-portal/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultSlot is the storage slot used when a single client owns the store.
const DefaultSlot = "auth-storage"

// Store owns the session of one client slot. Login, CompleteLogin and Logout
// are the only writers; Session is the only reader.
type Store struct {
	slot      string
	directory users.Directory
	repo      sessions.Repo

	mu      sync.RWMutex
	session sessions.Session
}

// NewStore builds a store for slot and restores the last persisted session.
// Anything wrong with the stored record leaves the store Anonymous; only
// missing dependencies are reported as errors.
func NewStore(ctx context.Context, slot string, directory users.Directory, repo sessions.Repo) (*Store, error) {
	if slot == "" {
		return nil, errors.Wrap(ErrSlotRequired, "[NewStore]")
	}
	if directory == nil {
		return nil, errors.Wrap(ErrDirectoryRequired, "[NewStore]")
	}
	if repo == nil {
		return nil, errors.Wrap(ErrRepoRequired, "[NewStore]")
	}

	s := &Store{
		slot:      slot,
		directory: directory,
		repo:      repo,
	}
	s.session = s.restore(ctx)
	return s, nil
}

func (s *Store) Slot() string {
	return s.slot
}

// Session returns the current session.
func (s *Store) Session() sessions.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Login checks identifier, password and passcode against the directory. On a
// match the session becomes Authenticated and is persisted before it is
// visible to readers. A mismatch returns false with a nil error and leaves the
// session untouched. The error is only set when persisting fails, in which
// case the session is also left untouched.
func (s *Store) Login(ctx context.Context, identifier, password, passcode string) (bool, error) {
	credential, err := s.directory.Lookup(identifier)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			log.Err(err).Str("slot", s.slot).Msg("credential lookup failed")
		}
		log.Warn().Str("slot", s.slot).Str("identifier", identifier).Msg("login failed: unknown identifier")
		return false, nil
	}

	if !credential.Matches(password, passcode) {
		log.Warn().Str("slot", s.slot).Str("identifier", identifier).Msg("login failed: invalid credentials")
		return false, nil
	}

	if err := s.authenticate(ctx, credential); err != nil {
		return false, errors.Wrap(err, "[Store.Login]")
	}
	return true, nil
}

// PasswordCheck records that the password step of a two-step login passed
// for one identifier on one store. Only VerifyPassword makes them, so holding
// one is the proof; the password itself is not kept.
type PasswordCheck struct {
	slot       string
	identifier string
	userID     string
}

func (c *PasswordCheck) Identifier() string {
	return c.identifier
}

// VerifyPassword is the first step of a two-step login. It never changes the
// session; the returned check is redeemed by CompleteLogin together with the
// passcode.
func (s *Store) VerifyPassword(identifier, password string) (*PasswordCheck, bool) {
	credential, err := s.directory.Lookup(identifier)
	if err != nil {
		log.Warn().Str("slot", s.slot).Str("identifier", identifier).Msg("password step failed: unknown identifier")
		return nil, false
	}
	if !users.CheckPasswordHash(password, credential.PasswordHash) {
		log.Warn().Str("slot", s.slot).Str("identifier", identifier).Msg("password step failed: invalid password")
		return nil, false
	}
	return &PasswordCheck{slot: s.slot, identifier: identifier, userID: credential.Identity.ID}, true
}

// CompleteLogin is the second step of a two-step login: check must come from
// VerifyPassword on this store, and passcode must match the same identity.
// Results and errors follow Login.
func (s *Store) CompleteLogin(ctx context.Context, check *PasswordCheck, passcode string) (bool, error) {
	if check == nil || check.slot != s.slot {
		log.Warn().Str("slot", s.slot).Msg("login failed: password step not passed on this store")
		return false, nil
	}

	credential, err := s.directory.Lookup(check.identifier)
	if err != nil || credential.Identity.ID != check.userID {
		log.Warn().Str("slot", s.slot).Str("identifier", check.identifier).Msg("login failed: identity changed since password step")
		return false, nil
	}
	if !credential.MatchesPasscode(passcode) {
		log.Warn().Str("slot", s.slot).Str("identifier", check.identifier).Msg("login failed: invalid passcode")
		return false, nil
	}

	if err := s.authenticate(ctx, credential); err != nil {
		return false, errors.Wrap(err, "[Store.CompleteLogin]")
	}
	return true, nil
}

// Logout resets the session to Anonymous and persists it. Logging out while
// anonymous rewrites the same empty record.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, sessions.Anonymous()); err != nil {
		return errors.Wrap(err, "[Store.Logout]")
	}
	s.session = sessions.Anonymous()
	return nil
}

// Reset deletes the persisted slot and resets the session to Anonymous.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx, s.slot); err != nil {
		return errors.Wrap(err, "[Store.Reset]")
	}
	s.session = sessions.Anonymous()
	return nil
}

// Authorize evaluates the route guard against the current session.
func (s *Store) Authorize(required Requirement) Decision {
	return Authorize(s.Session(), required)
}

// authenticate persists the credential's identity and only then makes it the
// current session.
func (s *Store) authenticate(ctx context.Context, credential *users.Credential) error {
	next := sessions.Authenticated(credential.Identity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.session = next

	log.Info().Str("slot", s.slot).Str("user_id", credential.Identity.ID).Str("role", credential.Identity.Role.String()).Msg("login succeeded")
	return nil
}

func (s *Store) persist(ctx context.Context, next sessions.Session) error {
	record, err := sessions.Encode(next)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err := s.repo.Save(ctx, s.slot, record); err != nil {
		return errors.Wrapf(err, "save slot %s", s.slot)
	}
	return nil
}

func (s *Store) restore(ctx context.Context) sessions.Session {
	data, err := s.repo.Load(ctx, s.slot)
	if errors.Is(err, sessions.ErrNotFound) {
		return sessions.Anonymous()
	}
	if err != nil {
		log.Err(err).Str("slot", s.slot).Msg("session restore failed, starting anonymous")
		return sessions.Anonymous()
	}

	record, err := sessions.Decode(data)
	if err != nil {
		log.Err(err).Str("slot", s.slot).Msg("discarding corrupt session record")
		s.discard(ctx)
		return sessions.Anonymous()
	}
	if !record.Authenticated {
		return sessions.Anonymous()
	}

	// The directory owns identities; the record only has to agree with it.
	user, err := s.directory.GetByID(record.ID)
	if err != nil {
		log.Warn().Str("slot", s.slot).Str("user_id", record.ID).Msg("discarding session for unknown identity")
		s.discard(ctx)
		return sessions.Anonymous()
	}
	stored, _ := record.Identity()
	if !user.Equal(stored) {
		log.Warn().Str("slot", s.slot).Str("user_id", record.ID).Msg("discarding stale session record")
		s.discard(ctx)
		return sessions.Anonymous()
	}

	return sessions.Authenticated(user)
}

func (s *Store) discard(ctx context.Context) {
	if err := s.repo.Clear(ctx, s.slot); err != nil {
		log.Err(err).Str("slot", s.slot).Msg("failed to clear session slot")
	}
}
