package auth

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jrsteele09/training-portal/sessions"
	"github.com/jrsteele09/training-portal/users"
	"github.com/pkg/errors"
)

// DefaultStoresCapacity bounds how many authenticated device stores stay cached.
const DefaultStoresCapacity = 10000

// Stores hands out one Store per client device. Each device owns the slot
// "<prefix>:<deviceID>".
//
// Only authenticated stores are cached, and at most capacity of them. An
// anonymous device is restored from the repo on every Get, so devices that
// never log in, or drop their cookies, cost no memory.
type Stores struct {
	prefix    string
	directory users.Directory
	repo      sessions.Repo

	mu     sync.Mutex
	stores *lru.Cache[string, *Store]
}

type StoresOption func(*storesOptions)

type storesOptions struct {
	capacity int
}

// WithCapacity changes how many authenticated stores are cached.
func WithCapacity(capacity int) StoresOption {
	return func(o *storesOptions) {
		o.capacity = capacity
	}
}

func NewStores(prefix string, directory users.Directory, repo sessions.Repo, options ...StoresOption) (*Stores, error) {
	if prefix == "" {
		prefix = DefaultSlot
	}
	if directory == nil {
		return nil, errors.Wrap(ErrDirectoryRequired, "[NewStores]")
	}
	if repo == nil {
		return nil, errors.Wrap(ErrRepoRequired, "[NewStores]")
	}

	opts := storesOptions{capacity: DefaultStoresCapacity}
	for _, opt := range options {
		opt(&opts)
	}
	cache, err := lru.New[string, *Store](opts.capacity)
	if err != nil {
		return nil, errors.Wrap(err, "[NewStores] store cache")
	}

	return &Stores{
		prefix:    prefix,
		directory: directory,
		repo:      repo,
		stores:    cache,
	}, nil
}

// Get returns the store for deviceID. A cached store is reused only while it
// is authenticated; otherwise the slot is restored from the repo again.
func (ss *Stores) Get(ctx context.Context, deviceID string) (*Store, error) {
	if deviceID == "" {
		return nil, errors.New("[Stores.Get] device id is required")
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if s, ok := ss.stores.Get(deviceID); ok {
		if s.Session().IsAuthenticated() {
			return s, nil
		}
		ss.stores.Remove(deviceID)
	}

	s, err := NewStore(ctx, ss.prefix+":"+deviceID, ss.directory, ss.repo)
	if err != nil {
		return nil, errors.Wrap(err, "[Stores.Get]")
	}
	if s.Session().IsAuthenticated() {
		ss.stores.Add(deviceID, s)
	}
	return s, nil
}

// Forget drops the cached store for deviceID. The persisted slot is kept and
// will be restored by the next Get.
func (ss *Stores) Forget(deviceID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.stores.Remove(deviceID)
}

// Len is the number of cached stores.
func (ss *Stores) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.stores.Len()
}
