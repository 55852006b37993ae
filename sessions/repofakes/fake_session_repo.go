package fakesessionrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/training-portal/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo keeps records in memory. SaveErr, when set, is returned by
// every Save and Clear so tests can simulate a failing store.
type FakeSessionRepo struct {
	records map[string][]byte
	lock    sync.RWMutex

	SaveErr error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		records: make(map[string][]byte),
	}
}

func (sr *FakeSessionRepo) Load(_ context.Context, slot string) ([]byte, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	record, ok := sr.records[slot]
	if !ok {
		return nil, sessions.ErrNotFound
	}
	return append([]byte(nil), record...), nil
}

func (sr *FakeSessionRepo) Save(ctx context.Context, slot string, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.SaveErr != nil {
		return sr.SaveErr
	}
	sr.records[slot] = append([]byte(nil), record...)
	return nil
}

func (sr *FakeSessionRepo) Clear(_ context.Context, slot string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.SaveErr != nil {
		return sr.SaveErr
	}
	delete(sr.records, slot)
	return nil
}

// Put writes raw bytes into slot, bypassing encoding.
func (sr *FakeSessionRepo) Put(slot string, record []byte) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.records[slot] = record
}

// Len returns the number of stored slots.
func (sr *FakeSessionRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.records)
}
