package sessions

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("session slot not found")

// Repo is durable key-value storage for persisted session records. Each slot
// holds at most one record.
type Repo interface {
	// Load returns the raw record in slot, or ErrNotFound.
	Load(ctx context.Context, slot string) ([]byte, error)

	// Save replaces the record in slot.
	Save(ctx context.Context, slot string, record []byte) error

	// Clear removes slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context, slot string) error
}
