// Package filerepo stores session records as JSON files, one per slot.
package filerepo

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jrsteele09/training-portal/sessions"
	"github.com/pkg/errors"
)

var _ sessions.Repo = (*Repo)(nil)

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// Repo writes slot records under a single folder.
type Repo struct {
	folder string
}

// New creates folder if needed and returns a repo rooted there.
func New(folder string) (*Repo, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrapf(err, "[filerepo.New] mkdir %s", folder)
	}
	return &Repo{folder: folder}, nil
}

func (r *Repo) path(slot string) (string, error) {
	if !slotPattern.MatchString(slot) || slot == "." || slot == ".." {
		return "", errors.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(r.folder, slot+".json"), nil
}

func (r *Repo) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.path(slot)
	if err != nil {
		return nil, errors.Wrap(err, "[filerepo.Load]")
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[filerepo.Load] read %s", p)
	}
	return data, nil
}

// Save writes to a temporary file and renames it over the slot so a reader
// never sees a partial record.
func (r *Repo) Save(ctx context.Context, slot string, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(slot)
	if err != nil {
		return errors.Wrap(err, "[filerepo.Save]")
	}

	tmp, err := os.CreateTemp(r.folder, slot+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "[filerepo.Save] create temp")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(record); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[filerepo.Save] write")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[filerepo.Save] sync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[filerepo.Save] close")
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return errors.Wrapf(err, "[filerepo.Save] rename to %s", p)
	}
	return nil
}

func (r *Repo) Clear(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(slot)
	if err != nil {
		return errors.Wrap(err, "[filerepo.Clear]")
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "[filerepo.Clear] remove %s", p)
	}
	return nil
}
