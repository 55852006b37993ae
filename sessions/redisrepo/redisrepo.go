// Package redisrepo stores session records in Redis, one key per slot.
package redisrepo

import (
	"context"
	"time"

	"github.com/jrsteele09/training-portal/sessions"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Repo = (*Repo)(nil)

const defaultPrefix = "portal:session:"

type Repo struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type Option func(*Repo)

// WithPrefix changes the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Repo) {
		r.prefix = prefix
	}
}

// WithTTL expires idle records. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repo) {
		r.ttl = ttl
	}
}

func New(client redis.UniversalClient, options ...Option) (*Repo, error) {
	if client == nil {
		return nil, errors.New("[redisrepo.New] client is required")
	}
	r := &Repo{client: client, prefix: defaultPrefix}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

func (r *Repo) key(slot string) string {
	return r.prefix + slot
}

func (r *Repo) Load(ctx context.Context, slot string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[redisrepo.Load] get %s", slot)
	}
	return data, nil
}

func (r *Repo) Save(ctx context.Context, slot string, record []byte) error {
	if err := r.client.Set(ctx, r.key(slot), record, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "[redisrepo.Save] set %s", slot)
	}
	return nil
}

func (r *Repo) Clear(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, r.key(slot)).Err(); err != nil {
		return errors.Wrapf(err, "[redisrepo.Clear] del %s", slot)
	}
	return nil
}
