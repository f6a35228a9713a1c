package kvstore

import (
	"errors"
	"fmt"
)

type quota struct {
	Store
	limit int64
}

// WithQuota rejects writes that would take s past limit bytes.
func WithQuota(s Store, limit int64) Store {
	return &quota{Store: s, limit: limit}
}

func (q *quota) Limit() int64 { return q.limit }

func (q *quota) Set(key, value string) error {
	used, err := q.Store.Size()
	if err != nil {
		return err
	}
	old, err := q.Store.Get(key)
	switch {
	case err == nil:
		used -= entrySize(key, old)
	case !errors.Is(err, ErrNotFound):
		return err
	}
	if need := used + entrySize(key, value); need > q.limit {
		return fmt.Errorf("set %q: %d of %d bytes: %w", key, need, q.limit, ErrQuotaExceeded)
	}
	return q.Store.Set(key, value)
}
