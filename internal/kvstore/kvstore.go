// Package kvstore is a small string key-value store in the shape of a
// browser's per-origin local storage: one flat namespace, whole-value
// reads and writes, and a byte quota.
package kvstore

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Set when the write would push the
	// store past its limit. The previous value is left in place.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is implemented by every backend.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Size reports the bytes used by all keys and values.
	Size() (int64, error)
	Close() error
}

// Limiter is implemented by stores with a fixed capacity.
type Limiter interface {
	Limit() int64
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultQuota matches the usual local storage allowance of one origin.
const DefaultQuota int64 = 5 << 20

// Open creates a backend by name. path is a directory for the file backend
// and a database file for SQLite; the memory backend ignores it. A
// positive quota wraps the backend with WithQuota.
func Open(backend, path string, quota int64) (Store, error) {
	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory:
		s = NewMemory()
	case BackendFile, "":
		s, err = OpenDir(path)
	case BackendSQLite:
		s, err = OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	if quota > 0 {
		s = WithQuota(s, quota)
	}
	return s, nil
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
