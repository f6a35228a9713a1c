package kvstore

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const dirExt = ".value"

// Dir stores each key as a file. Writes go through a temp file and a
// rename so a crash never leaves a half-written value.
type Dir struct {
	path string
}

// OpenDir uses path as the store, creating it if needed.
func OpenDir(path string) (*Dir, error) {
	if path == "" {
		return nil, errors.New("storage directory not set")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, url.PathEscape(key)+dirExt)
}

func (d *Dir) Get(key string) (string, error) {
	data, err := os.ReadFile(d.file(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *Dir) Set(key, value string) error {
	tmp, err := os.CreateTemp(d.path, ".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, d.file(key)); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func (d *Dir) Remove(key string) error {
	err := os.Remove(d.file(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (d *Dir) Size() (int64, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, dirExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, err
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, dirExt))
		if err != nil {
			key = name
		}
		n += int64(len(key)) + info.Size()
	}
	return n, nil
}

func (d *Dir) Close() error { return nil }
