package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

var stillExts = []string{".png", ".jpg", ".jpeg"}

// StillCapability serves a fixed image per facing from a directory, named
// user.png, environment.jpg and so on. Each facing can be open once at a
// time, like a physical device.
type StillCapability struct {
	dir string

	mu     sync.Mutex
	active map[Facing]bool
}

func NewStillCapability(dir string) *StillCapability {
	return &StillCapability{dir: dir, active: map[Facing]bool{}}
}

func (c *StillCapability) Open(ctx context.Context, facing Facing) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.dir == "" {
		return nil, &CapabilityError{Kind: Unsupported, Err: errors.New("no camera source configured")}
	}
	info, err := os.Stat(c.dir)
	if err != nil {
		return nil, classify(err)
	}
	if !info.IsDir() {
		return nil, &CapabilityError{Kind: Unsupported, Err: fmt.Errorf("%s is not a directory", c.dir)}
	}
	path, err := c.find(facing)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, classify(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &CapabilityError{Kind: Unsupported, Err: fmt.Errorf("decode %s: %w", path, err)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active[facing] {
		return nil, &CapabilityError{Kind: Busy, Err: fmt.Errorf("%s camera already open", facing)}
	}
	c.active[facing] = true
	return &stillSource{img: img, release: func() { c.release(facing) }}, nil
}

func (c *StillCapability) find(facing Facing) (string, error) {
	for _, ext := range stillExts {
		p := filepath.Join(c.dir, string(facing)+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if errors.Is(err, fs.ErrPermission) {
			return "", classify(err)
		}
	}
	return "", &CapabilityError{Kind: NotFound, Err: fmt.Errorf("no %s frame in %s", facing, c.dir)}
}

func (c *StillCapability) release(facing Facing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, facing)
}

// InUse reports whether a source for facing has not been stopped.
func (c *StillCapability) InUse(facing Facing) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active[facing]
}

func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &CapabilityError{Kind: NotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &CapabilityError{Kind: PermissionDenied, Err: err}
	}
	return &CapabilityError{Kind: Unsupported, Err: err}
}

type stillSource struct {
	img     image.Image
	once    sync.Once
	release func()

	mu      sync.Mutex
	stopped bool
}

var errStopped = errors.New("camera stopped")

func (s *stillSource) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, errStopped
	}
	return s.img, nil
}

func (s *stillSource) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		s.release()
	})
}
