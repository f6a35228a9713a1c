package theme

import (
	"errors"
	"log"
	"sync"

	"github.com/example/photobooth/internal/kvstore"
)

// StorageKey is the slot the selected theme is saved under. It is kept
// apart from the photo list.
const StorageKey = "spb-theme"

// Context is the app-wide theme selection. It is loaded once on start and
// saved on every change.
type Context struct {
	kv        kvstore.Store
	loader    *Loader
	overrides map[Name]map[string]string
	Logger    *log.Logger

	mu      sync.Mutex
	name    Name
	palette *Theme
}

// Load reads the saved selection from kv. Anything other than a known
// name falls back to sky. loader may be nil to use NewLoader.
func Load(kv kvstore.Store, loader *Loader) *Context {
	if loader == nil {
		loader = NewLoader()
	}
	c := &Context{kv: kv, loader: loader, name: Sky, Logger: log.Default()}
	if kv == nil {
		return c
	}
	v, err := kv.Get(StorageKey)
	switch {
	case err == nil:
		if n, perr := ParseName(v); perr == nil && string(n) == v {
			c.name = n
		}
	case !errors.Is(err, kvstore.ErrNotFound):
		c.Logger.Printf("load theme: %v", err)
	}
	return c
}

// SetOverrides registers per-theme palette overrides such as a
// [theme.neon] config section.
func (c *Context) SetOverrides(o map[Name]map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides = o
	c.palette = nil
}

func (c *Context) Name() Name {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// IsNeon reports whether frame previews should use their neon variant.
func (c *Context) IsNeon() bool { return c.Name() == Neon }

// Set selects n and saves it. The selection changes even when saving
// fails; the error is returned for display.
func (c *Context) Set(n Name) error {
	if _, err := ParseName(string(n)); err != nil {
		return err
	}
	c.mu.Lock()
	c.name = n
	c.palette = nil
	c.mu.Unlock()
	return c.save(n)
}

// Toggle switches between sky and neon and returns the new name.
func (c *Context) Toggle() (Name, error) {
	c.mu.Lock()
	n := c.name.Other()
	c.name = n
	c.palette = nil
	c.mu.Unlock()
	return n, c.save(n)
}

func (c *Context) save(n Name) error {
	if c.kv == nil {
		return nil
	}
	if err := c.kv.Set(StorageKey, string(n)); err != nil {
		c.Logger.Printf("save theme: %v", err)
		return err
	}
	return nil
}

// Palette returns the colors for the current theme, loading the theme
// file on first use.
func (c *Context) Palette() *Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.palette != nil {
		return c.palette
	}
	t, err := c.loader.Load(string(c.name))
	if err != nil {
		c.Logger.Printf("load theme %s: %v", c.name, err)
		t = Default()
	}
	if o := c.overrides[c.name]; len(o) > 0 {
		if err := t.Apply(o); err != nil {
			c.Logger.Printf("theme %s overrides: %v", c.name, err)
		}
	}
	c.palette = t
	return t
}
