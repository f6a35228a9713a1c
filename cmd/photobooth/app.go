package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/photobooth/internal/camera"
	"github.com/example/photobooth/internal/collage"
	"github.com/example/photobooth/internal/compose"
	"github.com/example/photobooth/internal/config"
	"github.com/example/photobooth/internal/frames"
	"github.com/example/photobooth/internal/kvstore"
	"github.com/example/photobooth/internal/render"
	"github.com/example/photobooth/internal/theme"
)

const sqliteFile = "photobooth.db"

// openKV opens the configured backend. The caller closes it.
func (r *root) openKV() (kvstore.Store, error) {
	cfg := r.config
	dir := cfg.Storage
	if dir == "" {
		dir = config.DefaultStorage()
	}
	path := dir
	if cfg.Backend == kvstore.BackendSQLite {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		path = filepath.Join(dir, sqliteFile)
	}
	kv, err := kvstore.Open(cfg.Backend, path, cfg.Quota)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return kv, nil
}

// themeContext loads the persisted theme. A theme named by flag,
// environment or config replaces it and is saved.
func (r *root) themeContext(kv kvstore.Store) *theme.Context {
	tc := theme.Load(kv, theme.NewLoader())
	overrides := make(map[theme.Name]map[string]string)
	for name, values := range r.config.Themes {
		if n, err := theme.ParseName(name); err == nil {
			overrides[n] = values
		}
	}
	tc.SetOverrides(overrides)

	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	if name == "" {
		return tc
	}
	n, err := theme.ParseName(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v. using %s.\n", err, tc.Name())
		return tc
	}
	if n != tc.Name() {
		if err := tc.Set(n); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save theme: %v\n", err)
		}
	}
	return tc
}

func (r *root) fonts() (*render.Fonts, error) {
	if r.config.Font == "" {
		return render.DefaultFonts()
	}
	f, err := render.LoadFontFile(r.config.Font)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", r.config.Font, err)
	}
	return f, nil
}

func (r *root) branding() compose.Branding {
	b := compose.DefaultBranding()
	if r.config.BrandTitle != "" {
		b.Title = r.config.BrandTitle
	}
	if r.config.Watermark != "" {
		b.Watermark = r.config.Watermark
	}
	return b
}

func (r *root) compositor() (*compose.Compositor, error) {
	fonts, err := r.fonts()
	if err != nil {
		return nil, err
	}
	return compose.New(fonts, r.branding())
}

func (r *root) collageOptions() (collage.Options, error) {
	opts := collage.DefaultOptions()
	fonts, err := r.fonts()
	if err != nil {
		return opts, err
	}
	opts.Fonts = fonts
	opts.Branding = r.branding()
	if c := r.config.Collage; c.Size > 0 {
		opts.Size = c.Size
		opts.Gap = float64(c.Gap)
		opts.Radius.Fraction = c.RadiusFraction()
	}
	return opts, nil
}

// frameMode resolves a mode name, accepting the deprecated catalog ids
// with a warning.
func frameMode(name string) (frames.Mode, error) {
	if name == "" {
		return frames.Default, nil
	}
	mode, deprecated, err := frames.ParseLegacy(name)
	if err != nil {
		return "", err
	}
	if deprecated {
		fmt.Fprintf(os.Stderr, "warning: frame %q is deprecated, using %q\n", name, mode)
	}
	return mode, nil
}

func (r *root) camera() (camera.Capability, error) {
	if r.config.Source == "" {
		return nil, fmt.Errorf("no camera source configured; pass -source <dir> or -source %s", camera.X11Source)
	}
	return camera.FromSource(r.config.Source), nil
}

func (r *root) exportPath(name, output string) string {
	if output != "" {
		return output
	}
	dir := r.config.ExportDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}
