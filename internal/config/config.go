package config

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultQuota matches the per-origin localStorage budget of most browsers.
const DefaultQuota = 5 << 20

// Notify holds notification settings.
type Notify struct {
	Capture     bool
	Save        bool
	Copy        bool
	StorageFull bool
}

// Collage holds the [collage] section.
type Collage struct {
	Size   int
	Gap    int
	Radius string // "fixed" or a fraction of the cell width
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	Frame      string
	Facing     string
	Storage    string
	Backend    string
	Quota      int64
	ExportDir  string
	BrandTitle string
	Watermark  string
	Font       string
	Source     string

	Notify  Notify
	Collage Collage

	// Themes holds [theme.<name>] palette overrides keyed by theme name.
	Themes map[string]map[string]string
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Frame:   "polaroid",
		Facing:  "user",
		Backend: "file",
		Quota:   DefaultQuota,
		Notify: Notify{
			StorageFull: true,
		},
		Collage: Collage{Size: 1200, Gap: 24, Radius: "fixed"},
		Themes:  make(map[string]map[string]string),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ key, value string }{
		{"theme", c.Theme},
		{"frame", c.Frame},
		{"facing", c.Facing},
		{"storage", c.Storage},
		{"backend", c.Backend},
		{"export_dir", c.ExportDir},
		{"brand_title", c.BrandTitle},
		{"watermark", c.Watermark},
		{"font", c.Font},
		{"source", c.Source},
	}
	for _, kv := range root {
		if kv.value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, quote(kv.value))
		}
	}
	fmt.Fprintf(&sb, "quota = %d\n", c.Quota)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "storage_full = %v\n", c.Notify.StorageFull)
	sb.WriteString("\n")

	sb.WriteString("[collage]\n")
	fmt.Fprintf(&sb, "size = %d\n", c.Collage.Size)
	fmt.Fprintf(&sb, "gap = %d\n", c.Collage.Gap)
	fmt.Fprintf(&sb, "radius = %s\n", c.Collage.Radius)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		overrides := c.Themes[name]
		keys := make([]string, 0, len(overrides))
		for k := range overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s = %s\n", k, overrides[k])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// quote keeps values with a leading or trailing space or an '=' intact.
func quote(v string) string {
	if strings.TrimSpace(v) != v || strings.ContainsAny(v, "=#") {
		return `"` + v + `"`
	}
	return v
}
