package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil // No config file found, return defaults
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".photoboothrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "photobooth.rc"} {
		xdgPath := filepath.Join(home, ".config", "photobooth", name)
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	return ""
}

// DefaultSavePath is where "config save" writes when no file exists yet.
func DefaultSavePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}
	return filepath.Join(home, ".config", "photobooth", "config.rc"), nil
}

// DefaultStorage is the data directory used when storage is unset.
func DefaultStorage() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "photobooth")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "photobooth")
}

// ApplyEnv overrides c from PHOTOBOOTH_* variables. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PHOTOBOOTH_THEME"); v != "" {
		c.Theme = v
	}
	if v := getenv("PHOTOBOOTH_FRAME"); v != "" {
		c.Frame = v
	}
	if v := getenv("PHOTOBOOTH_STORAGE"); v != "" {
		c.Storage = v
	}
	if v := getenv("PHOTOBOOTH_SOURCE"); v != "" {
		c.Source = v
	}
	flags := []struct {
		name string
		dst  *bool
	}{
		{"CAPTURE", &c.Notify.Capture},
		{"SAVE", &c.Notify.Save},
		{"COPY", &c.Notify.Copy},
		{"STORAGE_FULL", &c.Notify.StorageFull},
	}
	for _, f := range flags {
		v := getenv("PHOTOBOOTH_NOTIFY_" + f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PHOTOBOOTH_NOTIFY_%s: %w", f.name, err)
		}
		*f.dst = b
	}
	return nil
}
