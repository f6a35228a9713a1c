package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme map[string]string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if name, ok := strings.CutPrefix(currentSection, "theme."); ok {
				currentTheme = cfg.Themes[name]
				if currentTheme == nil {
					currentTheme = map[string]string{}
					cfg.Themes[name] = currentTheme
				}
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var key, value string
		var ok bool
		if strings.Contains(line, "=") {
			key, value, ok = strings.Cut(line, "=")
		} else {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			currentTheme[key] = value
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "collage":
			err = setCollageField(&cfg.Collage, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "frame":
		cfg.Frame = value
	case "facing":
		cfg.Facing = value
	case "storage":
		cfg.Storage = value
	case "backend":
		cfg.Backend = value
	case "quota":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid quota %q", value)
		}
		cfg.Quota = n
	case "export_dir":
		cfg.ExportDir = value
	case "brand_title":
		cfg.BrandTitle = value
	case "watermark":
		cfg.Watermark = value
	case "font":
		cfg.Font = value
	case "source":
		cfg.Source = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "storage_full":
		n.StorageFull = b
	}
	return nil
}

func setCollageField(c *Collage, key, value string) error {
	switch strings.ToLower(key) {
	case "size", "gap":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s %q", key, value)
		}
		if strings.EqualFold(key, "size") {
			if n == 0 {
				return fmt.Errorf("invalid size %q", value)
			}
			c.Size = n
		} else {
			c.Gap = n
		}
	case "radius":
		if value != "fixed" {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f <= 0 || f > 0.5 {
				return fmt.Errorf("invalid radius %q: want fixed or a fraction up to 0.5", value)
			}
		}
		c.Radius = value
	}
	return nil
}

// RadiusFraction returns the configured fraction, or 0 for "fixed".
func (c Collage) RadiusFraction() float64 {
	f, err := strconv.ParseFloat(c.Radius, 64)
	if err != nil {
		return 0
	}
	return f
}
