package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = neon
frame = film
storage = /tmp/booth
backend = sqlite
quota = 1048576
brand_title = "Wedding Booth"

[notify]
capture = true
save = false
copy = true
storage_full = false

[collage]
size = 800
gap = 16
radius = 0.08

[theme.neon]
Accent = #00FF00
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "neon" || cfg.Frame != "film" {
		t.Errorf("root section: %+v", cfg)
	}
	if cfg.Storage != "/tmp/booth" || cfg.Backend != "sqlite" || cfg.Quota != 1<<20 {
		t.Errorf("storage settings: %q %q %d", cfg.Storage, cfg.Backend, cfg.Quota)
	}
	if cfg.BrandTitle != "Wedding Booth" {
		t.Errorf("Expected quoted brand title, got %q", cfg.BrandTitle)
	}
	if cfg.Facing != "user" {
		t.Errorf("facing default %q", cfg.Facing)
	}

	if !cfg.Notify.Capture {
		t.Error("Expected notify.capture to be true")
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}
	if cfg.Notify.StorageFull {
		t.Error("Expected notify.storage_full to be false")
	}

	if cfg.Collage.Size != 800 || cfg.Collage.Gap != 16 || cfg.Collage.RadiusFraction() != 0.08 {
		t.Errorf("collage %+v", cfg.Collage)
	}

	if got := cfg.Themes["neon"]["Accent"]; got != "#00FF00" {
		t.Errorf("theme override %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"quota = lots",
		"[notify]\ncapture = maybe",
		"[collage]\nsize = 0",
		"[collage]\nradius = round",
		"[collage]\nradius = 0.9",
	}
	for _, in := range tests {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = sky
frame = neon-story
export_dir = /home/user/booth
watermark = "@studio # 1"

[notify]
capture = true
save = true
copy = false

[collage]
radius = fixed

[theme.sky]
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.Frame != cfg2.Frame || cfg.ExportDir != cfg2.ExportDir {
		t.Errorf("root mismatch:\n%s", generated)
	}
	if cfg.Watermark != cfg2.Watermark {
		t.Errorf("Watermark mismatch: %q vs %q", cfg.Watermark, cfg2.Watermark)
	}
	if cfg.Quota != cfg2.Quota {
		t.Errorf("Quota mismatch: %d vs %d", cfg.Quota, cfg2.Quota)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Collage != cfg2.Collage {
		t.Errorf("Collage mismatch: %+v vs %+v", cfg.Collage, cfg2.Collage)
	}
	if cfg.Themes["sky"]["Background"] != cfg2.Themes["sky"]["Background"] {
		t.Errorf("Theme background mismatch")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PHOTOBOOTH_THEME":          "neon",
		"PHOTOBOOTH_NOTIFY_CAPTURE": "true",
	}
	cfg := New()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "neon" || !cfg.Notify.Capture {
		t.Errorf("env not applied: %+v", cfg)
	}

	env["PHOTOBOOTH_NOTIFY_SAVE"] = "sometimes"
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Error("expected error for bad boolean")
	}
}

func TestLoaderDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	l := NewLoader("v1.0.0", "")
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Quota != DefaultQuota {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}
