package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/photobooth/internal/booth"
	"github.com/example/photobooth/internal/collage"
	"github.com/example/photobooth/internal/config"
)

type harness struct {
	cfg    *config.Config
	export string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cam := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 220, 255
	}
	f, err := os.Create(filepath.Join(cam, "user.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := config.New()
	cfg.Storage = t.TempDir()
	cfg.Source = cam
	cfg.Notify.StorageFull = false
	h := &harness{cfg: cfg, export: t.TempDir()}
	cfg.ExportDir = h.export
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	r := newRootWith(h.cfg, &out)
	err := r.Run(args)
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "dance")
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Usage: photobooth") || !strings.Contains(uerr.Error(), "-theme") {
		t.Fatalf("help text %q", uerr.Error())
	}
}

func TestSubcommandHelpNamesProgram(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "gallery")
	var uerr *UsageError
	if !errors.As(err, &uerr) || !strings.Contains(uerr.Error(), "photobooth gallery <action>") {
		t.Fatalf("expected gallery help, got %v", err)
	}
}

func TestFramesListing(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun(t, "frames")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "polaroid") || !strings.HasPrefix(lines[3], "neon-story") {
		t.Fatalf("frames output %q", out)
	}
	yml := h.mustRun(t, "frames", "-yaml")
	if !strings.Contains(yml, "preview:") || !strings.Contains(yml, "sprockets: 3") {
		t.Fatalf("yaml output %q", yml)
	}
}

func TestSnapGalleryRoundTrip(t *testing.T) {
	h := newHarness(t)
	id := strings.TrimSpace(h.mustRun(t, "snap", "-frame", "film"))
	if id == "" {
		t.Fatal("snap printed no id")
	}

	list := h.mustRun(t, "gallery", "list")
	if !strings.Contains(list, id) {
		t.Fatalf("list %q missing %s", list, id)
	}
	yml := h.mustRun(t, "gallery", "list", "-yaml")
	if !strings.Contains(yml, "filename: smile-photo-"+id+".jpg") || !strings.Contains(yml, "photos: 1") {
		t.Fatalf("yaml list %q", yml)
	}

	path := strings.TrimSpace(h.mustRun(t, "gallery", "export", "latest"))
	if path != filepath.Join(h.export, "smile-photo-"+id+".jpg") {
		t.Fatalf("export path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Fatalf("exported file is not a JPEG: %v", err)
	}

	quota := h.mustRun(t, "gallery", "quota")
	if !strings.Contains(quota, "photos: 1") {
		t.Fatalf("quota %q", quota)
	}

	h.mustRun(t, "gallery", "delete", id)
	if _, err := h.run(t, "gallery", "delete", id); err == nil {
		t.Fatal("deleting a missing photo should fail")
	}
	if out := h.mustRun(t, "gallery", "list"); !strings.Contains(out, "no photos yet") {
		t.Fatalf("list after delete %q", out)
	}
}

func TestSnapDeprecatedFrameAndMissingCamera(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "snap", "-frame", "clean")

	if _, err := h.run(t, "snap", "-frame", "sepia"); err == nil {
		t.Fatal("unknown frame should fail")
	}
	if _, err := h.run(t, "snap", "-facing", "environment"); err == nil || !strings.Contains(err.Error(), "No camera was found") {
		t.Fatalf("expected not-found message, got %v", err)
	}
}

func TestSnapStorageFull(t *testing.T) {
	h := newHarness(t)
	h.cfg.Quota = 64
	if _, err := h.run(t, "snap"); err == nil || !strings.Contains(err.Error(), "storage is full") {
		t.Fatalf("expected storage full, got %v", err)
	}
}

func TestCollageLatestAndCopy(t *testing.T) {
	h := newHarness(t)
	var copied []string
	orig := copyEncoded
	copyEncoded = func(mime string, data []byte) error {
		copied = append(copied, mime)
		return nil
	}
	t.Cleanup(func() { copyEncoded = orig })

	if _, err := h.run(t, "collage", "-latest"); err == nil || !errors.Is(err, collage.ErrNoPhotos) {
		t.Fatalf("expected no photos, got %v", err)
	}

	for i := 0; i < 3; i++ {
		h.mustRun(t, "snap")
	}
	out := filepath.Join(h.export, "c.png")
	h.mustRun(t, "collage", "-latest", "-o", out, "-copy")
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 1200 {
		t.Fatalf("collage bounds %v", b)
	}
	if len(copied) != 1 || copied[0] != "image/png" {
		t.Fatalf("copied %v", copied)
	}

	h.mustRun(t, "gallery", "copy")
	if len(copied) != 2 || copied[1] != "image/jpeg" {
		t.Fatalf("copied %v", copied)
	}
}

func TestCollageRejectsFifthPhoto(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "collage", "a", "b", "c", "d", "e")
	if !errors.Is(err, collage.ErrSelectionFull) {
		t.Fatalf("expected selection full, got %v", err)
	}
}

func TestThemeCommands(t *testing.T) {
	h := newHarness(t)
	if got := strings.TrimSpace(h.mustRun(t, "theme", "get")); got != "sky" {
		t.Fatalf("default theme %q", got)
	}
	if got := strings.TrimSpace(h.mustRun(t, "theme", "toggle")); got != "neon" {
		t.Fatalf("toggle %q", got)
	}
	if got := strings.TrimSpace(h.mustRun(t, "theme", "get")); got != "neon" {
		t.Fatalf("stored theme %q", got)
	}
	h.mustRun(t, "theme", "set", "SKY")
	if got := strings.TrimSpace(h.mustRun(t, "theme", "get")); got != "sky" {
		t.Fatalf("after set %q", got)
	}
	if _, err := h.run(t, "theme", "set", "sepia"); err == nil {
		t.Fatal("unknown theme should fail")
	}
}

func TestSQLiteBackend(t *testing.T) {
	h := newHarness(t)
	h.cfg.Backend = "sqlite"
	id := strings.TrimSpace(h.mustRun(t, "snap"))
	if out := h.mustRun(t, "gallery", "list"); !strings.Contains(out, id) {
		t.Fatalf("list %q", out)
	}
	if _, err := os.Stat(filepath.Join(h.cfg.Storage, sqliteFile)); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalFlagsOverrideConfig(t *testing.T) {
	h := newHarness(t)
	other := t.TempDir()
	h.mustRun(t, "-storage", other, "snap")
	if h.cfg.Storage != other {
		t.Fatalf("storage %q", h.cfg.Storage)
	}
	if _, err := h.run(t, "-backend", "floppy", "gallery", "list"); err == nil {
		t.Fatal("unknown backend should fail")
	}
}

func TestBoothWiring(t *testing.T) {
	h := newHarness(t)
	var ran *booth.Booth
	orig := runBoothFunc
	runBoothFunc = func(b *booth.Booth) error {
		ran = b
		return nil
	}
	t.Cleanup(func() { runBoothFunc = orig })

	h.mustRun(t, "-theme", "neon", "booth", "-frame", "minimal")
	if ran == nil {
		t.Fatal("booth did not run")
	}
	if got := strings.TrimSpace(h.mustRun(t, "theme", "get")); got != "neon" {
		t.Fatalf("-theme should persist, got %q", got)
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	h := newHarness(t)
	h.cfg.BrandTitle = "Party Booth"
	out := h.mustRun(t, "config", "print")
	if !strings.Contains(out, "brand_title = Party Booth") || !strings.Contains(out, "[collage]") {
		t.Fatalf("config print %q", out)
	}
	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	h.mustRun(t, "config", "-o", path, "save")
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := config.Parse(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BrandTitle != "Party Booth" || cfg.Storage != h.cfg.Storage {
		t.Fatalf("saved config %+v", cfg)
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	if out := h.mustRun(t, "version"); !strings.HasPrefix(out, "photobooth version "+version) {
		t.Fatalf("version %q", out)
	}
}
