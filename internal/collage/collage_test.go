package collage

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/photobooth/internal/photos"
	"github.com/example/photobooth/internal/render"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// near tolerates resampler rounding.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return int(x)-int(y) <= 2 && int(y)-int(x) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func staticSource(id string, img image.Image) Source {
	return Source{ID: id, Load: func(context.Context) (image.Image, error) { return img, nil }}
}

func TestLayoutByCount(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		n    int
		want []render.Rect
	}{
		{n: 0},
		{n: 1, want: []render.Rect{{X: 24, Y: 24, W: 1152, H: 1152}}},
		{n: 2, want: []render.Rect{
			{X: 24, Y: 24, W: 1152, H: 564},
			{X: 24, Y: 612, W: 1152, H: 564},
		}},
		{n: 3, want: []render.Rect{
			{X: 24, Y: 24, W: 564, H: 564},
			{X: 612, Y: 24, W: 564, H: 564},
			{X: 24, Y: 612, W: 564, H: 564},
		}},
		{n: 4, want: []render.Rect{
			{X: 24, Y: 24, W: 564, H: 564},
			{X: 612, Y: 24, W: 564, H: 564},
			{X: 24, Y: 612, W: 564, H: 564},
			{X: 612, Y: 612, W: 564, H: 564},
		}},
	}
	for _, tt := range tests {
		got := Layout(tt.n, opts)
		if len(got) != len(tt.want) {
			t.Fatalf("n=%d: %d cells want %d", tt.n, len(got), len(tt.want))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("n=%d cell %d: got %+v want %+v", tt.n, i, got[i], tt.want[i])
			}
		}
	}
	if got := Layout(7, opts); len(got) != MaxPhotos {
		t.Fatalf("layout should clamp to %d cells, got %d", MaxPhotos, len(got))
	}
}

func TestRadiusPolicy(t *testing.T) {
	cell := render.Rect{W: 500, H: 500}
	fixed := RadiusPolicy{}
	if r := fixed.For(1, cell, 1200); r != 64 {
		t.Fatalf("one photo radius %v", r)
	}
	if r := fixed.For(2, cell, 1200); r != 48 {
		t.Fatalf("two photo radius %v", r)
	}
	if r := fixed.For(4, cell, 600); r != 20 {
		t.Fatalf("grid radius at half size %v", r)
	}
	if r := (RadiusPolicy{Fraction: 0.1}).For(1, cell, 1200); r != 50 {
		t.Fatalf("proportional radius %v", r)
	}
}

func TestBuildNoPhotos(t *testing.T) {
	if _, err := Build(context.Background(), nil, DefaultOptions()); !errors.Is(err, ErrNoPhotos) {
		t.Fatalf("expected ErrNoPhotos, got %v", err)
	}
}

func TestBuildThreePhotosLeavesFourthCellEmpty(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	out, err := Build(context.Background(), []Source{
		staticSource("a", solid(300, 200, red)),
		staticSource("b", solid(200, 300, green)),
		staticSource("c", solid(100, 100, blue)),
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 1200, 1200) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if got := out.RGBAAt(300, 300); !near(got, red) {
		t.Fatalf("first cell %+v", got)
	}
	if got := out.RGBAAt(900, 300); !near(got, green) {
		t.Fatalf("second cell %+v", got)
	}
	if got := out.RGBAAt(300, 800); !near(got, blue) {
		t.Fatalf("third cell %+v", got)
	}
	bg := color.RGBA{R: 0x02, G: 0x06, B: 0x17, A: 255}
	if got := out.RGBAAt(900, 800); got != bg {
		t.Fatalf("fourth cell should be background, got %+v", got)
	}
	// Rounded corner of the first cell stays background.
	if got := out.RGBAAt(25, 25); got != bg {
		t.Fatalf("cell corner should be clipped, got %+v", got)
	}
}

func TestBuildUsesAtMostFour(t *testing.T) {
	var loads atomic.Int32
	src := func(id string) Source {
		return Source{ID: id, Load: func(context.Context) (image.Image, error) {
			loads.Add(1)
			return solid(10, 10, color.RGBA{A: 255}), nil
		}}
	}
	_, err := Build(context.Background(), []Source{src("1"), src("2"), src("3"), src("4"), src("5")}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := loads.Load(); got != 4 {
		t.Fatalf("loaded %d sources want 4", got)
	}
}

func TestBuildIsAllOrNothing(t *testing.T) {
	boom := errors.New("corrupt jpeg")
	sources := []Source{
		staticSource("ok", solid(10, 10, color.RGBA{A: 255})),
		{ID: "bad", Load: func(context.Context) (image.Image, error) { return nil, boom }},
		{ID: "slow", Load: func(ctx context.Context) (image.Image, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return solid(10, 10, color.RGBA{A: 255}), nil
			}
		}},
	}
	start := time.Now()
	out, err := Build(context.Background(), sources, DefaultOptions())
	if out != nil {
		t.Fatal("no collage should be produced when a source fails")
	}
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("DecodeError should wrap the cause: %v", err)
	}
	if strings.Join(derr.IDs, ",") != "bad" {
		t.Fatalf("failed ids %v", derr.IDs)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("a failure should cancel the remaining loads")
	}
}

func TestFromRecordsKeepsSelectionOrder(t *testing.T) {
	records := []photos.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := FromRecords(records, []string{"c", "gone", "a"})
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Fatalf("sources %+v", got)
	}
}

func TestSelectionCap(t *testing.T) {
	var s Selection
	for _, id := range []string{"1", "2", "3", "4"} {
		if on, err := s.Toggle(id); !on || err != nil {
			t.Fatalf("Toggle(%s) = %v, %v", id, on, err)
		}
	}
	if _, err := s.Toggle("5"); !errors.Is(err, ErrSelectionFull) {
		t.Fatalf("fifth pick: %v", err)
	}
	if strings.Join(s.IDs(), ",") != "1,2,3,4" {
		t.Fatalf("selection changed after rejected pick: %v", s.IDs())
	}
	if on, _ := s.Toggle("2"); on {
		t.Fatal("toggling a selected id should deselect it")
	}
	if on, err := s.Toggle("5"); !on || err != nil {
		t.Fatalf("pick after deselect: %v, %v", on, err)
	}
	if strings.Join(s.IDs(), ",") != "1,3,4,5" {
		t.Fatalf("order %v", s.IDs())
	}
}

func TestSelectionSetAndPrune(t *testing.T) {
	var s Selection
	s.Set([]string{"a", "a", "b", "c", "d", "e"})
	if strings.Join(s.IDs(), ",") != "a,b,c,d" {
		t.Fatalf("Set: %v", s.IDs())
	}
	s.Prune([]photos.Record{{ID: "b"}, {ID: "d"}})
	if strings.Join(s.IDs(), ",") != "b,d" {
		t.Fatalf("Prune: %v", s.IDs())
	}
}

func TestLatest(t *testing.T) {
	records := []photos.Record{
		{ID: "jan", CreatedAt: "2026-01-01T00:00:00.000Z"},
		{ID: "may", CreatedAt: "2026-05-01T00:00:00.000Z"},
		{ID: "mar", CreatedAt: "2026-03-01T00:00:00.000Z"},
		{ID: "feb", CreatedAt: "2026-02-01T00:00:00.000Z"},
		{ID: "apr", CreatedAt: "2026-04-01T00:00:00.000Z"},
	}
	if got := strings.Join(Latest(records, 4), ","); got != "may,apr,mar,feb" {
		t.Fatalf("Latest = %s", got)
	}
	if records[0].ID != "jan" {
		t.Fatal("Latest reordered its input")
	}
	if got := Latest(records[:2], 4); len(got) != 2 {
		t.Fatalf("Latest with fewer records = %v", got)
	}
	for _, n := range []int{0, -1} {
		if got := Latest(records, n); len(got) != 0 {
			t.Fatalf("Latest(%d) = %v", n, got)
		}
	}
}

func TestFilename(t *testing.T) {
	at := time.UnixMilli(1767225600123)
	if got := Filename(at); got != "smile-collage-1767225600123.png" {
		t.Fatalf("Filename = %s", got)
	}
}
