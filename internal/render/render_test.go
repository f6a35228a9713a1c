package render

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestCoverRect(t *testing.T) {
	tests := []struct {
		name   string
		sw, sh float64
		dst    Rect
		want   Rect
	}{
		{
			name: "wide source into square crops sides",
			sw:   200, sh: 100,
			dst:  Rect{W: 50, H: 50},
			want: Rect{X: 50, Y: 0, W: 100, H: 100},
		},
		{
			name: "tall source into wide cell crops top and bottom",
			sw:   100, sh: 400,
			dst:  Rect{X: 10, Y: 10, W: 100, H: 50},
			want: Rect{X: 0, Y: 175, W: 100, H: 50},
		},
		{
			name: "matching aspect keeps everything",
			sw:   640, sh: 480,
			dst:  Rect{W: 320, H: 240},
			want: Rect{W: 640, H: 480},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoverRect(tt.sw, tt.sh, tt.dst)
			if !rectNear(got, tt.want) {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
			if math.Abs(got.W/got.H-tt.dst.W/tt.dst.H) > 1e-9 {
				t.Fatalf("crop aspect %v differs from cell aspect %v", got.W/got.H, tt.dst.W/tt.dst.H)
			}
		})
	}
}

func TestCoverRectDegenerate(t *testing.T) {
	if got := CoverRect(0, 10, Rect{W: 5, H: 5}); !got.Empty() {
		t.Fatalf("expected empty crop, got %+v", got)
	}
	if got := CoverRect(10, 10, Rect{}); !got.Empty() {
		t.Fatalf("expected empty crop, got %+v", got)
	}
}

func rectNear(a, b Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}

func TestDrawCoverFillsAndCentres(t *testing.T) {
	// Left third red, middle green, right third blue.
	src := image.NewRGBA(image.Rect(0, 0, 90, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 90; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 30 && x < 60 {
				c = color.RGBA{G: 255, A: 255}
			} else if x >= 60 {
				c = color.RGBA{B: 255, A: 255}
			}
			src.SetRGBA(x, y, c)
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	DrawCover(dst, src, Rect{X: 5, Y: 5, W: 30, H: 30}, nil)

	if got := dst.RGBAAt(20, 20); got.G < 200 || got.R > 40 || got.B > 40 {
		t.Fatalf("centre should be the green middle third, got %+v", got)
	}
	if got := dst.RGBAAt(2, 2); got.A != 0 {
		t.Fatalf("pixel outside the cell was painted: %+v", got)
	}
	if got := dst.RGBAAt(36, 20); got.A != 0 {
		t.Fatalf("pixel right of the cell was painted: %+v", got)
	}
	if got := dst.RGBAAt(6, 34); got.A == 0 {
		t.Fatalf("cell corner should be covered")
	}
}

func TestDrawCoverRespectsClip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	cell := Rect{X: 0, Y: 0, W: 100, H: 100}
	clip := RoundedRect(0, 0, 100, 100, 40).Mask(dst.Bounds())
	DrawCover(dst, img, cell, clip)

	if got := dst.RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("rounded corner should stay transparent, got %+v", got)
	}
	if got := dst.RGBAAt(50, 50); got.A != 255 {
		t.Fatalf("cell centre should be opaque, got %+v", got)
	}
	if got := dst.RGBAAt(50, 1); got.A == 0 {
		t.Fatalf("top edge midpoint should be inside the clip")
	}
}

func TestRoundedRectClampsRadius(t *testing.T) {
	bounds := image.Rect(0, 0, 20, 10)
	// A radius larger than half the height makes a pill, not a broken path.
	mask := RoundedRect(0, 0, 20, 10, 100).Mask(bounds)
	if a := mask.AlphaAt(10, 5).A; a != 255 {
		t.Fatalf("pill centre alpha=%d", a)
	}
	if a := mask.AlphaAt(0, 0).A; a != 0 {
		t.Fatalf("pill corner alpha=%d", a)
	}
}

func TestRoundedRectZeroRadiusIsRect(t *testing.T) {
	mask := RoundedRect(2, 2, 6, 6, 0).Mask(image.Rect(0, 0, 10, 10))
	if a := mask.AlphaAt(2, 2).A; a != 255 {
		t.Fatalf("corner pixel alpha=%d", a)
	}
	if a := mask.AlphaAt(8, 8).A; a != 0 {
		t.Fatalf("outside pixel alpha=%d", a)
	}
}

func TestStrokeRectHasHole(t *testing.T) {
	mask := StrokeRect(5, 5, 20, 20, 4).Mask(image.Rect(0, 0, 30, 30))
	if a := mask.AlphaAt(5, 15).A; a != 255 {
		t.Fatalf("stroke alpha=%d", a)
	}
	if a := mask.AlphaAt(15, 15).A; a != 0 {
		t.Fatalf("interior should be empty, alpha=%d", a)
	}
}

func TestVerticalGradientStops(t *testing.T) {
	g := Vertical(0, 100,
		Stop{Offset: 0, Color: color.NRGBA{A: 0}},
		Stop{Offset: 0.5, Color: color.NRGBA{R: 10, A: 217}},
		Stop{Offset: 1, Color: color.NRGBA{R: 10, A: 250}},
	)
	top := g.At(0, -10).(color.NRGBA)
	if top.A != 0 {
		t.Fatalf("before start should clamp to first stop, got %+v", top)
	}
	mid := g.At(50, 49).(color.NRGBA)
	if mid.A < 205 || mid.A > 220 {
		t.Fatalf("midpoint alpha=%d", mid.A)
	}
	bottom := g.At(0, 500).(color.NRGBA)
	if bottom.A != 250 {
		t.Fatalf("after end should clamp to last stop, got %+v", bottom)
	}
}

func TestHorizontalGradientFadeKeepsColor(t *testing.T) {
	g := Horizontal(0, 100, Even(color.NRGBA{}, color.NRGBA{R: 200, A: 255})...)
	mid := g.At(50, 0).(color.NRGBA)
	if mid.A < 120 || mid.A > 135 {
		t.Fatalf("midpoint alpha=%d", mid.A)
	}
	if mid.R < 195 {
		t.Fatalf("fading from transparent should keep the visible color, got %+v", mid)
	}
	if end := g.At(150, 0).(color.NRGBA); end != (color.NRGBA{R: 200, A: 255}) {
		t.Fatalf("past the end should clamp to last stop, got %+v", end)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#1e293b", want: color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 255}},
		{in: "#0f172af2", want: color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xf2}},
		{in: "1e293b", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseHex(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseHex(%q) = %+v, %v", tt.in, got, err)
		}
	}
}

func TestDrawTextAlignment(t *testing.T) {
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	face, err := fonts.Face(600, 24)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	fill := image.NewUniform(color.NRGBA{A: 255})

	dst := image.NewRGBA(image.Rect(0, 0, 400, 100))
	centred := DrawText(dst, "Smile", 200, 50, TextStyle{Face: face, Fill: fill, Align: AlignCenter})
	if centred.Empty() {
		t.Fatal("expected glyph bounds")
	}
	mid := (centred.Min.X + centred.Max.X) / 2
	if mid < 195 || mid > 205 {
		t.Fatalf("centred text midpoint %d, want ~200", mid)
	}
	if centred.Min.Y > 50 || centred.Max.Y < 50 {
		t.Fatalf("middle baseline should straddle y=50, got %v", centred)
	}

	right := DrawText(image.NewRGBA(dst.Bounds()), "Smile", 380, 50, TextStyle{Face: face, Fill: fill, Align: AlignRight})
	if right.Max.X > 381 || right.Max.X < 370 {
		t.Fatalf("right-aligned text should end near 380, got %v", right)
	}
}

func TestDrawTextBoundsFollowOrigin(t *testing.T) {
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	face, err := fonts.Face(400, 20)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	st := TextStyle{Face: face, Fill: image.NewUniform(color.NRGBA{A: 255})}
	a := DrawText(image.NewRGBA(image.Rect(0, 0, 400, 200)), "Cheese", 40, 60, st)
	b := DrawText(image.NewRGBA(image.Rect(0, 0, 400, 200)), "Cheese", 90, 100, st)
	if a.Empty() || b != a.Add(image.Pt(50, 40)) {
		t.Fatalf("bounds %v then %v, want a shift of (50,40)", a, b)
	}
}

func TestFacesCachedPerWeightAndSize(t *testing.T) {
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	a, _ := fonts.Face(500, 20)
	b, _ := fonts.Face(500, 20)
	c, _ := fonts.Face(700, 20)
	if a != b {
		t.Fatal("expected cached face")
	}
	if a == c {
		t.Fatal("different weights should not share a face")
	}
}

func TestRoundedStrokeHasHole(t *testing.T) {
	m := RoundedStroke(10, 10, 80, 60, 12, 4).Mask(image.Rect(0, 0, 100, 80))
	if a := m.AlphaAt(50, 40).A; a != 0 {
		t.Fatalf("centre should be empty, got %d", a)
	}
	if a := m.AlphaAt(50, 10).A; a < 0xf0 {
		t.Fatalf("top edge should be stroked, got %d", a)
	}
	if a := m.AlphaAt(10, 10).A; a != 0 {
		t.Fatalf("rounded corner should stay empty, got %d", a)
	}
}
