package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text run.
type Baseline int

const (
	// BaselineMiddle centres the em box on y.
	BaselineMiddle Baseline = iota
	BaselineAlphabetic
)

// Fonts resolves CSS-style weights to faces. Faces are cached per
// weight and size.
type Fonts struct {
	regular *opentype.Font
	medium  *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	weight int
	size   float64
}

var (
	defaultFontsOnce sync.Once
	defaultFonts     *Fonts
	defaultFontsErr  error
)

// DefaultFonts returns the embedded Go font family.
func DefaultFonts() (*Fonts, error) {
	defaultFontsOnce.Do(func() {
		defaultFonts, defaultFontsErr = NewFonts(goregular.TTF, gomedium.TTF, gobold.TTF)
	})
	return defaultFonts, defaultFontsErr
}

// NewFonts parses regular, medium and bold font data.
func NewFonts(regular, medium, bold []byte) (*Fonts, error) {
	r, err := opentype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	m, err := opentype.Parse(medium)
	if err != nil {
		return nil, fmt.Errorf("parse medium font: %w", err)
	}
	b, err := opentype.Parse(bold)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{regular: r, medium: m, bold: b, faces: map[faceKey]font.Face{}}, nil
}

// LoadFontFile uses a single TTF or OTF file for every weight.
func LoadFontFile(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFonts(data, data, data)
}

// Face returns a face for a CSS weight (400, 500, 600, 700) at size pixels.
func (f *Fonts) Face(weight int, size float64) (font.Face, error) {
	key := faceKey{weight: weight, size: size}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	src := f.regular
	switch {
	case weight >= 600:
		src = f.bold
	case weight >= 500:
		src = f.medium
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %d/%.1f: %w", weight, size, err)
	}
	f.faces[key] = face
	return face, nil
}

// TextStyle describes one fillText call.
type TextStyle struct {
	Face     font.Face
	Fill     image.Image
	Align    Align
	Baseline Baseline
	Shadow   ShadowOptions
}

// DrawText renders s anchored at (x, y). Fill is sampled in dst
// coordinates so gradients line up with the canvas. It returns the pixel
// bounds the glyphs cover.
func DrawText(dst draw.Image, s string, x, y float64, st TextStyle) image.Rectangle {
	if s == "" || st.Face == nil || st.Fill == nil {
		return image.Rectangle{}
	}
	dot := TextOrigin(st.Face, s, x, y, st.Align, st.Baseline)
	gb, _ := font.BoundString(st.Face, s)
	glyphs := image.Rect(
		(gb.Min.X + dot.X).Floor(),
		(gb.Min.Y + dot.Y).Floor(),
		(gb.Max.X + dot.X).Ceil(),
		(gb.Max.Y + dot.Y).Ceil(),
	)
	area := glyphs.Intersect(dst.Bounds())
	if area.Empty() {
		return area
	}

	mask := image.NewAlpha(glyphs)
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: st.Face, Dot: dot}
	d.DrawString(s)

	DropShadow(dst, mask, st.Shadow)
	draw.DrawMask(dst, area, st.Fill, area.Min, mask, area.Min, draw.Over)
	return area
}

// TextOrigin converts an anchor point into the Drawer dot.
func TextOrigin(face font.Face, s string, x, y float64, align Align, base Baseline) fixed.Point26_6 {
	width := font.MeasureString(face, s)
	left := x
	switch align {
	case AlignCenter:
		left = x - fixedToFloat(width)/2
	case AlignRight:
		left = x - fixedToFloat(width)
	}
	baseline := y
	if base == BaselineMiddle {
		m := face.Metrics()
		baseline = y + (fixedToFloat(m.Ascent)-fixedToFloat(m.Descent))/2
	}
	return fixed.Point26_6{X: floatToFixed(left), Y: floatToFixed(baseline)}
}

// MeasureText returns the advance width of s in pixels.
func MeasureText(face font.Face, s string) float64 {
	return fixedToFloat(font.MeasureString(face, s))
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
