package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// Stop is a gradient color stop; Offset is in [0,1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient is an unbounded image whose color varies along a line.
// Points before the start take the first stop, points past the end the
// last. Stops are interpolated in premultiplied space so fading to a
// transparent stop does not darken the visible color.
type LinearGradient struct {
	g gg.Gradient
}

// Vertical builds a gradient running down the y axis.
func Vertical(y0, y1 float64, stops ...Stop) *LinearGradient {
	return newGradient(gg.NewLinearGradient(0, y0, 0, y1), stops)
}

// Horizontal builds a gradient running along the x axis.
func Horizontal(x0, x1 float64, stops ...Stop) *LinearGradient {
	return newGradient(gg.NewLinearGradient(x0, 0, x1, 0), stops)
}

// Even spreads colors uniformly between 0 and 1.
func Even(colors ...color.NRGBA) []Stop {
	stops := make([]Stop, len(colors))
	for i, c := range colors {
		off := 0.0
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		stops[i] = Stop{Offset: off, Color: c}
	}
	return stops
}

func newGradient(g gg.Gradient, stops []Stop) *LinearGradient {
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
	return &LinearGradient{g: g}
}

func (l *LinearGradient) ColorModel() color.Model { return color.NRGBAModel }

func (l *LinearGradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (l *LinearGradient) At(x, y int) color.Color {
	return color.NRGBAModel.Convert(l.g.ColorAt(x, y))
}

// FillRect paints src over dst inside r. src is sampled in dst coordinates.
func FillRect(dst draw.Image, r Rect, src image.Image) {
	b := r.Bounds().Intersect(dst.Bounds())
	if b.Empty() {
		return
	}
	draw.Draw(dst, b, src, b.Min, draw.Over)
}

// FillColor paints a solid color over dst inside r.
func FillColor(dst draw.Image, r Rect, c color.NRGBA) {
	FillRect(dst, r, image.NewUniform(c))
}
