// Package collage arranges up to four stored photos into one square image
// with a branded bar along the bottom.
package collage

import (
	"image/color"

	"github.com/example/photobooth/internal/compose"
	"github.com/example/photobooth/internal/render"
)

// MaxPhotos is the most photos a collage holds.
const MaxPhotos = 4

// baseSize is the canvas size the fixed measurements are written for.
const baseSize = 1200.0

// RadiusPolicy picks the corner radius of each cell.
type RadiusPolicy struct {
	// Fraction, when positive, sizes corners as a fraction of cell width.
	// Otherwise fixed radii per layout are used: 64 for one photo, 48 for
	// two and 40 for the grid, scaled with the canvas.
	Fraction float64
}

// For returns the radius for a cell in an n-photo layout on a canvas of
// the given size.
func (p RadiusPolicy) For(n int, cell render.Rect, size float64) float64 {
	if p.Fraction > 0 {
		return cell.W * p.Fraction
	}
	scale := size / baseSize
	switch n {
	case 1:
		return 64 * scale
	case 2:
		return 48 * scale
	}
	return 40 * scale
}

// Options controls the collage canvas.
type Options struct {
	Size       int
	Gap        float64
	Radius     RadiusPolicy
	Background color.NRGBA
	Branding   compose.Branding
	Fonts      *render.Fonts
}

// DefaultOptions returns the stock 1200px layout.
func DefaultOptions() Options {
	return Options{
		Size:       1200,
		Gap:        24,
		Background: render.MustHex("#020617"),
		Branding:   compose.DefaultBranding(),
	}
}

// Layout returns the cell rectangles for n photos, in drawing order.
// Counts above MaxPhotos are clamped; n <= 0 has no cells.
//
//	n=1: one cell inset by the gap on every side
//	n=2: two full-width cells stacked
//	n=3,4: a 2×2 grid filled row by row; with three the last cell stays empty
func Layout(n int, opts Options) []render.Rect {
	if n <= 0 {
		return nil
	}
	n = min(n, MaxPhotos)
	size := float64(opts.Size)
	gap := opts.Gap
	switch n {
	case 1:
		return []render.Rect{{X: gap, Y: gap, W: size - gap*2, H: size - gap*2}}
	case 2:
		cellW := size - gap*2
		cellH := (size - gap*3) / 2
		cells := make([]render.Rect, 2)
		for i := range cells {
			cells[i] = render.Rect{X: gap, Y: gap + float64(i)*(cellH+gap), W: cellW, H: cellH}
		}
		return cells
	}
	cell := (size - gap*3) / 2
	cells := make([]render.Rect, n)
	for i := range cells {
		row := float64(i / 2)
		col := float64(i % 2)
		cells[i] = render.Rect{
			X: gap + col*(cell+gap),
			Y: gap + row*(cell+gap),
			W: cell,
			H: cell,
		}
	}
	return cells
}
