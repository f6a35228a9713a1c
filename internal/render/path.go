package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opCube
	opClose
)

type pathOp struct {
	kind opKind
	pts  [3][2]float64
}

// Path is a vector outline in canvas coordinates. Subpaths wound in
// opposite directions cancel, which is how strokes are cut out.
type Path struct {
	ops []pathOp
}

func (p *Path) MoveTo(x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opMove, pts: [3][2]float64{{x, y}}})
}

func (p *Path) LineTo(x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opLine, pts: [3][2]float64{{x, y}}})
}

func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opCube, pts: [3][2]float64{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (p *Path) Close() {
	p.ops = append(p.ops, pathOp{kind: opClose})
}

// Empty reports whether the path has no segments.
func (p Path) Empty() bool { return len(p.ops) == 0 }

// Mask rasterizes the path into an alpha mask covering bounds. Coverage is
// antialiased.
func (p Path) Mask(bounds image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(bounds)
	if bounds.Empty() || p.Empty() {
		return mask
	}
	ox := float64(bounds.Min.X)
	oy := float64(bounds.Min.Y)
	pt := func(v [2]float64) (float32, float32) {
		return float32(v[0] - ox), float32(v[1] - oy)
	}
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	for _, op := range p.ops {
		switch op.kind {
		case opMove:
			z.MoveTo(pt(op.pts[0]))
		case opLine:
			z.LineTo(pt(op.pts[0]))
		case opCube:
			x1, y1 := pt(op.pts[0])
			x2, y2 := pt(op.pts[1])
			x3, y3 := pt(op.pts[2])
			z.CubeTo(x1, y1, x2, y2, x3, y3)
		case opClose:
			z.ClosePath()
		}
	}
	z.Draw(mask, bounds, image.Opaque, image.Point{})
	return mask
}

// Fill paints src through the path onto dst.
func (p Path) Fill(dst draw.Image, src image.Image) {
	b := dst.Bounds()
	draw.DrawMask(dst, b, src, b.Min, p.Mask(b), b.Min, draw.Over)
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// RoundedRect builds a closed rounded rectangle, clockwise from the top
// edge. The radius is clamped to half the shorter side.
func RoundedRect(x, y, w, h, radius float64) Path {
	var p Path
	if w <= 0 || h <= 0 {
		return p
	}
	r := math.Min(radius, math.Min(w/2, h/2))
	if r <= 0 {
		return RectPath(x, y, w, h)
	}
	k := r * kappa
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubeTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubeTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubeTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubeTo(x, y+r-k, x+r-k, y, x+r, y)
	p.Close()
	return p
}

// RectPath builds a closed axis-aligned rectangle, clockwise.
func RectPath(x, y, w, h float64) Path {
	var p Path
	if w <= 0 || h <= 0 {
		return p
	}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

// StrokeRect outlines the rectangle (x,y,w,h) with a line of the given
// width centred on its edges.
func StrokeRect(x, y, w, h, lineWidth float64) Path {
	half := lineWidth / 2
	p := RectPath(x-half, y-half, w+lineWidth, h+lineWidth)
	iw := w - lineWidth
	ih := h - lineWidth
	if iw <= 0 || ih <= 0 {
		return p
	}
	// Inner edge runs counter-clockwise to cut the hole.
	ix, iy := x+half, y+half
	p.MoveTo(ix, iy)
	p.LineTo(ix, iy+ih)
	p.LineTo(ix+iw, iy+ih)
	p.LineTo(ix+iw, iy)
	p.Close()
	return p
}

// RoundedStroke outlines a rounded rectangle with a line of the given
// width centred on its edge, like strokeRect after a roundRect path.
func RoundedStroke(x, y, w, h, radius, lineWidth float64) Path {
	half := lineWidth / 2
	p := RoundedRect(x-half, y-half, w+lineWidth, h+lineWidth, radius+half)
	ix, iy := x+half, y+half
	iw, ih := w-lineWidth, h-lineWidth
	if iw <= 0 || ih <= 0 {
		return p
	}
	r := math.Min(math.Max(radius-half, 0), math.Min(iw/2, ih/2))
	k := r * kappa
	// Counter-clockwise so the inner shape cuts a hole.
	p.MoveTo(ix+r, iy)
	p.CubeTo(ix+r-k, iy, ix, iy+r-k, ix, iy+r)
	p.LineTo(ix, iy+ih-r)
	p.CubeTo(ix, iy+ih-r+k, ix+r-k, iy+ih, ix+r, iy+ih)
	p.LineTo(ix+iw-r, iy+ih)
	p.CubeTo(ix+iw-r+k, iy+ih, ix+iw, iy+ih-r+k, ix+iw, iy+ih-r)
	p.LineTo(ix+iw, iy+r)
	p.CubeTo(ix+iw, iy+r-k, ix+iw-r+k, iy, ix+iw-r, iy)
	p.Close()
	return p
}
