// Package render holds the raster primitives the compositors share:
// cover-fit drawing, rounded-rect clip paths, blurred shadows and glows,
// linear gradients and text.
package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rect is a destination rectangle in canvas units.
type Rect struct {
	X, Y, W, H float64
}

// Bounds returns the smallest pixel rectangle covering r.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)),
		int(math.Ceil(r.Y+r.H)),
	)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// CoverRect returns the centred region of an sw×sh source that fills dst
// while keeping the source aspect ratio. The region is in source units,
// relative to the source origin.
func CoverRect(sw, sh float64, dst Rect) Rect {
	if sw <= 0 || sh <= 0 || dst.Empty() {
		return Rect{}
	}
	scale := math.Max(dst.W/sw, dst.H/sh)
	cw := dst.W / scale
	ch := dst.H / scale
	return Rect{X: (sw - cw) / 2, Y: (sh - ch) / 2, W: cw, H: ch}
}

// Interpolator is the resampler DrawCover uses.
var Interpolator xdraw.Interpolator = xdraw.CatmullRom

// DrawCover draws src into r on dst with cover semantics. When clip is
// non-nil only pixels where clip has coverage are touched; clip is indexed
// in dst coordinates.
func DrawCover(dst draw.Image, src image.Image, r Rect, clip image.Image) {
	DrawCoverWith(Interpolator, dst, src, r, clip)
}

// DrawCoverWith is DrawCover with an explicit resampler.
func DrawCoverWith(interp xdraw.Interpolator, dst draw.Image, src image.Image, r Rect, clip image.Image) {
	if src == nil || r.Empty() {
		return
	}
	sb := src.Bounds()
	crop := CoverRect(float64(sb.Dx()), float64(sb.Dy()), r)
	if crop.Empty() {
		return
	}
	db := r.Bounds().Intersect(dst.Bounds())
	if db.Empty() {
		return
	}
	scale := r.W / crop.W
	s2d := f64.Aff3{
		scale, 0, r.X - scale*(crop.X+float64(sb.Min.X)),
		0, scale, r.Y - scale*(crop.Y+float64(sb.Min.Y)),
	}

	// Resample into a scratch buffer the size of the cell so nothing spills
	// outside r, then composite through the clip.
	cell := image.NewRGBA(db)
	interp.Transform(cell, s2d, src, sb, xdraw.Src, nil)
	if clip == nil {
		draw.Draw(dst, db, cell, db.Min, draw.Over)
		return
	}
	draw.DrawMask(dst, db, cell, db.Min, clip, db.Min, draw.Over)
}
