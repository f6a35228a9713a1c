package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// ShadowOptions mirrors a 2D canvas shadow: a tinted, blurred copy of the
// shape painted underneath it.
type ShadowOptions struct {
	Color color.NRGBA
	// Blur is the canvas shadowBlur value. The Gaussian it stands for has a
	// standard deviation of Blur/2.
	Blur   float64
	Offset image.Point
}

// Visible reports whether painting the shadow would change any pixel.
func (o ShadowOptions) Visible() bool { return o.Color.A > 0 }

// boxPasses is how many box blurs are stacked to approximate a Gaussian.
const boxPasses = 3

// DropShadow paints a blurred copy of mask, tinted with opts.Color, onto
// dst. The caller draws the shape itself afterwards.
func DropShadow(dst draw.Image, mask *image.Alpha, opts ShadowOptions) {
	if mask == nil || !opts.Visible() {
		return
	}
	radius := int(math.Round(opts.Blur / 2))
	pad := radius * boxPasses
	mb := mask.Bounds()
	if mb.Empty() {
		return
	}

	// Grow the mask so the blur has room to spread past the shape edges.
	padded := image.NewAlpha(mb.Inset(-pad))
	draw.Draw(padded, mb, mask, mb.Min, draw.Src)
	blurred := padded
	for i := 0; i < boxPasses && radius > 0; i++ {
		blurred = blurAlpha(blurred, radius)
	}

	target := blurred.Bounds().Add(opts.Offset)
	draw.DrawMask(dst, target, image.NewUniform(opts.Color), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
}

// Glow is a DropShadow without offset, used for neon strokes and text.
func Glow(dst draw.Image, mask *image.Alpha, c color.NRGBA, blur float64) {
	DropShadow(dst, mask, ShadowOptions{Color: c, Blur: blur})
}

// blurAlpha is a separable box blur of the given radius. Pixels outside
// the mask count as transparent, so coverage fades out at the edges.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		out := image.NewAlpha(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewAlpha(bounds)
	dst := image.NewAlpha(bounds)
	window := 2*radius + 1

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			sum := prefix[x1+1] - prefix[x0]
			tmp.Pix[tmpStart+x] = uint8(sum / window)
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			sum := prefix[y1+1] - prefix[y0]
			dst.Pix[y*dst.Stride+x] = uint8(sum / window)
		}
	}

	return dst
}
