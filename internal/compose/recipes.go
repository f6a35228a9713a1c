package compose

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/photobooth/internal/render"
)

// canvas is the scratch state for drawing one frame.
type canvas struct {
	dst   *image.RGBA
	photo *image.RGBA
	l     layout
	fonts *render.Fonts
	brand Branding
}

var (
	slate900 = render.MustHex("#0f172a")
	slate800 = render.MustHex("#1e293b")
	slate500 = render.MustHex("#64748b")
	slate400 = render.MustHex("#94a3b8")
	slate300 = render.MustHex("#cbd5e1")
	slate100 = render.MustHex("#f1f5f9")
	pink500  = render.MustHex("#ec4899")
	purple   = render.MustHex("#a855f7")
	lilac    = render.MustHex("#e9d5ff")
)

type textOpts struct {
	weight int
	size   float64
	fill   image.Image
	align  render.Align
	shadow render.ShadowOptions
}

func (c *canvas) text(s string, x, y float64, o textOpts) error {
	face, err := c.fonts.Face(o.weight, o.size)
	if err != nil {
		return err
	}
	render.DrawText(c.dst, s, x, y, render.TextStyle{
		Face:     face,
		Fill:     o.fill,
		Align:    o.align,
		Baseline: render.BaselineMiddle,
		Shadow:   o.shadow,
	})
	return nil
}

func (c *canvas) background(col color.NRGBA) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) drawPhoto() {
	r := c.photo.Bounds().Add(c.l.photo)
	draw.Draw(c.dst, r, c.photo, image.Point{}, draw.Over)
}

func (c *canvas) photoMask() *image.Alpha {
	r := c.photo.Bounds().Add(c.l.photo)
	mask := image.NewAlpha(r)
	draw.Draw(mask, r, image.Opaque, image.Point{}, draw.Src)
	return mask
}

func solid(col color.NRGBA) image.Image { return image.NewUniform(col) }

// polaroid: white card, thick bottom margin holding title and watermark.
func (c *canvas) polaroid() error {
	l := c.l
	c.background(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	c.drawPhoto()

	shadow := render.ShadowOptions{Color: render.RGBA(0, 0, 0, 0.1), Blur: 20, Offset: image.Pt(0, 10)}
	labelY := l.h + l.top + l.bottom/2
	if err := c.text(c.brand.Title, l.canvasW/2, labelY-l.bottom*0.15, textOpts{
		weight: 600, size: l.w * 0.045, fill: solid(slate800), align: render.AlignCenter, shadow: shadow,
	}); err != nil {
		return err
	}
	return c.text(c.brand.Watermark, l.canvasW/2, labelY+l.bottom*0.12, textOpts{
		weight: 500, size: l.w * 0.028, fill: solid(slate500), align: render.AlignCenter, shadow: shadow,
	})
}

// minimal: thin off-white mat, soft photo shadow, one caption line with
// the brand left and the watermark right.
func (c *canvas) minimal() error {
	l := c.l
	c.background(render.MustHex("#fafafa"))
	render.DropShadow(c.dst, c.photoMask(), render.ShadowOptions{Color: render.RGBA(0, 0, 0, 0.08), Blur: 15})
	c.drawPhoto()

	labelY := l.h + l.border*2.2
	size := l.w * 0.025
	if err := c.text(c.brand.Watermark, l.canvasW-l.border*1.5, labelY, textOpts{
		weight: 500, size: size, fill: solid(slate400), align: render.AlignRight,
	}); err != nil {
		return err
	}
	return c.text(c.brand.Title, l.border*1.5, labelY, textOpts{
		weight: 500, size: size, fill: solid(slate300), align: render.AlignLeft,
	})
}

// filmHoles is the number of sprocket holes per side.
const filmHoles = 7

// film: dark strip with sprocket holes down both sides, title top left and
// watermark bottom right.
func (c *canvas) film() error {
	l := c.l
	c.background(slate900)
	c.drawPhoto()

	holeSize := l.side * 0.4
	holeGap := l.h / 8
	for i := 0; i < filmHoles; i++ {
		y := l.top + float64(i)*holeGap + holeGap/2 - holeSize/2
		render.FillColor(c.dst, render.Rect{X: l.side * 0.3, Y: y, W: holeSize, H: holeSize}, slate800)
		render.FillColor(c.dst, render.Rect{X: l.canvasW - l.side*0.3 - holeSize, Y: y, W: holeSize, H: holeSize}, slate800)
	}

	if err := c.text(c.brand.Title, l.side*2, l.top/2, textOpts{
		weight: 600, size: l.w * 0.035, fill: solid(slate100), align: render.AlignLeft,
	}); err != nil {
		return err
	}
	return c.text(c.brand.Watermark, l.canvasW-l.side*2, l.h+l.top+l.bottom/2, textOpts{
		weight: 500, size: l.w * 0.028, fill: solid(slate400), align: render.AlignRight,
	})
}

// neon: glowing pink outline, gradient bars fading into the photo, and a
// glowing title in the bottom bar.
func (c *canvas) neon() error {
	l := c.l
	b := l.border
	c.background(render.MustHex("#0a0118"))

	stroke := render.StrokeRect(b/2, b/2, l.canvasW-b, l.canvasH-b, b/2).Mask(c.dst.Bounds())
	render.Glow(c.dst, stroke, pink500, 25)
	draw.DrawMask(c.dst, c.dst.Bounds(), solid(pink500), image.Point{}, stroke, image.Point{}, draw.Over)

	c.drawPhoto()

	top := render.Vertical(0, l.barTop+b,
		render.Stop{Offset: 0, Color: render.WithAlpha(slate900, 0.98)},
		render.Stop{Offset: 1, Color: render.WithAlpha(slate900, 0)},
	)
	render.FillRect(c.dst, render.Rect{X: b, Y: b, W: l.canvasW - b*2, H: l.barTop}, top)

	barY := l.h + b + l.barTop
	bottom := render.Vertical(barY, l.canvasH,
		render.Stop{Offset: 0, Color: render.WithAlpha(slate900, 0)},
		render.Stop{Offset: 0.5, Color: render.WithAlpha(slate900, 0.85)},
		render.Stop{Offset: 1, Color: render.WithAlpha(slate900, 0.98)},
	)
	render.FillRect(c.dst, render.Rect{X: b, Y: barY, W: l.canvasW - b*2, H: l.barBottom + b}, bottom)

	labelY := barY + l.barBottom/2
	if err := c.text(c.brand.Title, l.canvasW/2, labelY, textOpts{
		weight: 700, size: l.w * 0.042, fill: solid(lilac), align: render.AlignCenter,
		shadow: render.ShadowOptions{Color: purple, Blur: 15},
	}); err != nil {
		return err
	}
	return c.text(c.brand.Watermark, l.canvasW-b*2, labelY+l.barBottom*0.22, textOpts{
		weight: 500, size: l.w * 0.026, fill: solid(slate400), align: render.AlignRight,
	})
}
