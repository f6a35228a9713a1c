package booth

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/example/photobooth/internal/compose"
	"github.com/example/photobooth/internal/frames"
	"github.com/example/photobooth/internal/render"
)

// Overlay paints preview recipes over the live feed.
type Overlay struct {
	Fonts    *render.Fonts
	Branding compose.Branding
}

// previewBase is the feed height the recipe sizes are written for.
const previewBase = 480.0

// Draw paints recipe over feed, an area of dst already holding the
// camera frame.
func (o Overlay) Draw(dst draw.Image, feed image.Rectangle, recipe frames.PreviewRecipe) {
	if feed.Empty() {
		return
	}
	scale := float64(feed.Dy()) / previewBase
	px := func(v int) float64 { return float64(v) * scale }

	outer := render.Rect{X: float64(feed.Min.X), Y: float64(feed.Min.Y), W: float64(feed.Dx()), H: float64(feed.Dy())}
	inset := px(recipe.Inset)
	area := render.Rect{X: outer.X + inset, Y: outer.Y + inset, W: outer.W - 2*inset, H: outer.H - 2*inset}
	if area.Empty() {
		return
	}

	bars := map[string]render.Rect{}
	if b := recipe.TopBar; b != nil {
		r := barRect(b, outer, area, px(b.Height), true)
		o.fillBar(dst, b, r, area, px(b.Radius))
		bars["top"] = r
	}
	if b := recipe.BottomBar; b != nil {
		r := barRect(b, outer, area, px(b.Height), false)
		o.fillBar(dst, b, r, area, px(b.Radius))
		bars["bottom"] = r
	}
	if recipe.Sprockets > 0 {
		for _, name := range []string{"top", "bottom"} {
			if r, ok := bars[name]; ok {
				drawSprockets(dst, r, recipe.Sprockets, scale)
			}
		}
	}
	if b := recipe.Border; b != nil {
		o.drawBorder(dst, b, area, px(b.Width), px(b.Radius), scale)
	}
	o.drawLabels(dst, recipe.Labels, bars, scale)
}

func barRect(b *frames.PreviewBar, outer, area render.Rect, h float64, top bool) render.Rect {
	span := outer
	if b.Inset {
		span = area
	}
	y := span.Y
	if !top {
		y = span.Y + span.H - h
	}
	return render.Rect{X: span.X, Y: y, W: span.W, H: h}
}

func (o Overlay) fillBar(dst draw.Image, b *frames.PreviewBar, r, area render.Rect, radius float64) {
	c, err := render.ParseHex(b.Color)
	if err != nil {
		return
	}
	var src image.Image = image.NewUniform(c)
	transparent := render.WithAlpha(c, 0)
	switch b.Fade {
	case frames.FadeDown:
		src = render.Vertical(r.Y, r.Y+r.H, render.Even(c, transparent)...)
	case frames.FadeUp:
		src = render.Vertical(r.Y, r.Y+r.H, render.Even(transparent, c)...)
	}
	if radius <= 0 || !b.Inset {
		render.FillRect(dst, r, src)
		return
	}
	// Inset bars follow the rounded corners of the frame area.
	bounds := r.Bounds().Intersect(dst.Bounds())
	if bounds.Empty() {
		return
	}
	mask := render.RoundedRect(area.X, area.Y, area.W, area.H, radius).Mask(bounds)
	draw.DrawMask(dst, bounds, src, bounds.Min, mask, bounds.Min, draw.Over)
}

func drawSprockets(dst draw.Image, bar render.Rect, n int, scale float64) {
	hole := color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xe6}
	w, h := 10*scale, 6*scale
	y := bar.Y + (bar.H-h)/2
	step := bar.W / float64(n+1)
	for i := 1; i <= n; i++ {
		x := bar.X + step*float64(i) - w/2
		p := render.RoundedRect(x, y, w, h, 2*scale)
		p.Fill(dst, image.NewUniform(hole))
	}
}

func (o Overlay) drawBorder(dst draw.Image, b *frames.PreviewBorder, area render.Rect, width, radius, scale float64) {
	if width <= 0 {
		return
	}
	path := render.RoundedStroke(area.X, area.Y, area.W, area.H, radius, width)
	pad := int(math.Ceil(width + 16*scale))
	bounds := area.Bounds().Inset(-pad).Intersect(dst.Bounds())
	mask := path.Mask(bounds)
	if b.Glow != "" {
		if g, err := render.ParseHex(b.Glow); err == nil {
			render.Glow(dst, mask, g, 16*scale)
		}
	}
	var src image.Image
	switch {
	case len(b.Gradient) > 0:
		src = render.Horizontal(area.X, area.X+area.W, render.Even(parseAll(b.Gradient)...)...)
	case b.Color != "":
		c, err := render.ParseHex(b.Color)
		if err != nil {
			return
		}
		src = image.NewUniform(c)
	default:
		return
	}
	draw.DrawMask(dst, bounds, src, bounds.Min, mask, bounds.Min, draw.Over)
}

func (o Overlay) drawLabels(dst draw.Image, labels []frames.PreviewLabel, bars map[string]render.Rect, scale float64) {
	if o.Fonts == nil {
		return
	}
	byBar := map[string][]frames.PreviewLabel{}
	for _, l := range labels {
		byBar[l.Bar] = append(byBar[l.Bar], l)
	}
	for name, group := range byBar {
		bar, ok := bars[name]
		if !ok {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Line < group[j].Line })
		lines := group[len(group)-1].Line + 1
		lineH := bar.H / float64(lines+1)
		for _, l := range group {
			o.drawLabel(dst, l, bar, bar.Y+lineH*float64(l.Line+1), scale)
		}
	}
}

func (o Overlay) drawLabel(dst draw.Image, l frames.PreviewLabel, bar render.Rect, y, scale float64) {
	text := o.Branding.Title
	if l.Text == frames.LabelWatermark {
		text = o.Branding.Watermark
	}
	face, err := o.Fonts.Face(l.Weight, math.Max(1, float64(l.Size)*scale*1.6))
	if err != nil {
		return
	}
	margin := 12 * scale
	st := render.TextStyle{Face: face, Baseline: render.BaselineMiddle}
	x := bar.X + bar.W/2
	switch l.Align {
	case "left":
		st.Align, x = render.AlignLeft, bar.X+margin
	case "right":
		st.Align, x = render.AlignRight, bar.X+bar.W-margin
	default:
		st.Align = render.AlignCenter
	}
	switch {
	case len(l.Gradient) > 0:
		w := render.MeasureText(face, text)
		left := x
		if st.Align == render.AlignCenter {
			left = x - w/2
		} else if st.Align == render.AlignRight {
			left = x - w
		}
		st.Fill = render.Horizontal(left, left+w, render.Even(parseAll(l.Gradient)...)...)
	default:
		c, err := render.ParseHex(l.Color)
		if err != nil {
			return
		}
		st.Fill = image.NewUniform(c)
	}
	if l.Glow != "" {
		if g, err := render.ParseHex(l.Glow); err == nil {
			st.Shadow = render.ShadowOptions{Color: g, Blur: 12 * scale}
		}
	}
	render.DrawText(dst, text, x, y, st)
}

func parseAll(hex []string) []color.NRGBA {
	out := make([]color.NRGBA, 0, len(hex))
	for _, h := range hex {
		if c, err := render.ParseHex(h); err == nil {
			out = append(out, c)
		}
	}
	return out
}
