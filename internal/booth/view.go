package booth

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/photobooth/internal/camera"
	"github.com/example/photobooth/internal/frames"
	"github.com/example/photobooth/internal/photos"
	"github.com/example/photobooth/internal/render"
	"github.com/example/photobooth/internal/session"
	"github.com/example/photobooth/internal/theme"
)

const (
	statusHeight = 40
	stripHeight  = 112
	margin       = 16
	feedRadius   = 18
)

const keyHelp = "space capture · f flip · m frame · t theme · c copy · q quit"

// view is everything one paint needs, copied out under the booth lock.
type view struct {
	palette *theme.Theme
	neon    bool

	state  session.State
	errMsg string
	frame  image.Image
	mode   frames.Mode
	facing camera.Facing
	notice session.Notice

	message string
	flash   float64 // remaining flash strength in [0, 1]

	thumbs []image.Image
	usage  photos.Usage
}

// layout splits the window into the status bar, the feed and the gallery
// strip.
func layout(bounds image.Rectangle, frame image.Image, withStrip bool) (status, feed, strip image.Rectangle) {
	status = image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+statusHeight)
	bottom := bounds.Max.Y
	if withStrip {
		strip = image.Rect(bounds.Min.X, bounds.Max.Y-stripHeight, bounds.Max.X, bounds.Max.Y)
		bottom = strip.Min.Y
	}
	area := image.Rect(bounds.Min.X+margin, status.Max.Y+margin, bounds.Max.X-margin, bottom-margin)
	if area.Empty() {
		return status, image.Rectangle{}, strip
	}
	aspect := 4.0 / 3.0
	if frame != nil && !frame.Bounds().Empty() {
		fb := frame.Bounds()
		aspect = float64(fb.Dx()) / float64(fb.Dy())
	}
	w, h := float64(area.Dx()), float64(area.Dy())
	if w/h > aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	x := area.Min.X + int(math.Round((float64(area.Dx())-w)/2))
	y := area.Min.Y + int(math.Round((float64(area.Dy())-h)/2))
	feed = image.Rect(x, y, x+int(math.Round(w)), y+int(math.Round(h)))
	return status, feed, strip
}

func (o Overlay) paintView(dst *image.RGBA, v view) {
	p := v.palette
	if p == nil {
		p = theme.Default()
	}
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(p.Background), image.Point{}, draw.Src)

	status, feed, strip := layout(bounds, v.frame, len(v.thumbs) > 0)
	o.paintStatus(dst, status, p, v)

	if !feed.Empty() {
		fr := rectOf(feed)
		clip := render.RoundedRect(fr.X, fr.Y, fr.W, fr.H, feedRadius).Mask(feed)
		draw.DrawMask(dst, feed, image.NewUniform(p.Surface), image.Point{}, clip, feed.Min, draw.Over)
		switch {
		case v.state == session.Failed:
			o.paintError(dst, fr, p, v.errMsg)
		case v.frame == nil:
			o.text(dst, "Starting camera…", fr.X+fr.W/2, fr.Y+fr.H/2, 20, 500, p.Muted, render.AlignCenter)
		default:
			render.DrawCover(dst, v.frame, fr, clip)
			if d, err := frames.Get(string(v.mode)); err == nil {
				o.Draw(dst, feed, d.Preview.Themed(v.neon))
			}
		}
		if v.flash > 0 {
			c := render.WithAlpha(p.Flash, v.flash*float64(p.Flash.A)/255)
			draw.DrawMask(dst, feed, image.NewUniform(c), image.Point{}, clip, feed.Min, draw.Over)
		}
		o.paintToast(dst, fr, p, v)
	}

	if len(v.thumbs) > 0 {
		paintStrip(dst, strip, p, v.thumbs)
	}
}

func (o Overlay) paintStatus(dst *image.RGBA, r image.Rectangle, p *theme.Theme, v view) {
	render.FillColor(dst, rectOf(r), p.Surface)
	mid := float64(r.Min.Y+r.Max.Y) / 2
	label := string(v.mode)
	if d, err := frames.Get(string(v.mode)); err == nil {
		label = d.Icon + " " + d.Label
	}
	left := fmt.Sprintf("%s  ·  %s camera", label, v.facing)
	o.text(dst, left, float64(r.Min.X+margin), mid, 15, 600, p.Foreground, render.AlignLeft)
	right := keyHelp
	if v.usage.Photos > 0 {
		right = fmt.Sprintf("%d photos · ~%d left", v.usage.Photos, v.usage.EstimatedPhotosRemaining)
	}
	o.text(dst, right, float64(r.Max.X-margin), mid, 13, 400, p.Muted, render.AlignRight)
}

func (o Overlay) paintError(dst *image.RGBA, fr render.Rect, p *theme.Theme, msg string) {
	if msg == "" {
		msg = "The camera could not be started."
	}
	cx, cy := fr.X+fr.W/2, fr.Y+fr.H/2
	o.text(dst, msg, cx, cy-14, 18, 600, p.Danger, render.AlignCenter)
	o.text(dst, "Press r to retry", cx, cy+16, 15, 500, p.Muted, render.AlignCenter)
}

func (o Overlay) paintToast(dst *image.RGBA, fr render.Rect, p *theme.Theme, v view) {
	text, bg := v.message, p.Toast
	if v.notice.Visible() {
		text = v.notice.Text
		if v.notice.Kind != session.NoticeSaved {
			bg = p.Danger
		}
	}
	if text == "" {
		return
	}
	h := 40.0
	w := math.Min(fr.W-2*margin, 28+float64(len([]rune(text)))*9)
	box := render.Rect{X: fr.X + (fr.W-w)/2, Y: fr.Y + fr.H - h - 2*margin, W: w, H: h}
	render.RoundedRect(box.X, box.Y, box.W, box.H, h/2).Fill(dst, image.NewUniform(bg))
	o.text(dst, text, box.X+box.W/2, box.Y+box.H/2, 15, 600, p.ToastText, render.AlignCenter)
}

func paintStrip(dst *image.RGBA, r image.Rectangle, p *theme.Theme, thumbs []image.Image) {
	render.FillColor(dst, rectOf(r), p.Surface)
	x := r.Min.X + margin
	for _, t := range thumbs {
		tb := t.Bounds()
		y := r.Min.Y + (r.Dy()-tb.Dy())/2
		cell := image.Rect(x, y, x+tb.Dx(), y+tb.Dy())
		if cell.Max.X > r.Max.X-margin {
			break
		}
		cr := rectOf(cell)
		mask := render.RoundedRect(cr.X, cr.Y, cr.W, cr.H, 10).Mask(cell)
		draw.DrawMask(dst, cell, t, tb.Min, mask, cell.Min, draw.Over)
		x = cell.Max.X + margin/2
	}
}

func (o Overlay) text(dst draw.Image, s string, x, y, size float64, weight int, c color.NRGBA, align render.Align) {
	if o.Fonts == nil {
		return
	}
	face, err := o.Fonts.Face(weight, size)
	if err != nil {
		return
	}
	render.DrawText(dst, s, x, y, render.TextStyle{
		Face:     face,
		Fill:     image.NewUniform(c),
		Align:    align,
		Baseline: render.BaselineMiddle,
	})
}

func rectOf(r image.Rectangle) render.Rect {
	return render.Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}
