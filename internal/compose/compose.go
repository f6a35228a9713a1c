// Package compose turns a raw camera frame into a finished, framed photo.
//
// The pipeline is a chain of stages, each returning a new image:
//
//	Snapshot -> Frame -> Downscale -> Encode
//
// Render runs all four.
package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"math"

	"github.com/nfnt/resize"

	"github.com/example/photobooth/internal/frames"
	"github.com/example/photobooth/internal/render"
)

const (
	// MaxSide bounds the longer edge of a stored photo.
	MaxSide = 1200
	// Quality is the JPEG quality stored photos are encoded at.
	Quality = 85
)

// ErrNoContext means there is no drawable surface for the frame, usually
// because the camera produced an empty image.
var ErrNoContext = errors.New("no drawing surface")

// Branding is the text printed on framed photos and collages.
type Branding struct {
	Title     string
	Watermark string
}

// DefaultBranding returns the stock booth branding.
func DefaultBranding() Branding {
	return Branding{Title: "Smile Photobooth", Watermark: "@lentera.photobooth"}
}

// Geometry is the canvas a mode produces for a given frame size.
type Geometry struct {
	Mode   frames.Mode
	Width  int
	Height int
	// Photo is where the raw frame lands on the canvas.
	Photo image.Rectangle
}

// Measure computes the canvas for a w×h frame. Border and bar sizes are
// fractions of the frame, so every mode scales with the camera.
func Measure(mode frames.Mode, w, h int) (Geometry, error) {
	if !mode.Valid() {
		return Geometry{}, &frames.UnknownModeError{ID: string(mode)}
	}
	l := newLayout(mode, float64(w), float64(h))
	return Geometry{
		Mode:   mode,
		Width:  l.width,
		Height: l.height,
		Photo:  image.Rectangle{Min: l.photo, Max: l.photo.Add(image.Pt(w, h))},
	}, nil
}

// Compositor draws frames. The zero value is not usable; call New.
type Compositor struct {
	Branding Branding
	Fonts    *render.Fonts
	MaxSide  int
	Quality  int
}

// New returns a compositor using the embedded Go fonts when fonts is nil.
func New(fonts *render.Fonts, b Branding) (*Compositor, error) {
	if fonts == nil {
		var err error
		fonts, err = render.DefaultFonts()
		if err != nil {
			return nil, err
		}
	}
	return &Compositor{Branding: b, Fonts: fonts, MaxSide: MaxSide, Quality: Quality}, nil
}

// Result is the output of Render.
type Result struct {
	Mode  frames.Mode
	Image image.Image
	JPEG  []byte
}

// Render runs the full pipeline. On error nothing has been written
// anywhere; callers can keep their previous state.
func (c *Compositor) Render(raw image.Image, mode frames.Mode) (Result, error) {
	framed, err := c.Frame(raw, mode)
	if err != nil {
		return Result{}, err
	}
	small := Downscale(framed, c.MaxSide)
	data, err := Encode(small, c.Quality)
	if err != nil {
		return Result{}, err
	}
	return Result{Mode: mode, Image: small, JPEG: data}, nil
}

// Snapshot copies a frame into a fresh zero-origin buffer so later stages
// never see the live source change underneath them.
func Snapshot(raw image.Image) (*image.RGBA, error) {
	if raw == nil || raw.Bounds().Empty() {
		return nil, ErrNoContext
	}
	b := raw.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), raw, b.Min, draw.Src)
	return out, nil
}

// Frame draws raw inside the decoration for mode and returns a new image.
// An unknown mode fails before anything is drawn.
func (c *Compositor) Frame(raw image.Image, mode frames.Mode) (*image.RGBA, error) {
	if !mode.Valid() {
		return nil, &frames.UnknownModeError{ID: string(mode)}
	}
	photo, err := Snapshot(raw)
	if err != nil {
		return nil, err
	}
	w, h := photo.Bounds().Dx(), photo.Bounds().Dy()
	l := newLayout(mode, float64(w), float64(h))
	cv := &canvas{
		dst:   image.NewRGBA(image.Rect(0, 0, l.width, l.height)),
		photo: photo,
		l:     l,
		fonts: c.Fonts,
		brand: c.Branding,
	}
	switch mode {
	case frames.Polaroid:
		err = cv.polaroid()
	case frames.Minimal:
		err = cv.minimal()
	case frames.Film:
		err = cv.film()
	case frames.NeonStory:
		err = cv.neon()
	default:
		err = &frames.UnknownModeError{ID: string(mode)}
	}
	if err != nil {
		return nil, fmt.Errorf("draw %s frame: %w", mode, err)
	}
	return cv.dst, nil
}

// Downscale shrinks img so its longer side is at most maxSide, keeping the
// aspect ratio. Smaller images are returned unchanged.
func Downscale(img image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return img
	}
	return resize.Thumbnail(uint(maxSide), uint(maxSide), img, resize.Lanczos3)
}

// Encode writes img as JPEG.
func Encode(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = Quality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// layout holds the fractional measurements of one mode for a w×h frame.
type layout struct {
	w, h          float64
	canvasW       float64
	canvasH       float64
	width, height int
	photo         image.Point

	side, top, bottom float64 // polaroid, film
	border            float64 // minimal, neon
	barTop, barBottom float64 // neon
}

func newLayout(mode frames.Mode, w, h float64) layout {
	l := layout{w: w, h: h}
	var px, py float64
	switch mode {
	case frames.Polaroid:
		l.side = w * 0.08
		l.top = w * 0.08
		l.bottom = h * 0.12
		l.canvasW = w + l.side*2
		l.canvasH = h + l.top + l.bottom
		px, py = l.side, l.top
	case frames.Minimal:
		l.border = w * 0.04
		l.canvasW = w + l.border*2
		l.canvasH = h + l.border*3
		px, py = l.border, l.border
	case frames.Film:
		l.side = w * 0.08
		l.top = w * 0.06
		l.bottom = w * 0.08
		l.canvasW = w + l.side*2
		l.canvasH = h + l.top + l.bottom
		px, py = l.side, l.top
	case frames.NeonStory:
		l.border = w * 0.06
		l.barTop = w * 0.08
		l.barBottom = w * 0.09
		l.canvasW = w + l.border*2
		l.canvasH = h + l.border*2 + l.barTop + l.barBottom
		px, py = l.border, l.border+l.barTop
	}
	l.width = int(math.Round(l.canvasW))
	l.height = int(math.Round(l.canvasH))
	// Text and decorations are placed against the integer canvas.
	l.canvasW = float64(l.width)
	l.canvasH = float64(l.height)
	l.photo = image.Pt(int(math.Round(px)), int(math.Round(py)))
	return l
}
