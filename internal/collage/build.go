package collage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/photobooth/internal/photos"
	"github.com/example/photobooth/internal/render"
)

// ErrNoPhotos is returned when Build is given nothing to arrange.
var ErrNoPhotos = errors.New("no photos selected")

// Source is one photo to place in the collage.
type Source struct {
	ID   string
	Load func(ctx context.Context) (image.Image, error)
}

// FromRecords returns sources for the given ids in the given order. Ids
// that are no longer stored are skipped.
func FromRecords(records []photos.Record, ids []string) []Source {
	byID := make(map[string]photos.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	var out []Source
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, Source{
			ID:   r.ID,
			Load: func(context.Context) (image.Image, error) { return r.Decode() },
		})
	}
	return out
}

// DecodeError reports every source that failed to load. No collage is
// produced when any source fails.
type DecodeError struct {
	IDs []string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("load collage photos %s: %v", strings.Join(e.IDs, ", "), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Build decodes every source in parallel and, only if all succeed, draws
// the collage. At most MaxPhotos sources are used.
func Build(ctx context.Context, sources []Source, opts Options) (*image.RGBA, error) {
	if len(sources) == 0 {
		return nil, ErrNoPhotos
	}
	used := sources[:min(len(sources), MaxPhotos)]
	images, err := loadAll(ctx, used)
	if err != nil {
		return nil, err
	}
	if opts.Fonts == nil {
		opts.Fonts, err = render.DefaultFonts()
		if err != nil {
			return nil, err
		}
	}
	return paint(images, opts)
}

func loadAll(ctx context.Context, sources []Source) ([]image.Image, error) {
	images := make([]image.Image, len(sources))
	errs := make([]error, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			img, err := src.Load(gctx)
			if err == nil && img == nil {
				err = errors.New("empty image")
			}
			if err != nil {
				errs[i] = err
				return err
			}
			images[i] = img
			return nil
		})
	}
	if g.Wait() == nil {
		return images, nil
	}
	derr := &DecodeError{}
	var joined []error
	for i, err := range errs {
		// Loads cut short by another failure are not reported separately.
		if err == nil || (errors.Is(err, context.Canceled) && ctx.Err() == nil) {
			continue
		}
		derr.IDs = append(derr.IDs, sources[i].ID)
		joined = append(joined, err)
	}
	derr.Err = errors.Join(joined...)
	return nil, derr
}

func paint(images []image.Image, opts Options) (*image.RGBA, error) {
	size := float64(opts.Size)
	scale := size / baseSize
	dst := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	n := len(images)
	for i, cell := range Layout(n, opts) {
		radius := opts.Radius.For(n, cell, size)
		clip := render.RoundedRect(cell.X, cell.Y, cell.W, cell.H, radius).Mask(cell.Bounds())
		render.DrawCover(dst, images[i], cell, clip)
	}

	barH := 140 * scale
	barY := size - barH
	render.FillRect(dst, render.Rect{Y: barY, W: size, H: barH}, render.Vertical(barY, size,
		render.Stop{Offset: 0, Color: render.RGBA(15, 23, 42, 0.2)},
		render.Stop{Offset: 1, Color: render.RGBA(15, 23, 42, 0.96)},
	))

	title, err := opts.Fonts.Face(600, 64*scale)
	if err != nil {
		return nil, err
	}
	render.DrawText(dst, opts.Branding.Title, size/2, barY+barH/2-16*scale, render.TextStyle{
		Face:  title,
		Fill:  image.NewUniform(render.RGBA(248, 250, 252, 0.98)),
		Align: render.AlignCenter,
	})
	mark, err := opts.Fonts.Face(500, 32*scale)
	if err != nil {
		return nil, err
	}
	render.DrawText(dst, opts.Branding.Watermark, size-48*scale, size-32*scale, render.TextStyle{
		Face:  mark,
		Fill:  image.NewUniform(render.RGBA(148, 163, 184, 0.96)),
		Align: render.AlignRight,
	})
	return dst, nil
}

// EncodePNG encodes a collage losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name for a collage built at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("smile-collage-%d.png", t.UnixMilli())
}
