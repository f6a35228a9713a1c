// Package booth is the live preview window: the camera feed with the
// selected frame's preview overlay, the shutter, and the gallery strip.
package booth

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/photobooth/internal/notify"
	"github.com/example/photobooth/internal/photos"
	"github.com/example/photobooth/internal/session"
	"github.com/example/photobooth/internal/theme"
)

const (
	windowTitle    = "Smile Photobooth"
	defaultWidth   = 960
	defaultHeight  = 800
	frameInterval  = time.Second / 15
	flashDuration  = 220 * time.Millisecond
	messageTimeout = 2 * time.Second
	stripPhotos    = 8
	thumbSize      = 88
)

// Booth holds the window state around a capture session.
type Booth struct {
	session  *session.Controller
	theme    *theme.Context
	photos   *photos.Store
	notifier *notify.Notifier
	overlay  Overlay
	strip    *Strip
	copy     func(image.Image) error
	logger   *log.Logger
	now      func() time.Time

	width, height int

	mu           sync.Mutex
	records      []photos.Record
	usage        photos.Usage
	flashUntil   time.Time
	message      string
	messageUntil time.Time
}

// Option modifies a Booth during creation.
type Option func(*Booth)

// WithNotifier sends desktop notifications for captures, copies and a
// full gallery.
func WithNotifier(n *notify.Notifier) Option { return func(b *Booth) { b.notifier = n } }

// WithOverlay sets the fonts and branding used for preview labels.
func WithOverlay(o Overlay) Option { return func(b *Booth) { b.overlay = o } }

// WithClipboard sets the function used by the copy shortcut.
func WithClipboard(fn func(image.Image) error) Option { return func(b *Booth) { b.copy = fn } }

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option { return func(b *Booth) { b.logger = l } }

// WithSize sets the initial window size.
func WithSize(w, h int) Option { return func(b *Booth) { b.width, b.height = w, h } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(b *Booth) { b.now = now } }

// New creates a Booth. The caller owns sess and closes it after Run.
func New(sess *session.Controller, th *theme.Context, store *photos.Store, opts ...Option) *Booth {
	b := &Booth{
		session: sess,
		theme:   th,
		photos:  store,
		strip:   NewStrip(thumbSize),
		logger:  log.Default(),
		now:     time.Now,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for _, o := range opts {
		o(b)
	}
	b.refreshGallery()
	return b
}

// Run executes the UI loop using shiny's driver.
func (b *Booth) Run() { driver.Main(b.Main) }

// Main runs the window until it is closed or the user quits.
func (b *Booth) Main(s screen.Screen) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: b.width, Height: b.height, Title: windowTitle})
	if err != nil {
		b.logger.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	events, unsubscribe := b.session.Subscribe()
	defer unsubscribe()
	if err := b.session.Start(ctx); err != nil {
		b.logger.Printf("start camera: %v", err)
	}

	go func() {
		for range events {
			w.Send(paint.Event{})
		}
	}()
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				w.Send(paint.Event{})
			}
		}
	}()

	width, height := b.width, b.height
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			b.drawFrame(s, w, width, height)
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if b.handleKey(ctx, e) {
				return
			}
			w.Send(paint.Event{})
		case error:
			b.logger.Printf("window: %v", e)
		}
	}
}

func (b *Booth) drawFrame(s screen.Screen, w screen.Window, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	buf, err := s.NewBuffer(image.Point{X: width, Y: height})
	if err != nil {
		b.logger.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	b.overlay.paintView(buf.RGBA(), b.snapshot())
	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}

// handleKey runs the shortcut for e. It reports whether the window should
// close.
func (b *Booth) handleKey(ctx context.Context, e key.Event) bool {
	switch {
	case e.Code == key.CodeEscape || e.Rune == 'q':
		return true
	case e.Code == key.CodeSpacebar:
		b.shutter(ctx)
	case e.Rune == 'f':
		if _, err := b.session.SwitchFacing(ctx); err != nil {
			b.say("Wait for the photo to finish")
		}
	case e.Rune == 'm':
		if err := b.session.SetMode(b.session.Mode().Next()); err != nil {
			b.logger.Printf("set frame: %v", err)
		}
	case e.Rune == 't':
		if _, err := b.theme.Toggle(); err != nil {
			b.logger.Printf("save theme: %v", err)
		}
	case e.Rune == 'c':
		go b.copyLatest()
	case e.Rune == 'r':
		if b.session.State() == session.Failed {
			if err := b.session.Start(ctx); err != nil {
				b.logger.Printf("retry camera: %v", err)
			}
		}
	}
	return false
}

// shutter flashes the feed and captures in the background.
func (b *Booth) shutter(ctx context.Context) {
	if b.session.State() != session.Ready {
		return
	}
	b.mu.Lock()
	b.flashUntil = b.now().Add(flashDuration)
	b.mu.Unlock()
	go b.capture(ctx)
}

// capture reports through the session notice; only desktop notifications
// are sent from here.
func (b *Booth) capture(ctx context.Context) {
	rec, err := b.session.Capture(ctx)
	switch {
	case err == nil:
		b.refreshGallery()
		img, derr := rec.Decode()
		if derr != nil {
			img = nil
		}
		b.notifier.Capture(rec.ID, img)
	case errors.Is(err, photos.ErrQuotaExceeded):
		b.notifier.StorageFull("")
	}
}

// copyLatest puts the newest photo on the clipboard.
func (b *Booth) copyLatest() {
	b.mu.Lock()
	var rec photos.Record
	ok := len(b.records) > 0
	if ok {
		rec = b.records[0]
	}
	b.mu.Unlock()
	if !ok {
		b.say("No photos yet")
		return
	}
	if b.copy == nil {
		b.say("Clipboard is not available")
		return
	}
	img, err := rec.Decode()
	if err == nil {
		err = b.copy(img)
	}
	if err != nil {
		b.logger.Printf("copy photo %s: %v", rec.ID, err)
		b.say("Could not copy the photo")
		return
	}
	b.say("Copied to clipboard")
	b.notifier.Copy(photos.Filename(rec))
}

func (b *Booth) say(msg string) {
	b.mu.Lock()
	b.message = msg
	b.messageUntil = b.now().Add(messageTimeout)
	b.mu.Unlock()
}

func (b *Booth) refreshGallery() {
	if b.photos == nil {
		return
	}
	records := b.photos.Load()
	usage := b.photos.Usage()
	b.mu.Lock()
	b.records = records
	b.usage = usage
	b.mu.Unlock()
}

func (b *Booth) snapshot() view {
	v := view{
		state:  b.session.State(),
		errMsg: b.session.ErrorMessage(),
		mode:   b.session.Mode(),
		facing: b.session.Facing(),
		notice: b.session.Notice(),
	}
	if frame, err := b.session.Frame(); err == nil {
		v.frame = frame
	}
	if b.theme != nil {
		v.palette = b.theme.Palette()
		v.neon = b.theme.IsNeon()
	}

	now := b.now()
	b.mu.Lock()
	records := b.records
	v.usage = b.usage
	if now.Before(b.messageUntil) {
		v.message = b.message
	}
	if left := b.flashUntil.Sub(now); left > 0 {
		v.flash = float64(left) / float64(flashDuration)
	}
	b.mu.Unlock()

	v.thumbs = b.strip.Thumbnails(records, stripPhotos)
	return v
}
