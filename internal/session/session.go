// Package session runs the capture flow: acquire a camera, take a frame,
// frame it, and store it.
//
// A Controller is always in exactly one State. Camera acquisition runs in
// the background; anything it produces after being superseded by a facing
// switch or Close is stopped immediately instead of being attached.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/example/photobooth/internal/camera"
	"github.com/example/photobooth/internal/compose"
	"github.com/example/photobooth/internal/frames"
	"github.com/example/photobooth/internal/photos"
)

// State is the controller's position in the capture flow.
type State int

const (
	Initializing State = iota
	Ready
	Capturing
	Failed
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Capturing:
		return "capturing"
	case Failed:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrNotReady        = errors.New("camera is not ready")
	ErrCaptureInFlight = errors.New("a capture is already in progress")
	ErrClosed          = errors.New("session closed")
)

// DefaultNoticeDuration is how long the saved notice stays up.
const DefaultNoticeDuration = 1400 * time.Millisecond

// Compositor turns a raw frame into the stored image.
type Compositor interface {
	Render(raw image.Image, mode frames.Mode) (compose.Result, error)
}

// Saver persists a framed photo.
type Saver interface {
	Save(r photos.Record) error
}

// Event is delivered to subscribers after every change.
type Event struct {
	State  State
	Facing camera.Facing
	Mode   frames.Mode
	Notice Notice
	Err    error
}

// Controller owns the camera source for its lifetime. Close must be
// called to release it.
type Controller struct {
	cam    camera.Capability
	comp   Compositor
	store  Saver
	logger *log.Logger
	now    func() time.Time

	noticeFor time.Duration

	mu       sync.Mutex
	state    State
	err      error
	facing   camera.Facing
	mode     frames.Mode
	src      camera.Source
	gen      uint64
	cancel   context.CancelFunc
	changed  chan struct{}
	notice   Notice
	noticeID uint64
	timer    *time.Timer
	subs     map[int]chan Event
	nextSub  int
	closed   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithFacing sets the initial camera direction.
func WithFacing(f camera.Facing) Option { return func(c *Controller) { c.facing = f } }

// WithMode sets the initial frame mode.
func WithMode(m frames.Mode) Option { return func(c *Controller) { c.mode = m } }

// WithLogger overrides log.Default.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithNoticeDuration changes how long the saved notice is shown.
func WithNoticeDuration(d time.Duration) Option { return func(c *Controller) { c.noticeFor = d } }

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

// New returns a controller in the Initializing state. Nothing is opened
// until Start.
func New(cam camera.Capability, comp Compositor, store Saver, opts ...Option) *Controller {
	c := &Controller{
		cam:       cam,
		comp:      comp,
		store:     store,
		logger:    log.Default(),
		now:       time.Now,
		noticeFor: DefaultNoticeDuration,
		facing:    camera.User,
		mode:      frames.Default,
		changed:   make(chan struct{}),
		subs:      map[int]chan Event{},
	}
	for _, o := range opts {
		o(c)
	}
	if !c.mode.Valid() {
		c.mode = frames.Default
	}
	return c
}

// Start (re)acquires the camera for the current facing. Any source or
// pending acquisition is discarded first. It returns without waiting; use
// WaitReady to block.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state == Capturing {
		return ErrCaptureInFlight
	}
	c.acquireLocked(ctx)
	return nil
}

// SwitchFacing tears down the current source and acquires the other
// direction.
func (c *Controller) SwitchFacing(ctx context.Context) (camera.Facing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.facing, ErrClosed
	}
	if c.state == Capturing {
		return c.facing, ErrCaptureInFlight
	}
	c.facing = c.facing.Flip()
	c.acquireLocked(ctx)
	return c.facing, nil
}

func (c *Controller) acquireLocked(ctx context.Context) {
	c.teardownLocked()
	c.gen++
	gen := c.gen
	actx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	facing := c.facing
	c.setStateLocked(Initializing, nil)
	go c.acquire(actx, gen, facing)
}

func (c *Controller) acquire(ctx context.Context, gen uint64, facing camera.Facing) {
	src, err := c.cam.Open(ctx, facing)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		if src != nil {
			src.Stop()
		}
		return
	}
	if cerr := ctx.Err(); cerr != nil {
		if src != nil {
			src.Stop()
		}
		c.cancel = nil
		c.setStateLocked(Failed, cerr)
		return
	}
	if err != nil {
		c.logger.Printf("open %s camera: %v", facing, err)
		c.setStateLocked(Failed, err)
		return
	}
	c.src = src
	c.setStateLocked(Ready, nil)
}

// teardownLocked cancels acquisition and stops the live source.
func (c *Controller) teardownLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.src != nil {
		c.src.Stop()
		c.src = nil
	}
}

// WaitReady blocks until acquisition settles. It returns the acquisition
// error when the controller ends up in the error state.
func (c *Controller) WaitReady(ctx context.Context) error {
	for {
		c.mu.Lock()
		state, err, changed, closed := c.state, c.err, c.changed, c.closed
		c.mu.Unlock()
		if closed {
			return ErrClosed
		}
		switch state {
		case Ready, Capturing:
			return nil
		case Failed:
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// Capture takes the current frame, frames it in the selected mode and
// saves it. The controller returns to Ready whatever the outcome; the
// outcome is also reported as a Notice.
func (c *Controller) Capture(ctx context.Context) (photos.Record, error) {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return photos.Record{}, ErrClosed
	case c.state == Capturing:
		c.mu.Unlock()
		return photos.Record{}, ErrCaptureInFlight
	case c.state != Ready:
		c.mu.Unlock()
		return photos.Record{}, ErrNotReady
	}
	src, mode := c.src, c.mode
	c.setStateLocked(Capturing, nil)
	c.mu.Unlock()

	rec, err := c.shoot(ctx, src, mode)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		if err == nil {
			return rec, nil
		}
		return photos.Record{}, err
	}
	switch {
	case err == nil:
		c.showNoticeLocked(Notice{Kind: NoticeSaved, Text: savedText, PhotoID: rec.ID}, c.noticeFor)
	case errors.Is(err, photos.ErrQuotaExceeded):
		c.showNoticeLocked(Notice{Kind: NoticeStorageFull, Text: storageFullText}, 0)
	default:
		// Aborted captures leave no notice behind; the booth is simply
		// ready again.
		c.logger.Printf("capture: %v", err)
	}
	c.setStateLocked(Ready, nil)
	if err != nil {
		return photos.Record{}, err
	}
	return rec, nil
}

func (c *Controller) shoot(ctx context.Context, src camera.Source, mode frames.Mode) (photos.Record, error) {
	if err := ctx.Err(); err != nil {
		return photos.Record{}, err
	}
	frame, err := src.Frame()
	if err != nil {
		return photos.Record{}, fmt.Errorf("read frame: %w", err)
	}
	res, err := c.comp.Render(frame, mode)
	if err != nil {
		return photos.Record{}, fmt.Errorf("compose: %w", err)
	}
	rec := photos.NewRecord(res.JPEG, c.now())
	if err := c.store.Save(rec); err != nil {
		return photos.Record{}, err
	}
	return rec, nil
}

// SetMode changes the frame used by the next capture.
func (c *Controller) SetMode(m frames.Mode) error {
	if !m.Valid() {
		return &frames.UnknownModeError{ID: string(m)}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.mode = m
	c.publishLocked()
	return nil
}

// Frame returns the live frame for previews.
func (c *Controller) Frame() (image.Image, error) {
	c.mu.Lock()
	src := c.src
	ok := c.state == Ready || c.state == Capturing
	c.mu.Unlock()
	if !ok || src == nil {
		return nil, ErrNotReady
	}
	return src.Frame()
}

// Close stops the camera and ends every subscription. It is safe to call
// more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.gen++
	c.teardownLocked()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	close(c.changed)
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err is the acquisition failure while in the error state.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ErrorMessage is the user-facing text for Err, or "".
func (c *Controller) ErrorMessage() string {
	err := c.Err()
	if err == nil {
		return ""
	}
	var ce *camera.CapabilityError
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return "Unable to start the camera: " + err.Error()
}

func (c *Controller) Facing() camera.Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

func (c *Controller) Mode() frames.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Subscribe returns a channel of events and a function that ends the
// subscription. Slow subscribers miss events rather than block the
// controller.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Event, 8)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
}

func (c *Controller) setStateLocked(s State, err error) {
	c.state = s
	c.err = err
	close(c.changed)
	c.changed = make(chan struct{})
	c.publishLocked()
}

func (c *Controller) publishLocked() {
	ev := Event{State: c.state, Facing: c.facing, Mode: c.mode, Notice: c.notice, Err: c.err}
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
