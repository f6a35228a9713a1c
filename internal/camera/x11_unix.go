//go:build linux || freebsd || openbsd || netbsd || dragonfly

package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// X11Capability treats monitors as cameras: the primary monitor faces the
// user and the next connected monitor faces the environment. It is meant
// for demos and kiosks without a webcam.
type X11Capability struct{}

func NewX11Capability() *X11Capability { return &X11Capability{} }

func (X11Capability) Open(ctx context.Context, facing Facing) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, &CapabilityError{Kind: Unsupported, Err: fmt.Errorf("connect X server: %w", err)}
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, &CapabilityError{Kind: Unsupported, Err: errors.New("xproto setup unavailable")}
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, &CapabilityError{Kind: Unsupported, Err: errors.New("xproto screen unavailable")}
	}
	rect, err := monitorFor(conn, screen, facing)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &x11Source{conn: conn, setup: setup, root: screen.Root, rect: rect}, nil
}

// monitorFor resolves a facing to a screen rectangle. Without RandR the
// whole screen faces the user.
func monitorFor(conn *xgb.Conn, screen *xproto.ScreenInfo, facing Facing) (image.Rectangle, error) {
	whole := image.Rect(0, 0, int(screen.WidthInPixels), int(screen.HeightInPixels))
	monitors, err := listMonitors(conn, screen.Root)
	if err != nil || len(monitors) == 0 {
		if facing == User {
			return whole, nil
		}
		return image.Rectangle{}, &CapabilityError{Kind: NotFound, Err: errors.New("no second monitor")}
	}
	primary := 0
	for i, m := range monitors {
		if m.primary {
			primary = i
			break
		}
	}
	if facing == User {
		return monitors[primary].rect, nil
	}
	for i, m := range monitors {
		if i != primary {
			return m.rect, nil
		}
	}
	return image.Rectangle{}, &CapabilityError{Kind: NotFound, Err: errors.New("no second monitor")}
}

type monitor struct {
	rect    image.Rectangle
	primary bool
}

func listMonitors(conn *xgb.Conn, root xproto.Window) ([]monitor, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	var monitors []monitor
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, monitor{
			rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			primary: output == primaryOutput,
		})
	}
	return monitors, nil
}

type x11Source struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	setup *xproto.SetupInfo
	root  xproto.Window
	rect  image.Rectangle
}

func (s *x11Source) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil, errStopped
	}
	r := s.rect
	reply, err := xproto.GetImage(s.conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.root),
		int16(r.Min.X), int16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()), 0xffffffff).Reply()
	if err != nil {
		return nil, fmt.Errorf("grab frame: %w", err)
	}
	return xImageToRGBA(s.setup, reply, r.Dx(), r.Dy())
}

func (s *x11Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

// xImageToRGBA converts a ZPixmap reply in BGRX order to RGBA.
func xImageToRGBA(setup *xproto.SetupInfo, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("frame has empty geometry")
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, errors.New("frame pixels: empty image data")
	}
	bitsPerPixel := 0
	for _, format := range setup.PixmapFormats {
		if format.Depth == reply.Depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	bytesPerPixel := bitsPerPixel / 8
	if bytesPerPixel < 3 {
		return nil, fmt.Errorf("unsupported frame depth %d", reply.Depth)
	}
	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) {
		return nil, errors.New("frame pixels: unexpected stride")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := reply.Data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			off := x * bytesPerPixel
			if off+3 > len(row) {
				break
			}
			pix := img.PixOffset(x, y)
			img.Pix[pix+0] = row[off+2]
			img.Pix[pix+1] = row[off+1]
			img.Pix[pix+2] = row[off]
			// Screen pixels carry no usable alpha.
			img.Pix[pix+3] = 0xFF
		}
	}
	return img, nil
}
