//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package camera

import (
	"context"
	"errors"
)

type X11Capability struct{}

func NewX11Capability() *X11Capability { return &X11Capability{} }

func (X11Capability) Open(context.Context, Facing) (Source, error) {
	return nil, &CapabilityError{Kind: Unsupported, Err: errors.New("X11 capture is not available on this platform")}
}
