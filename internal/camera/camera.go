// Package camera provides live frame sources. A Capability is asked for a
// facing direction and either yields a running Source or a CapabilityError
// saying why the device cannot be used.
package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
)

// Facing is the direction the camera points.
type Facing string

const (
	User        Facing = "user"
	Environment Facing = "environment"
)

// Flip returns the other facing.
func (f Facing) Flip() Facing {
	if f == Environment {
		return User
	}
	return Environment
}

// ParseFacing accepts "user", "environment", and the aliases "front" and
// "back".
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "front", "":
		return User, nil
	case "environment", "back", "rear":
		return Environment, nil
	}
	return "", fmt.Errorf("unknown camera facing %q", s)
}

// Kind classifies why a camera could not be opened.
type Kind int

const (
	Unsupported Kind = iota
	PermissionDenied
	NotFound
	Busy
)

func (k Kind) String() string {
	switch k {
	case PermissionDenied:
		return "permission-denied"
	case NotFound:
		return "not-found"
	case Busy:
		return "busy"
	}
	return "unsupported"
}

// CapabilityError is returned by Open.
type CapabilityError struct {
	Kind Kind
	Err  error
}

func (e *CapabilityError) Error() string {
	if e.Err == nil {
		return "camera " + e.Kind.String()
	}
	return fmt.Sprintf("camera %s: %v", e.Kind, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// Message is the text shown to the user for this failure.
func (e *CapabilityError) Message() string {
	switch e.Kind {
	case PermissionDenied:
		return "Camera access was denied. Allow camera access and try again."
	case NotFound:
		return "No camera was found for this direction."
	case Busy:
		return "The camera is being used by another application."
	}
	return "This device does not support live camera capture."
}

// KindOf extracts the failure kind from err. ok is false when err is not a
// CapabilityError.
func KindOf(err error) (kind Kind, ok bool) {
	var ce *CapabilityError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return Unsupported, false
}

// Source is a running camera. Stop releases the device and must be called
// once the source is no longer shown.
type Source interface {
	Frame() (image.Image, error)
	Stop()
}

// Capability opens sources. Open may block until the device answers; it
// returns early with ctx.Err() when ctx is cancelled.
type Capability interface {
	Open(ctx context.Context, facing Facing) (Source, error)
}

// X11Source is the source name selecting the screen backend.
const X11Source = "x11"

// FromSource picks a backend: "x11" for the screen, anything else is a
// directory of still frames.
func FromSource(source string) Capability {
	if source == X11Source {
		return NewX11Capability()
	}
	return NewStillCapability(source)
}
