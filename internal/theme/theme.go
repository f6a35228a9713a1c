package theme

import (
	"fmt"
	"image/color"
	"strings"
)

// Name identifies one of the two app themes.
type Name string

const (
	Sky  Name = "sky"
	Neon Name = "neon"
)

// ParseName accepts "sky" or "neon" in any case.
func ParseName(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case Sky:
		return Sky, nil
	case Neon:
		return Neon, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Other returns the theme Toggle switches to.
func (n Name) Other() Name {
	if n == Neon {
		return Sky
	}
	return Neon
}

// Theme is the palette used by the booth window.
type Theme struct {
	Name string

	Background color.NRGBA // window behind the preview
	Foreground color.NRGBA // body text
	Surface    color.NRGBA // panels and the gallery strip
	Muted      color.NRGBA

	Accent     color.NRGBA // shutter button, selected frame
	AccentText color.NRGBA
	Border     color.NRGBA

	Toast     color.NRGBA
	ToastText color.NRGBA
	Danger    color.NRGBA // camera errors, storage full

	Flash color.NRGBA // shutter flash overlay
}

// Default returns the sky palette. It is used when no theme file can be
// read.
func Default() *Theme {
	return &Theme{
		Name:       string(Sky),
		Background: color.NRGBA{0xe0, 0xf2, 0xfe, 0xff},
		Foreground: color.NRGBA{0x0f, 0x17, 0x2a, 0xff},
		Surface:    color.NRGBA{0xff, 0xff, 0xff, 0xff},
		Muted:      color.NRGBA{0x64, 0x74, 0x8b, 0xff},
		Accent:     color.NRGBA{0x0e, 0xa5, 0xe9, 0xff},
		AccentText: color.NRGBA{0xff, 0xff, 0xff, 0xff},
		Border:     color.NRGBA{0xba, 0xe6, 0xfd, 0xff},
		Toast:      color.NRGBA{0x0f, 0x17, 0x2a, 0xe6},
		ToastText:  color.NRGBA{0xf8, 0xfa, 0xfc, 0xff},
		Danger:     color.NRGBA{0xdc, 0x26, 0x26, 0xff},
		Flash:      color.NRGBA{0xff, 0xff, 0xff, 0xff},
	}
}
