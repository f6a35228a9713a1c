// Package frames is the catalog of decorative frame modes a photo can be
// captured with. It is pure data: the pixel recipes live in the compose
// package and dispatch on Mode.
package frames

import (
	"errors"
	"fmt"
	"strings"
)

// Mode identifies a frame style.
type Mode string

const (
	Polaroid  Mode = "polaroid"
	Minimal   Mode = "minimal"
	Film      Mode = "film"
	NeonStory Mode = "neon-story"
)

// Default is the mode selected when nothing else has been chosen.
const Default = Polaroid

// ErrUnknownFrameMode reports an id outside the catalog.
var ErrUnknownFrameMode = errors.New("unknown frame mode")

// UnknownModeError carries the rejected id.
type UnknownModeError struct {
	ID string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownFrameMode, e.ID)
}

func (e *UnknownModeError) Unwrap() error { return ErrUnknownFrameMode }

// Descriptor is the catalog entry for one mode.
type Descriptor struct {
	ID          Mode          `yaml:"id"`
	Label       string        `yaml:"label"`
	Icon        string        `yaml:"icon"`
	Description string        `yaml:"description"`
	Preview     PreviewRecipe `yaml:"preview"`
}

var catalog = []Descriptor{
	{
		ID:          Polaroid,
		Label:       "Polaroid",
		Icon:        "📷",
		Description: "Instant camera vibe",
		Preview:     polaroidPreview,
	},
	{
		ID:          Minimal,
		Label:       "Minimal",
		Icon:        "✨",
		Description: "Clean & elegant",
		Preview:     minimalPreview,
	},
	{
		ID:          Film,
		Label:       "Film",
		Icon:        "🎞️",
		Description: "Cinematic letterbox",
		Preview:     filmPreview,
	},
	{
		ID:          NeonStory,
		Label:       "Neon Story",
		Icon:        "🌌",
		Description: "Vibrant club vibes",
		Preview:     neonPreview,
	},
}

// All returns every descriptor in catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Modes returns the catalog ids in order.
func Modes() []Mode {
	out := make([]Mode, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, d.ID)
	}
	return out
}

// Get looks up a descriptor. Ids arriving from persisted or user input may
// name modes that no longer exist, so the lookup can fail.
func Get(id string) (Descriptor, error) {
	for _, d := range catalog {
		if string(d.ID) == id {
			return d, nil
		}
	}
	return Descriptor{}, &UnknownModeError{ID: id}
}

// Parse normalises user input into a Mode.
func Parse(id string) (Mode, error) {
	d, err := Get(strings.ToLower(strings.TrimSpace(id)))
	if err != nil {
		return "", err
	}
	return d.ID, nil
}

// Valid reports whether m is part of the catalog.
func (m Mode) Valid() bool {
	_, err := Get(string(m))
	return err == nil
}

// Next cycles through the catalog, wrapping at the end. Unknown modes map
// to the first entry.
func (m Mode) Next() Mode {
	for i, d := range catalog {
		if d.ID == m {
			return catalog[(i+1)%len(catalog)].ID
		}
	}
	return catalog[0].ID
}

func (m Mode) String() string { return string(m) }
