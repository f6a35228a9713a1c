package frames

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGetKnownModes(t *testing.T) {
	for _, m := range []Mode{Polaroid, Minimal, Film, NeonStory} {
		d, err := Get(string(m))
		if err != nil {
			t.Fatalf("Get(%q) returned error: %v", m, err)
		}
		if d.ID != m {
			t.Fatalf("Get(%q) returned descriptor %q", m, d.ID)
		}
		if d.Label == "" || d.Icon == "" || d.Description == "" {
			t.Fatalf("descriptor %q missing display metadata: %+v", m, d)
		}
	}
}

func TestGetUnknownMode(t *testing.T) {
	_, err := Get("sepia")
	if !errors.Is(err, ErrUnknownFrameMode) {
		t.Fatalf("expected ErrUnknownFrameMode, got %v", err)
	}
	var modeErr *UnknownModeError
	if !errors.As(err, &modeErr) || modeErr.ID != "sepia" {
		t.Fatalf("expected UnknownModeError carrying the id, got %#v", err)
	}
}

func TestParseNormalises(t *testing.T) {
	m, err := Parse("  Neon-Story ")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if m != NeonStory {
		t.Fatalf("got %q want %q", m, NeonStory)
	}
}

func TestAllOrderAndCopy(t *testing.T) {
	all := All()
	want := []Mode{Polaroid, Minimal, Film, NeonStory}
	if len(all) != len(want) {
		t.Fatalf("got %d descriptors want %d", len(all), len(want))
	}
	for i, d := range all {
		if d.ID != want[i] {
			t.Fatalf("position %d: got %q want %q", i, d.ID, want[i])
		}
	}
	all[0].Label = "mutated"
	if d, _ := Get("polaroid"); d.Label != "Polaroid" {
		t.Fatalf("All leaked internal catalog, label now %q", d.Label)
	}
}

func TestNextWraps(t *testing.T) {
	if got := NeonStory.Next(); got != Polaroid {
		t.Fatalf("NeonStory.Next() = %q", got)
	}
	if got := Mode("gone").Next(); got != Polaroid {
		t.Fatalf("unknown Next() = %q", got)
	}
}

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		id         string
		want       Mode
		deprecated bool
		wantErr    bool
	}{
		{id: "minimal", want: Minimal},
		{id: "clean", want: Minimal, deprecated: true},
		{id: "film", want: Film},
		{id: "vhs", wantErr: true},
	}
	for _, tt := range tests {
		got, dep, err := ParseLegacy(tt.id)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFrameMode) {
				t.Fatalf("ParseLegacy(%q): expected unknown mode error, got %v", tt.id, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLegacy(%q) returned error: %v", tt.id, err)
		}
		if got != tt.want || dep != tt.deprecated {
			t.Fatalf("ParseLegacy(%q) = %q,%v want %q,%v", tt.id, got, dep, tt.want, tt.deprecated)
		}
	}
}

func TestCatalogYAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(All())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []Descriptor
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i, d := range All() {
		if back[i].ID != d.ID || back[i].Label != d.Label || back[i].Icon != d.Icon || back[i].Description != d.Description {
			t.Fatalf("entry %d changed: %+v vs %+v", i, back[i], d)
		}
	}
}

func TestThemedAddsGlowOnlyForNeon(t *testing.T) {
	d, _ := Get("polaroid")
	if got := d.Preview.Themed(false); got.Border.Glow != "" {
		t.Fatalf("sky theme should not add glow")
	}
	if got := d.Preview.Themed(true); got.Border.Glow == "" {
		t.Fatalf("neon theme should add glow")
	}
	if d.Preview.Border.Glow != "" {
		t.Fatalf("Themed mutated the catalog entry")
	}
}
