package frames

import "strings"

// The first catalog shipped three modes: polaroid, clean and film. Persisted
// selections can still carry those ids. They are accepted here and mapped to
// the current catalog; the recipes differ, so callers are told the id was
// deprecated rather than having it silently swapped.
var legacyModes = map[string]Mode{
	"polaroid": Polaroid,
	"clean":    Minimal,
	"film":     Film,
}

// ParseLegacy resolves an id against the current catalog first and the
// deprecated three-mode catalog second. deprecated reports whether the
// legacy table was used.
func ParseLegacy(id string) (mode Mode, deprecated bool, err error) {
	norm := strings.ToLower(strings.TrimSpace(id))
	if m, err := Parse(norm); err == nil {
		return m, false, nil
	}
	if m, ok := legacyModes[norm]; ok {
		return m, true, nil
	}
	return "", false, &UnknownModeError{ID: id}
}
