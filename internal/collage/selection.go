package collage

import (
	"errors"
	"slices"

	"github.com/example/photobooth/internal/photos"
)

// ErrSelectionFull is returned when a fifth photo is added. The existing
// selection is kept; the caller must deselect one first.
var ErrSelectionFull = errors.New("collage selection is full")

// Selection is an ordered set of photo ids, in the order they were picked.
type Selection struct {
	ids []string
}

// Toggle removes id if selected, otherwise appends it. It reports whether
// id is selected afterwards.
func (s *Selection) Toggle(id string) (bool, error) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false, nil
	}
	if len(s.ids) >= MaxPhotos {
		return false, ErrSelectionFull
	}
	s.ids = append(s.ids, id)
	return true, nil
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool { return slices.Contains(s.ids, id) }

// IDs returns the selection in pick order.
func (s *Selection) IDs() []string { return slices.Clone(s.ids) }

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Clear() { s.ids = nil }

// Set replaces the selection, dropping duplicates and anything past
// MaxPhotos.
func (s *Selection) Set(ids []string) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		if len(s.ids) == MaxPhotos {
			break
		}
		if !slices.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
}

// Prune drops ids that are not among records, such as deleted photos.
func (s *Selection) Prune(records []photos.Record) {
	s.ids = slices.DeleteFunc(s.ids, func(id string) bool {
		return !slices.ContainsFunc(records, func(r photos.Record) bool { return r.ID == id })
	})
}

// Latest returns the ids of the n most recent records, newest first.
func Latest(records []photos.Record, n int) []string {
	n = max(n, 0)
	sorted := slices.Clone(records)
	photos.SortNewestFirst(sorted)
	ids := make([]string, 0, min(n, len(sorted)))
	for _, r := range sorted {
		if len(ids) == n {
			break
		}
		ids = append(ids, r.ID)
	}
	return ids
}
