package booth

import (
	"image"
	"sync"

	"github.com/nfnt/resize"

	"github.com/example/photobooth/internal/photos"
)

// Strip caches gallery thumbnails keyed by photo id.
type Strip struct {
	Size uint

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewStrip returns a strip with square thumbnails of side size.
func NewStrip(size uint) *Strip {
	return &Strip{Size: size, cache: make(map[string]image.Image)}
}

// Thumbnails returns up to n thumbnails for records, in order. Records
// that fail to decode are skipped. Ids no longer present are evicted.
func (s *Strip) Thumbnails(records []photos.Record, n int) []image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		s.cache = make(map[string]image.Image)
	}
	keep := make(map[string]bool, n)
	out := make([]image.Image, 0, n)
	for _, r := range records {
		if len(out) == n {
			break
		}
		keep[r.ID] = true
		if thumb, ok := s.cache[r.ID]; ok {
			out = append(out, thumb)
			continue
		}
		img, err := r.Decode()
		if err != nil {
			continue
		}
		thumb := resize.Thumbnail(s.Size, s.Size, img, resize.Bilinear)
		s.cache[r.ID] = thumb
		out = append(out, thumb)
	}
	for id := range s.cache {
		if !keep[id] {
			delete(s.cache, id)
		}
	}
	return out
}
