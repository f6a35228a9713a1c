package photos

import "github.com/example/photobooth/internal/kvstore"

// typicalPhotoBytes is assumed for the average photo until one is stored:
// a 1200px JPEG at quality 85, base64 encoded.
const typicalPhotoBytes = 180 << 10

// Usage is an estimate of remaining capacity. It is derived from the
// stored records and the store's configured limit, not from the OS.
type Usage struct {
	Photos                   int   `json:"photos" yaml:"photos"`
	UsedBytes                int64 `json:"usedBytes" yaml:"usedBytes"`
	AvailableBytes           int64 `json:"availableBytes" yaml:"availableBytes"`
	EstimatedPhotosRemaining int   `json:"estimatedPhotosRemaining" yaml:"estimatedPhotosRemaining"`
}

// Usage reports how full the store is and how many more photos of the
// current average size would fit.
func (s *Store) Usage() Usage {
	records := s.Load()
	used, err := s.kv.Size()
	if err != nil {
		s.Logger.Printf("storage size: %v", err)
	}
	limit := kvstore.DefaultQuota
	if l, ok := s.kv.(kvstore.Limiter); ok {
		limit = l.Limit()
	}
	u := Usage{Photos: len(records), UsedBytes: used}
	if limit > used {
		u.AvailableBytes = limit - used
	}
	avg := int64(typicalPhotoBytes)
	if len(records) > 0 {
		var total int64
		for _, r := range records {
			total += int64(len(r.ID) + len(r.DataURL) + len(r.CreatedAt))
		}
		avg = max(total/int64(len(records)), 1)
	}
	u.EstimatedPhotosRemaining = int(u.AvailableBytes / avg)
	return u
}
