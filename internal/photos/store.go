package photos

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/example/photobooth/internal/kvstore"
)

// StorageKey is the slot the photo list lives in.
const StorageKey = "smile-photobooth-photos"

var (
	// ErrQuotaExceeded means the store is full; the record was not saved.
	ErrQuotaExceeded = kvstore.ErrQuotaExceeded
	// ErrDuplicateID means a record with the same id is already stored.
	ErrDuplicateID = errors.New("duplicate photo id")
)

// Store reads and writes the photo list. Writes are read-modify-write of
// the whole slot, serialized within the process.
type Store struct {
	kv     kvstore.Store
	key    string
	mu     sync.Mutex
	Logger *log.Logger
}

// NewStore uses kv under StorageKey.
func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv, key: StorageKey, Logger: log.Default()}
}

// Load returns the stored records, newest first. Missing or corrupt data
// yields an empty list.
func (s *Store) Load() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Record {
	raw, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.Logger.Printf("load photos: %v", err)
		}
		return []Record{}
	}
	if raw == "" {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.Logger.Printf("load photos: %v", err)
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

func (s *Store) write(records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(s.key, string(data))
}

// Save prepends r. On failure the stored list is unchanged; a full store
// is reported with ErrQuotaExceeded.
func (s *Store) Save(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.load()
	for _, existing := range records {
		if existing.ID == r.ID {
			return fmt.Errorf("save photo %s: %w", r.ID, ErrDuplicateID)
		}
	}
	next := append([]Record{r}, records...)
	if err := s.write(next); err != nil {
		s.Logger.Printf("save photo %s: %v", r.ID, err)
		return fmt.Errorf("save photo: %w", err)
	}
	return nil
}

// Clear removes every record. It is safe to call on an empty store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(s.key); err != nil {
		s.Logger.Printf("clear photos: %v", err)
	}
}

// Delete removes one record and reports whether it existed.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.load()
	kept := records[:0]
	found := false
	for _, r := range records {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return false, nil
	}
	if len(kept) == 0 {
		return true, s.kv.Remove(s.key)
	}
	if err := s.write(kept); err != nil {
		return false, fmt.Errorf("delete photo %s: %w", id, err)
	}
	return true, nil
}

// Get finds a record by id.
func (s *Store) Get(id string) (Record, bool) {
	for _, r := range s.Load() {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
