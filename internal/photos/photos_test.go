package photos

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/example/photobooth/internal/kvstore"
)

func newTestStore(t *testing.T, kv kvstore.Store) *Store {
	t.Helper()
	s := NewStore(kv)
	s.Logger = log.New(io.Discard, "", 0)
	return s
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestSaveThenLoadIsNewestFirst(t *testing.T) {
	s := newTestStore(t, kvstore.NewMemory())
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first := NewRecord(jpegBytes(t), base)
	second := NewRecord(jpegBytes(t), base.Add(time.Minute))
	if err := s.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("Save second: %v", err)
	}
	got := s.Load()
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0] != second || got[1] != first {
		t.Fatalf("records out of order or changed: %+v", got)
	}
}

func TestLoadCorruptDataDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{"{not json", `{"id":"x"}`, "null", ""} {
		kv := kvstore.NewMemory()
		kv.Set(StorageKey, raw)
		s := newTestStore(t, kv)
		if got := s.Load(); got == nil || len(got) != 0 {
			t.Fatalf("raw %q: expected empty list, got %#v", raw, got)
		}
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := newTestStore(t, kvstore.NewMemory())
	if err := s.Save(NewRecord(jpegBytes(t), time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Clear()
	if got := s.Load(); len(got) != 0 {
		t.Fatalf("after first clear: %d records", len(got))
	}
	s.Clear()
	if got := s.Load(); len(got) != 0 {
		t.Fatalf("after second clear: %d records", len(got))
	}
}

func TestSaveOverQuotaLeavesStoreUnchanged(t *testing.T) {
	kv := kvstore.WithQuota(kvstore.NewMemory(), 2048)
	s := newTestStore(t, kv)
	small := Record{ID: "a", DataURL: DataURL("image/jpeg", []byte("tiny")), CreatedAt: "2026-03-01T10:00:00.000Z"}
	if err := s.Save(small); err != nil {
		t.Fatalf("Save small: %v", err)
	}
	big := Record{ID: "b", DataURL: DataURL("image/jpeg", bytes.Repeat([]byte{1}, 4096)), CreatedAt: "2026-03-01T10:01:00.000Z"}
	err := s.Save(big)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	got := s.Load()
	if len(got) != 1 || got[0] != small {
		t.Fatalf("store changed after rejected save: %+v", got)
	}
}

func TestSaveRejectsDuplicateID(t *testing.T) {
	s := newTestStore(t, kvstore.NewMemory())
	r := NewRecord(jpegBytes(t), time.Now())
	if err := s.Save(r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(r); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestDeleteAndGet(t *testing.T) {
	s := newTestStore(t, kvstore.NewMemory())
	a := NewRecord(jpegBytes(t), time.Now())
	b := NewRecord(jpegBytes(t), time.Now())
	s.Save(a)
	s.Save(b)

	if got, ok := s.Get(a.ID); !ok || got != a {
		t.Fatalf("Get(a) = %+v, %v", got, ok)
	}
	ok, err := s.Delete(a.ID)
	if err != nil || !ok {
		t.Fatalf("Delete(a) = %v, %v", ok, err)
	}
	if _, ok := s.Get(a.ID); ok {
		t.Fatal("deleted record still present")
	}
	if ok, err := s.Delete("nope"); ok || err != nil {
		t.Fatalf("Delete(missing) = %v, %v", ok, err)
	}
	if ok, _ := s.Delete(b.ID); !ok {
		t.Fatal("Delete(b) reported missing")
	}
	if got := s.Load(); len(got) != 0 {
		t.Fatalf("expected empty store, got %d", len(got))
	}
}

func TestRecordRoundTripsImage(t *testing.T) {
	r := NewRecord(jpegBytes(t), time.Date(2026, 1, 2, 3, 4, 5, 6e6, time.FixedZone("WIB", 7*3600)))
	if !strings.HasPrefix(r.DataURL, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data URL prefix: %.30s", r.DataURL)
	}
	if r.CreatedAt != "2026-01-01T20:04:05.006Z" {
		t.Fatalf("createdAt %q", r.CreatedAt)
	}
	img, err := r.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Fatalf("decoded bounds %v", img.Bounds())
	}
	if got := Filename(r); got != "smile-photo-"+r.ID+".jpg" {
		t.Fatalf("Filename = %q", got)
	}

	bad := Record{ID: "x", DataURL: "https://example.com/a.jpg"}
	if _, err := bad.Decode(); err == nil {
		t.Fatal("expected error for non data URL")
	}
}

func TestSortNewestFirst(t *testing.T) {
	records := []Record{
		{ID: "old", CreatedAt: "2026-01-01T00:00:00.000Z"},
		{ID: "broken", CreatedAt: "yesterday"},
		{ID: "new", CreatedAt: "2026-02-01T00:00:00.000Z"},
		{ID: "mid", CreatedAt: "2026-01-15T00:00:00Z"},
	}
	SortNewestFirst(records)
	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if got := strings.Join(ids, ","); got != "new,mid,old,broken" {
		t.Fatalf("order %s", got)
	}
}

func TestUsageIsAdvisory(t *testing.T) {
	kv := kvstore.WithQuota(kvstore.NewMemory(), 1<<20)
	s := newTestStore(t, kv)
	empty := s.Usage()
	if empty.Photos != 0 || empty.AvailableBytes != 1<<20 {
		t.Fatalf("empty usage %+v", empty)
	}
	if empty.EstimatedPhotosRemaining <= 0 {
		t.Fatalf("expected a positive estimate, got %+v", empty)
	}

	s.Save(NewRecord(bytes.Repeat([]byte{7}, 30000), time.Now()))
	u := s.Usage()
	if u.Photos != 1 || u.UsedBytes <= 40000 {
		t.Fatalf("usage after save %+v", u)
	}
	if u.UsedBytes+u.AvailableBytes != 1<<20 {
		t.Fatalf("used+available should equal the limit: %+v", u)
	}
	// About 40KB per photo leaves room for roughly 25 more; only the order
	// of magnitude is meaningful.
	if u.EstimatedPhotosRemaining < 10 || u.EstimatedPhotosRemaining > 40 {
		t.Fatalf("estimate out of range: %+v", u)
	}
}
