// Package photos persists captured photos as a JSON array held in one
// key-value slot, newest first.
package photos

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the createdAt format: UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is one stored photo. Records are never modified after creation.
type Record struct {
	ID        string `json:"id"`
	DataURL   string `json:"dataUrl"`
	CreatedAt string `json:"createdAt"`
}

// NewRecord wraps an encoded JPEG in a record with a fresh id.
func NewRecord(jpegData []byte, now time.Time) Record {
	return Record{
		ID:        uuid.NewString(),
		DataURL:   DataURL("image/jpeg", jpegData),
		CreatedAt: now.UTC().Format(TimeLayout),
	}
}

// DataURL encodes data as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

var errNotDataURL = errors.New("not a base64 data URL")

// Bytes returns the encoded image and its MIME type.
func (r Record) Bytes() ([]byte, string, error) {
	rest, ok := strings.CutPrefix(r.DataURL, "data:")
	if !ok {
		return nil, "", fmt.Errorf("photo %s: %w", r.ID, errNotDataURL)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("photo %s: %w", r.ID, errNotDataURL)
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", fmt.Errorf("photo %s: %w", r.ID, errNotDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("photo %s: %w", r.ID, err)
	}
	return data, mime, nil
}

// Decode returns the stored image.
func (r Record) Decode() (image.Image, error) {
	data, _, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("photo %s: decode: %w", r.ID, err)
	}
	return img, nil
}

// Time parses CreatedAt. Records written elsewhere may use plain RFC 3339.
func (r Record) Time() (time.Time, error) {
	t, err := time.Parse(TimeLayout, r.CreatedAt)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, r.CreatedAt)
}

// Filename is the download name for the photo.
func Filename(r Record) string {
	ext := ".jpg"
	if _, mime, err := r.Bytes(); err == nil && mime == "image/png" {
		ext = ".png"
	}
	return "smile-photo-" + r.ID + ext
}

// SortNewestFirst orders records by creation time, newest first. Records
// with unparseable times sink to the end in their original order.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, ei := records[i].Time()
		tj, ej := records[j].Time()
		switch {
		case ei != nil:
			return false
		case ej != nil:
			return true
		}
		return ti.After(tj)
	})
}
