// Package notify announces booth activity through desktop notifications.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/example/photobooth/internal/platform"
)

// Event identifies something the booth can announce.
type Event string

const (
	EventCapture     Event = "capture"
	EventSave        Event = "save"
	EventCopy        Event = "copy"
	EventStorageFull Event = "storage_full"
)

// iconSize bounds the capture preview handed to the notification center.
const iconSize = 256

var (
	defaultText = map[Event]string{
		EventCapture:     "Photo saved to gallery (%s)",
		EventSave:        "Saved %s",
		EventCopy:        "Copied %s to clipboard",
		EventStorageFull: "Storage is full: %s",
	}
	// Used when the caller has nothing more specific to say.
	defaultDetail = map[Event]string{
		EventCopy:        "image",
		EventStorageFull: "delete photos from the gallery to free up space",
	}
	textEnv = map[Event]string{
		EventCapture:     "PHOTOBOOTH_NOTIFY_CAPTURE_TEXT",
		EventSave:        "PHOTOBOOTH_NOTIFY_SAVE_TEXT",
		EventCopy:        "PHOTOBOOTH_NOTIFY_COPY_TEXT",
		EventStorageFull: "PHOTOBOOTH_NOTIFY_STORAGE_FULL_TEXT",
	}
)

// Preferences holds the notification title and one body text per event.
// Each text takes a single %s for the photo id, file name or hint.
type Preferences struct {
	Title string
	Text  map[Event]string
}

func DefaultPreferences() Preferences {
	return Preferences{Title: platform.DefaultAppName, Text: maps.Clone(defaultText)}
}

// LoadPreferences applies PHOTOBOOTH_NOTIFY_* overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PHOTOBOOTH_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range textEnv {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Text[event] = v
		}
	}
	return prefs
}

// send is replaced in tests.
var send = platform.Notify

// Notifier posts notifications for the events switched on with Enable.
// A nil Notifier posts nothing.
type Notifier struct {
	prefs Preferences
	on    map[Event]bool
}

func New(prefs Preferences) *Notifier {
	prefs.Text = maps.Clone(prefs.Text)
	return &Notifier{prefs: prefs, on: make(map[Event]bool)}
}

func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.on[event] = enabled
}

// Capture announces a stored photo. The framed image, when given, is
// shown as the notification icon.
func (n *Notifier) Capture(id string, framed image.Image) {
	if !n.wants(EventCapture) {
		return
	}
	opts := n.options()
	if framed != nil {
		path, err := writeIcon(framed)
		if err != nil {
			log.Printf("notification icon: %v", err)
		} else {
			defer removeIcon(path)
			opts.IconPath = path
		}
	}
	n.post(EventCapture, id, opts)
}

// Save announces an exported photo or collage. The written file doubles as
// the icon.
func (n *Notifier) Save(path string) {
	if !n.wants(EventSave) {
		return
	}
	opts := n.options()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.post(EventSave, path, opts)
}

func (n *Notifier) Copy(what string) {
	if n.wants(EventCopy) {
		n.post(EventCopy, what, n.options())
	}
}

// StorageFull is posted as urgent since the booth cannot save until
// photos are deleted.
func (n *Notifier) StorageFull(hint string) {
	if !n.wants(EventStorageFull) {
		return
	}
	opts := n.options()
	opts.Urgent = true
	n.post(EventStorageFull, hint, opts)
}

func (n *Notifier) wants(event Event) bool {
	return n != nil && n.on[event]
}

func (n *Notifier) options() platform.Options {
	return platform.Options{AppName: n.prefs.Title}
}

func (n *Notifier) post(event Event, detail string, opts platform.Options) {
	text := strings.TrimSpace(n.prefs.Text[event])
	if text == "" {
		return
	}
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = defaultDetail[event]
	}
	body := strings.TrimSpace(fmt.Sprintf(text, detail))
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// writeIcon stores a small PNG of img in a temp file for the
// notification center to read.
func writeIcon(img image.Image) (string, error) {
	icon := resize.Thumbnail(iconSize, iconSize, img, resize.Bilinear)
	f, err := os.CreateTemp("", "photobooth-icon-*.png")
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, icon); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func removeIcon(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("remove notification icon: %v", err)
	}
}
