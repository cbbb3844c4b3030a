// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"github.com/catvibes/catvibes/internal/download"
	"github.com/catvibes/catvibes/internal/library"
)

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const appName = "catvibes"

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
	Category   string  // freedesktop category hint, e.g. "transfer.complete"

	// Tag groups notifications that replace each other when ReplacesID is
	// unset: a new download notification takes the place of the last one.
	Tag string
}

// DownloadTag is the Tag of every download notification.
const DownloadTag = "download"

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// ForDownload builds the notification for a finished download. Cached
// results need none and return false.
func ForDownload(res download.Result) (Notification, bool) {
	if res.Cached {
		return Notification{}, false
	}
	body := trackLine(res.Track)
	if res.Err != nil {
		return Notification{
			Title:    "Download failed",
			Body:     body,
			Icon:     "dialog-error",
			Timeout:  5000,
			Urgency:  UrgencyNormal,
			Category: "transfer.error",
			Tag:      DownloadTag,
		}, true
	}
	return Notification{
		Title:    "Download finished",
		Body:     body,
		Icon:     "audio-x-generic",
		Timeout:  3000,
		Urgency:  UrgencyLow,
		Category: "transfer.complete",
		Tag:      DownloadTag,
	}, true
}

func trackLine(m library.Metadata) string {
	if artist := m.ArtistName(); artist != "" {
		return m.Title + " - " + artist
	}
	if m.Title != "" {
		return m.Title
	}
	return m.ID
}

// Disabled returns a notifier that drops every notification.
func Disabled() Notifier {
	return &stubNotifier{}
}

type stubNotifier struct{}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (s *stubNotifier) Close(_ uint32) error { return nil }
