//go:build linux

package notify

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// dbusNotifier sends notifications to the session notification daemon and
// remembers the last id per tag so tagged notifications replace each other.
type dbusNotifier struct {
	obj caller

	mu   sync.Mutex
	last map[string]uint32
}

// New creates a Notifier that sends desktop notifications via D-Bus.
// Returns a no-op notifier if D-Bus is unavailable.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return &stubNotifier{}, nil //nolint:nilerr // no session bus, notifications off
	}
	return newDBusNotifier(conn.Object(dbusNotifyDest, dbusNotifyPath)), nil
}

func newDBusNotifier(obj caller) *dbusNotifier {
	return &dbusNotifier{obj: obj, last: make(map[string]uint32)}
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	return h
}

// Notify sends n. A tagged notification without ReplacesID replaces the
// previous one carrying the same tag.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	replaces := notif.ReplacesID
	if replaces == 0 && notif.Tag != "" {
		replaces = n.last[notif.Tag]
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := n.obj.Call(
		dbusNotifyInterface+".Notify", 0,
		appName, replaces, notif.Icon, notif.Title, notif.Body,
		[]string{}, hints(notif), notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	if notif.Tag != "" {
		n.last[notif.Tag] = id
	}
	return id, nil
}

// Close closes a notification by id and forgets it.
func (n *dbusNotifier) Close(id uint32) error {
	n.mu.Lock()
	for tag, last := range n.last {
		if last == id {
			delete(n.last, tag)
		}
	}
	n.mu.Unlock()

	return n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}
