//go:build linux

package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/catvibes/catvibes/internal/download"
	"github.com/catvibes/catvibes/internal/library"
)

type busCall struct {
	method string
	args   []any
}

// fakeBus answers Notify with increasing ids.
type fakeBus struct {
	calls  []busCall
	nextID uint32
	err    error
}

func (b *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	b.calls = append(b.calls, busCall{method: method, args: args})
	if b.err != nil {
		return &dbus.Call{Err: b.err}
	}
	b.nextID++
	return &dbus.Call{Body: []any{b.nextID}}
}

func downloadNotification(t *testing.T, res download.Result) Notification {
	t.Helper()
	n, ok := ForDownload(res)
	if !ok {
		t.Fatalf("ForDownload(%+v) built no notification", res)
	}
	return n
}

func TestDBusNotifier_SendsDownloadNotification(t *testing.T) {
	bus := &fakeBus{}
	n := newDBusNotifier(bus)
	track := library.Metadata{ID: "abc", Title: "Song", Artists: []library.Artist{{Name: "Band"}}}

	id, err := n.Notify(downloadNotification(t, download.Result{Track: track}))
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if id != 1 {
		t.Errorf("Notify() id = %d, want 1", id)
	}

	if len(bus.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(bus.calls))
	}
	c := bus.calls[0]
	if c.method != dbusNotifyInterface+".Notify" {
		t.Errorf("method = %q", c.method)
	}
	if c.args[0] != appName || c.args[1] != uint32(0) || c.args[3] != "Download finished" || c.args[4] != "Song - Band" {
		t.Errorf("args = %v", c.args)
	}
	h, ok := c.args[6].(map[string]dbus.Variant)
	if !ok {
		t.Fatalf("hints have type %T", c.args[6])
	}
	if got := h["category"].Value(); got != "transfer.complete" {
		t.Errorf("category hint = %v, want transfer.complete", got)
	}
	if got := h["urgency"].Value(); got != byte(UrgencyLow) {
		t.Errorf("urgency hint = %v, want %d", got, UrgencyLow)
	}
}

func TestDBusNotifier_DownloadsReplaceEachOther(t *testing.T) {
	bus := &fakeBus{}
	n := newDBusNotifier(bus)
	track := library.Metadata{ID: "abc", Title: "Song"}

	first, _ := n.Notify(downloadNotification(t, download.Result{Track: track}))
	_, _ = n.Notify(downloadNotification(t, download.Result{Track: track, Err: errors.New("blocked")}))
	_, _ = n.Notify(Notification{Title: "untagged"})

	if got := bus.calls[1].args[1]; got != first {
		t.Errorf("second download replaces %v, want %d", got, first)
	}
	if got := bus.calls[1].args[3]; got != "Download failed" {
		t.Errorf("second title = %v", got)
	}
	if got := bus.calls[2].args[1]; got != uint32(0) {
		t.Errorf("untagged notification replaces %v, want 0", got)
	}
}

func TestDBusNotifier_CloseForgetsTag(t *testing.T) {
	bus := &fakeBus{}
	n := newDBusNotifier(bus)
	track := library.Metadata{ID: "abc"}

	id, _ := n.Notify(downloadNotification(t, download.Result{Track: track}))
	if err := n.Close(id); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	_, _ = n.Notify(downloadNotification(t, download.Result{Track: track}))

	if got := bus.calls[1].method; got != dbusNotifyInterface+".CloseNotification" {
		t.Errorf("method = %q", got)
	}
	if got := bus.calls[2].args[1]; got != uint32(0) {
		t.Errorf("notification after close replaces %v, want 0", got)
	}
}

func TestDBusNotifier_CallError(t *testing.T) {
	bus := &fakeBus{err: errors.New("no daemon")}
	n := newDBusNotifier(bus)

	id, err := n.Notify(Notification{Title: "x", Tag: DownloadTag})
	if err == nil || id != 0 {
		t.Errorf("Notify() = %d, %v; want 0 and an error", id, err)
	}
	if len(n.last) != 0 {
		t.Errorf("failed call remembered an id: %v", n.last)
	}
}
