//go:build linux

package platform

import (
	"testing"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

func atomNames(names map[xproto.Atom]string) func(xproto.Atom) string {
	return func(a xproto.Atom) string { return names[a] }
}

func TestTranslateKeyPressCarriesKeycode(t *testing.T) {
	ev := xproto.KeyPressEvent{Detail: 43, State: xproto.ModMask4, Event: 1, Child: 7, Time: 99}

	got, ok := translate(ev, atomNames(nil)).(KeyPress)
	if !ok {
		t.Fatalf("expected a KeyPress")
	}
	if got.Keycode != 43 || got.State != xproto.ModMask4 || got.Child != 7 || got.Time != 99 {
		t.Fatalf("expected keycode 43 with Mod4 on child 7, got %+v", got)
	}
}

func TestTranslateClientMessageResolvesType(t *testing.T) {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: 0x400001,
		Type:   310,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{1, 2, 3, 4, 5}),
	}

	got, ok := translate(ev, atomNames(map[xproto.Atom]string{310: "_NET_WM_STATE"})).(ClientMessage)
	if !ok {
		t.Fatalf("expected a ClientMessage")
	}
	if got.Type != "_NET_WM_STATE" || got.Window != 0x400001 {
		t.Fatalf("expected _NET_WM_STATE on 0x400001, got %+v", got)
	}
	if got.Data != [5]uint32{1, 2, 3, 4, 5} {
		t.Fatalf("expected the 32-bit payload, got %v", got.Data)
	}
}

func TestTranslateClientMessageIgnoresNarrowFormats(t *testing.T) {
	ev := xproto.ClientMessageEvent{
		Format: 8,
		Type:   1,
		Data:   xproto.ClientMessageDataUnionData8New(make([]byte, 20)),
	}

	got := translate(ev, atomNames(nil)).(ClientMessage)
	if got.Data != ([5]uint32{}) {
		t.Fatalf("expected an empty payload for format 8, got %v", got.Data)
	}
}

func TestTranslatePropertyNotify(t *testing.T) {
	names := atomNames(map[xproto.Atom]string{40: "WM_NORMAL_HINTS"})

	got := translate(xproto.PropertyNotifyEvent{Window: 5, Atom: 40, State: xproto.PropertyDelete}, names).(PropertyChange)
	if got.Atom != "WM_NORMAL_HINTS" || !got.Deleted {
		t.Fatalf("expected deleted WM_NORMAL_HINTS, got %+v", got)
	}

	got = translate(xproto.PropertyNotifyEvent{Window: 5, Atom: 40, State: xproto.PropertyNewValue}, names).(PropertyChange)
	if got.Deleted {
		t.Fatalf("expected a new value, got %+v", got)
	}
}

func TestTranslateOutputChanges(t *testing.T) {
	got, ok := translate(randr.ScreenChangeNotifyEvent{Timestamp: 12}, atomNames(nil)).(OutputsChanged)
	if !ok || got.Time != 12 {
		t.Fatalf("expected OutputsChanged at 12, got %+v", got)
	}
	if _, ok := translate(randr.NotifyEvent{}, atomNames(nil)).(OutputsChanged); !ok {
		t.Fatalf("expected RandR notify to report output changes")
	}
}

func TestTranslateDropsUnhandledEvents(t *testing.T) {
	if got := translate(xproto.KeymapNotifyEvent{}, atomNames(nil)); got != nil {
		t.Fatalf("expected nil for an unhandled event, got %+v", got)
	}
}
