//go:build linux

package platform

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// readEvents feeds the event channel until the connection closes. It is the
// only goroutine besides the dispatch loop.
func (b *LinuxBackend) readEvents() {
	defer close(b.events)
	for {
		ev, err := b.conn.WaitForEvent()
		if ev == nil && err == nil {
			b.lost.Store(true)
			return
		}
		if err != nil {
			b.events <- ProtocolError{Err: err}
			continue
		}
		if out := translate(ev, b.conn.AtomName); out != nil {
			b.events <- out
		}
	}
}

// translate turns an X event into a platform event, or nil for events the
// manager does not handle. atomName resolves message and property atoms.
func translate(ev xgb.Event, atomName func(xproto.Atom) string) Event {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return MapRequest{Window: WindowID(e.Window)}
	case xproto.ButtonPressEvent:
		return ButtonPress{
			Time:   uint32(e.Time),
			Window: WindowID(e.Event),
			Child:  WindowID(e.Child),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
			Button: uint8(e.Detail),
			State:  e.State,
		}
	case xproto.ButtonReleaseEvent:
		return ButtonRelease{
			Time:   uint32(e.Time),
			Window: WindowID(e.Event),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
			Button: uint8(e.Detail),
			State:  e.State,
		}
	case xproto.MotionNotifyEvent:
		return Motion{
			Time:   uint32(e.Time),
			Window: WindowID(e.Event),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
			State:  e.State,
		}
	case xproto.KeyPressEvent:
		return KeyPress{
			Time:       uint32(e.Time),
			Root:       WindowID(e.Root),
			Window:     WindowID(e.Event),
			Child:      WindowID(e.Child),
			RootX:      int(e.RootX),
			RootY:      int(e.RootY),
			EventX:     int(e.EventX),
			EventY:     int(e.EventY),
			State:      e.State,
			Keycode:    uint8(e.Detail),
			SameScreen: e.SameScreen,
		}
	case xproto.KeyReleaseEvent:
		return KeyRelease{
			Time:    uint32(e.Time),
			Window:  WindowID(e.Event),
			State:   e.State,
			Keycode: uint8(e.Detail),
		}
	case xproto.EnterNotifyEvent:
		return Enter{
			Time:   uint32(e.Time),
			Window: WindowID(e.Event),
			Mode:   e.Mode,
			Detail: e.Detail,
		}
	case xproto.ConfigureNotifyEvent:
		return ConfigureNotify{
			Window: WindowID(e.Window),
			Bounds: Rect{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)},
		}
	case xproto.ConfigureRequestEvent:
		return ConfigureRequest{
			Window:      WindowID(e.Window),
			Mask:        e.ValueMask,
			X:           int(e.X),
			Y:           int(e.Y),
			Width:       int(e.Width),
			Height:      int(e.Height),
			BorderWidth: int(e.BorderWidth),
			Sibling:     WindowID(e.Sibling),
			StackMode:   e.StackMode,
		}
	case xproto.ClientMessageEvent:
		msg := ClientMessage{
			Window: WindowID(e.Window),
			Type:   atomName(e.Type),
			Format: e.Format,
		}
		if e.Format == 32 {
			copy(msg.Data[:], e.Data.Data32)
		}
		return msg
	case xproto.CirculateRequestEvent:
		return CirculateRequest{Window: WindowID(e.Window), Place: e.Place}
	case xproto.MappingNotifyEvent:
		return MappingChanged{Request: e.Request}
	case xproto.UnmapNotifyEvent:
		return Unmap{Window: WindowID(e.Window), Event: WindowID(e.Event)}
	case xproto.DestroyNotifyEvent:
		return Destroy{Window: WindowID(e.Window)}
	case xproto.PropertyNotifyEvent:
		return PropertyChange{
			Time:    uint32(e.Time),
			Window:  WindowID(e.Window),
			Atom:    atomName(e.Atom),
			Deleted: e.State == xproto.PropertyDelete,
		}
	case xproto.ColormapNotifyEvent:
		return ColormapChange{Window: WindowID(e.Window), Colormap: uint32(e.Colormap), New: e.New}
	case randr.ScreenChangeNotifyEvent:
		return OutputsChanged{Time: uint32(e.Timestamp)}
	case randr.NotifyEvent:
		return OutputsChanged{}
	}
	return nil
}
