//go:build linux

package platform

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/sirupsen/logrus"

	"github.com/stapel/wmwm-sub000/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn   *x11.Connection
	log    *logrus.Entry
	events chan Event

	// lost is set by the reader once the server side is gone.
	lost atomic.Bool
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend connects to display, takes over window management and
// starts reading events. An empty display means $DISPLAY.
func NewLinuxBackend(display string, log *logrus.Entry) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	if err := conn.BecomeWM(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.InitRandR(); err != nil {
		log.WithError(err).Warn("randr unavailable, output changes will not be tracked")
	}

	b := &LinuxBackend{
		conn:   conn,
		log:    log,
		events: make(chan Event, 256),
	}
	go b.readEvents()
	return b, nil
}

// logErr records failures of requests the core does not wait on.
func (b *LinuxBackend) logErr(op string, win WindowID, err error) {
	if err != nil {
		b.log.WithError(err).WithField("window", win).Debugf("%s failed", op)
	}
}

func windowErr(err error) error {
	if errors.Is(err, x11.ErrBadWindow) {
		return fmt.Errorf("%w: %v", ErrNoSuchWindow, err)
	}
	return err
}

func (b *LinuxBackend) Root() WindowID {
	return WindowID(b.conn.Root)
}

func (b *LinuxBackend) ScreenBounds() Rect {
	w, h := b.conn.ScreenSize()
	return Rect{Width: w, Height: h}
}

func (b *LinuxBackend) Geometry(win WindowID) (Rect, error) {
	x, y, w, h, err := b.conn.Geometry(xproto.Window(win))
	if err != nil {
		return Rect{}, windowErr(err)
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (b *LinuxBackend) Attributes(win WindowID) (Attributes, error) {
	or, viewable, cmap, err := b.conn.Attributes(xproto.Window(win))
	if err != nil {
		return Attributes{}, windowErr(err)
	}
	return Attributes{OverrideRedirect: or, Viewable: viewable, Colormap: uint32(cmap)}, nil
}

// SizeHints converts WM_NORMAL_HINTS. Missing hints are all-unset.
func (b *LinuxBackend) SizeHints(win WindowID) SizeHints {
	nh, err := b.conn.NormalHints(xproto.Window(win))
	if err != nil {
		return SizeHints{}
	}
	return sizeHintsFromICCCM(nh)
}

func sizeHintsFromICCCM(nh *icccm.NormalHints) SizeHints {
	has := func(flag uint) bool { return nh.Flags&flag != 0 }

	h := SizeHints{UserPosition: has(icccm.SizeHintUSPosition)}
	if has(icccm.SizeHintPMinSize) {
		h.HasMin = true
		h.MinWidth, h.MinHeight = int(nh.MinWidth), int(nh.MinHeight)
	}
	if has(icccm.SizeHintPMaxSize) {
		h.HasMax = true
		h.MaxWidth, h.MaxHeight = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if has(icccm.SizeHintPBaseSize) {
		h.HasBase = true
		h.BaseWidth, h.BaseHeight = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if has(icccm.SizeHintPResizeInc) {
		h.HasInc = true
		h.WidthInc, h.HeightInc = int(nh.WidthInc), int(nh.HeightInc)
	}
	if has(icccm.SizeHintPWinGravity) {
		h.HasGravity = true
		h.Gravity = Gravity(nh.WinGravity)
	}
	return h
}

func (b *LinuxBackend) Protocols(win WindowID) Protocols {
	input, takeFocus, deleteWindow := b.conn.Protocols(xproto.Window(win))
	return Protocols{AcceptsInput: input, TakeFocus: takeFocus, DeleteWindow: deleteWindow}
}

func (b *LinuxBackend) NetWMState(win WindowID) []string {
	return b.conn.NetWMState(xproto.Window(win))
}

func (b *LinuxBackend) WindowDesktop(win WindowID) (int, bool) {
	return b.conn.WindowDesktop(xproto.Window(win))
}

func (b *LinuxBackend) QueryPointer() (int, int, WindowID, error) {
	x, y, child, err := b.conn.QueryPointer()
	return x, y, WindowID(child), err
}

func (b *LinuxBackend) Outputs() ([]Output, error) {
	outputs, err := b.conn.Outputs()
	if err != nil {
		return nil, err
	}
	out := make([]Output, 0, len(outputs))
	for _, o := range outputs {
		out = append(out, Output{
			ID:     o.ID,
			Name:   o.Name,
			Bounds: Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height},
			Active: o.Active,
		})
	}
	return out, nil
}

func (b *LinuxBackend) TopLevelWindows() ([]WindowID, error) {
	children, err := b.conn.TopLevelWindows()
	if err != nil {
		return nil, err
	}
	wins := make([]WindowID, 0, len(children))
	for _, w := range children {
		wins = append(wins, WindowID(w))
	}
	return wins, nil
}

func (b *LinuxBackend) AtomName(atom uint32) string {
	return b.conn.AtomName(xproto.Atom(atom))
}

func (b *LinuxBackend) AllocColor(name string) (uint32, error) {
	return b.conn.AllocColor(name)
}

// IgnoreMods installs and returns the lock combinations for the current
// modifier mapping.
func (b *LinuxBackend) IgnoreMods() []uint16 {
	return b.conn.IgnoreMods()
}

func (b *LinuxBackend) CreateFrame(bounds Rect, border int, pixel uint32) (WindowID, error) {
	frame, err := b.conn.CreateFrame(bounds.X, bounds.Y, bounds.Width, bounds.Height, border, pixel)
	return WindowID(frame), err
}

func (b *LinuxBackend) Reparent(win, parent WindowID, x, y int) error {
	return windowErr(b.conn.Reparent(xproto.Window(win), xproto.Window(parent), x, y))
}

func (b *LinuxBackend) DestroyWindow(win WindowID) {
	b.conn.DestroyWindow(xproto.Window(win))
}

func (b *LinuxBackend) ChangeSaveSet(win WindowID, insert bool) {
	b.conn.ChangeSaveSet(xproto.Window(win), insert)
}

func (b *LinuxBackend) MoveResize(win WindowID, r Rect) {
	b.conn.MoveResize(xproto.Window(win), r.X, r.Y, r.Width, r.Height)
}

func (b *LinuxBackend) Move(win WindowID, x, y int) {
	b.conn.Move(xproto.Window(win), x, y)
}

func (b *LinuxBackend) Resize(win WindowID, width, height int) {
	b.conn.Resize(xproto.Window(win), width, height)
}

func (b *LinuxBackend) SetBorderWidth(win WindowID, width int) {
	b.conn.SetBorderWidth(xproto.Window(win), width)
}

func (b *LinuxBackend) SetBorderColor(win WindowID, pixel uint32) {
	b.conn.SetBorderColor(xproto.Window(win), pixel)
}

func (b *LinuxBackend) Restack(win WindowID, mode StackMode) {
	var xmode byte
	switch mode {
	case StackAbove:
		xmode = xproto.StackModeAbove
	case StackBelow:
		xmode = xproto.StackModeBelow
	case StackOpposite:
		xmode = xproto.StackModeOpposite
	}
	b.conn.Restack(xproto.Window(win), xmode)
}

func (b *LinuxBackend) Circulate(win WindowID, place uint8) {
	b.conn.Circulate(xproto.Window(win), place)
}

// ConfigurePassThrough forwards an unmanaged window's request unchanged.
func (b *LinuxBackend) ConfigurePassThrough(req ConfigureRequest) {
	var values []uint32
	if req.Mask&ConfigX != 0 {
		values = append(values, uint32(int32(req.X)))
	}
	if req.Mask&ConfigY != 0 {
		values = append(values, uint32(int32(req.Y)))
	}
	if req.Mask&ConfigWidth != 0 {
		values = append(values, uint32(req.Width))
	}
	if req.Mask&ConfigHeight != 0 {
		values = append(values, uint32(req.Height))
	}
	if req.Mask&ConfigBorderWidth != 0 {
		values = append(values, uint32(req.BorderWidth))
	}
	if req.Mask&ConfigSibling != 0 {
		values = append(values, uint32(req.Sibling))
	}
	if req.Mask&ConfigStackMode != 0 {
		values = append(values, uint32(req.StackMode))
	}
	b.conn.Configure(xproto.Window(req.Window), req.Mask, values)
}

func (b *LinuxBackend) SendConfigureNotify(win WindowID, r Rect, border int) {
	b.conn.SendConfigureNotify(xproto.Window(win), r.X, r.Y, r.Width, r.Height, border)
}

func (b *LinuxBackend) Map(win WindowID) {
	b.conn.Map(xproto.Window(win))
}

func (b *LinuxBackend) Unmap(win WindowID) {
	b.conn.Unmap(xproto.Window(win))
}

func (b *LinuxBackend) SetEventMask(win WindowID, mask EventMask) {
	var xmask uint32
	switch mask {
	case MaskClient:
		xmask = x11.ClientEventMask
	case MaskFrame:
		xmask = x11.FrameEventMask
	case MaskFrameHidden:
		xmask = x11.HiddenFrameEventMask
	}
	b.conn.SetEventMask(xproto.Window(win), xmask)
}

func (b *LinuxBackend) SetInputFocus(win WindowID, time uint32) {
	b.conn.SetInputFocus(xproto.Window(win), time)
}

func (b *LinuxBackend) SendProtocolMessage(win WindowID, protocol string, time uint32) {
	b.logErr(protocol, win, b.conn.SendProtocolMessage(xproto.Window(win), protocol, time))
}

func (b *LinuxBackend) InstallColormap(cmap uint32) {
	b.conn.InstallColormap(xproto.Colormap(cmap))
}

func (b *LinuxBackend) KillClient(win WindowID) {
	b.conn.KillClient(xproto.Window(win))
}

func (b *LinuxBackend) GrabPointer(resize bool, time uint32) error {
	return b.conn.GrabPointer(resize, time)
}

func (b *LinuxBackend) UngrabPointer(time uint32) {
	b.conn.UngrabPointer(time)
}

func (b *LinuxBackend) WarpPointer(win WindowID, x, y int) {
	b.conn.WarpPointer(xproto.Window(win), x, y)
}

// GrabKeys replaces every key grab on the root window.
func (b *LinuxBackend) GrabKeys(sequences []string) []KeyGrab {
	b.conn.UngrabKeys()
	grabs := make([]KeyGrab, 0, len(sequences))
	for _, seq := range sequences {
		mods, keycodes, err := b.conn.GrabSequence(seq)
		if err != nil {
			b.log.WithError(err).WithField("keys", seq).Warn("cannot grab key")
			continue
		}
		g := KeyGrab{Sequence: seq, Mods: mods}
		for _, kc := range keycodes {
			g.Keycodes = append(g.Keycodes, uint8(kc))
		}
		grabs = append(grabs, g)
	}
	return grabs
}

// GrabButtons replaces every button grab on the root window.
func (b *LinuxBackend) GrabButtons(buttons []ButtonGrab) {
	b.conn.UngrabButtons()
	for _, g := range buttons {
		b.conn.GrabButton(g.Mods, g.Button)
	}
}

func (b *LinuxBackend) ForwardKey(win WindowID, ev KeyPress) {
	b.conn.ForwardKey(xproto.Window(win), xproto.KeyPressEvent{
		Detail:     xproto.Keycode(ev.Keycode),
		Time:       xproto.Timestamp(ev.Time),
		Root:       xproto.Window(ev.Root),
		Event:      xproto.Window(win),
		Child:      xproto.Window(ev.Child),
		RootX:      int16(ev.RootX),
		RootY:      int16(ev.RootY),
		EventX:     int16(ev.EventX),
		EventY:     int16(ev.EventY),
		State:      ev.State,
		SameScreen: ev.SameScreen,
	})
}

func (b *LinuxBackend) RefreshKeyboard() {
	b.conn.RefreshKeyboard()
}

func (b *LinuxBackend) SetWMState(win WindowID, state WMState) {
	b.logErr("set WM_STATE", win, b.conn.SetWMState(xproto.Window(win), uint(state)))
}

func (b *LinuxBackend) SetSupported(atoms []string) {
	b.logErr("set _NET_SUPPORTED", b.Root(), b.conn.SetSupported(atoms))
}

func (b *LinuxBackend) SetNumberOfDesktops(n int) {
	b.logErr("set _NET_NUMBER_OF_DESKTOPS", b.Root(), b.conn.SetNumberOfDesktops(n))
}

func (b *LinuxBackend) SetCurrentDesktop(n int) {
	b.logErr("set _NET_CURRENT_DESKTOP", b.Root(), b.conn.SetCurrentDesktop(n))
}

func (b *LinuxBackend) SetActiveWindow(win WindowID) {
	b.logErr("set _NET_ACTIVE_WINDOW", win, b.conn.SetActiveWindow(xproto.Window(win)))
}

func (b *LinuxBackend) SetClientList(wins []WindowID) {
	xwins := make([]xproto.Window, 0, len(wins))
	for _, w := range wins {
		xwins = append(xwins, xproto.Window(w))
	}
	b.logErr("set _NET_CLIENT_LIST", b.Root(), b.conn.SetClientList(xwins))
}

func (b *LinuxBackend) SetWindowDesktop(win WindowID, desktop int) {
	b.logErr("set _NET_WM_DESKTOP", win, b.conn.SetWindowDesktop(xproto.Window(win), desktop))
}

func (b *LinuxBackend) SetNetWMState(win WindowID, states []string) {
	b.logErr("set _NET_WM_STATE", win, b.conn.SetNetWMState(xproto.Window(win), states))
}

func (b *LinuxBackend) SetAllowedActions(win WindowID, actions []string) {
	b.logErr("set _NET_WM_ALLOWED_ACTIONS", win, b.conn.SetAllowedActions(xproto.Window(win), actions))
}

func (b *LinuxBackend) SetFrameExtents(win WindowID, border int) {
	b.logErr("set _NET_FRAME_EXTENTS", win, b.conn.SetFrameExtents(xproto.Window(win), border))
}

func (b *LinuxBackend) Events() <-chan Event {
	return b.events
}

// Flush makes sure every request issued while handling a batch of events
// has reached the server.
func (b *LinuxBackend) Flush() {
	b.conn.Sync()
}

// Close disconnects; the event reader then closes the event channel. A
// connection the server already dropped is left alone.
func (b *LinuxBackend) Close() {
	if b.lost.Load() {
		return
	}
	b.conn.Close()
}
