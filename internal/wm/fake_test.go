package wm

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/stapel/wmwm-sub000/internal/config"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

type fakeWindow struct {
	geom       platform.Rect
	attrs      platform.Attributes
	hints      platform.SizeHints
	protocols  platform.Protocols
	netState   []string
	desktop    int
	hasDesktop bool
	parent     platform.WindowID
	mapped     bool
	gone       bool
}

type warp struct {
	win  platform.WindowID
	x, y int
}

type restack struct {
	win  platform.WindowID
	mode platform.StackMode
}

// fakeBackend records every request the core makes and serves queries from
// an in-memory window table.
type fakeBackend struct {
	root    platform.WindowID
	screen  platform.Rect
	windows map[platform.WindowID]*fakeWindow
	nextID  platform.WindowID
	outputs []platform.Output
	atoms   map[uint32]string

	pointerX, pointerY int
	pointerChild       platform.WindowID
	pointerErr         error
	topLevel           []platform.WindowID

	calls          []string
	geomRequests   int
	notifies       []platform.Rect
	wmState        map[platform.WindowID]platform.WMState
	netStates      map[platform.WindowID][]string
	desktops       map[platform.WindowID]int
	frameExtents   map[platform.WindowID]int
	borderColors   map[platform.WindowID]uint32
	saveSet        map[platform.WindowID]bool
	currentDesktop int
	activeWindow   platform.WindowID
	clientList     []platform.WindowID
	inputFocus     platform.WindowID
	restacks       []restack
	protocolMsgs   []string
	killed         []platform.WindowID
	forwarded      []platform.KeyPress
	warps          []warp
	pointerGrabbed bool
	passedThrough  []platform.ConfigureRequest
	destroyed      []platform.WindowID
	keymap         map[string]uint8

	events chan platform.Event
}

func newFakeBackend() *fakeBackend {
	screen := platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	return &fakeBackend{
		root:         1,
		screen:       screen,
		windows:      make(map[platform.WindowID]*fakeWindow),
		nextID:       0x1000,
		outputs:      []platform.Output{{ID: 100, Name: "A", Bounds: screen, Active: true}},
		atoms:        make(map[uint32]string),
		wmState:      make(map[platform.WindowID]platform.WMState),
		netStates:    make(map[platform.WindowID][]string),
		desktops:     make(map[platform.WindowID]int),
		frameExtents: make(map[platform.WindowID]int),
		borderColors: make(map[platform.WindowID]uint32),
		saveSet:      make(map[platform.WindowID]bool),
		keymap:       make(map[string]uint8),
		events:       make(chan platform.Event, 16),
	}
}

// addWindow creates an unmapped top-level client window.
func (f *fakeBackend) addWindow(r platform.Rect) platform.WindowID {
	f.nextID++
	f.windows[f.nextID] = &fakeWindow{geom: r, parent: f.root, protocols: platform.Protocols{AcceptsInput: true}}
	return f.nextID
}

func (f *fakeBackend) window(win platform.WindowID) (*fakeWindow, error) {
	w, ok := f.windows[win]
	if !ok || w.gone {
		return nil, platform.ErrNoSuchWindow
	}
	return w, nil
}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) indexOfCall(call string) int {
	for i, c := range f.calls {
		if c == call {
			return i
		}
	}
	return -1
}

func (f *fakeBackend) Root() platform.WindowID { return f.root }
func (f *fakeBackend) ScreenBounds() platform.Rect { return f.screen }

func (f *fakeBackend) Geometry(win platform.WindowID) (platform.Rect, error) {
	w, err := f.window(win)
	if err != nil {
		return platform.Rect{}, err
	}
	return w.geom, nil
}

func (f *fakeBackend) Attributes(win platform.WindowID) (platform.Attributes, error) {
	w, err := f.window(win)
	if err != nil {
		return platform.Attributes{}, err
	}
	return w.attrs, nil
}

func (f *fakeBackend) SizeHints(win platform.WindowID) platform.SizeHints {
	if w, err := f.window(win); err == nil {
		return w.hints
	}
	return platform.SizeHints{}
}

func (f *fakeBackend) Protocols(win platform.WindowID) platform.Protocols {
	if w, err := f.window(win); err == nil {
		return w.protocols
	}
	return platform.Protocols{}
}

func (f *fakeBackend) NetWMState(win platform.WindowID) []string {
	if w, err := f.window(win); err == nil {
		return w.netState
	}
	return nil
}

func (f *fakeBackend) WindowDesktop(win platform.WindowID) (int, bool) {
	if w, err := f.window(win); err == nil && w.hasDesktop {
		return w.desktop, true
	}
	return 0, false
}

func (f *fakeBackend) QueryPointer() (int, int, platform.WindowID, error) {
	if f.pointerErr != nil {
		return 0, 0, platform.None, f.pointerErr
	}
	return f.pointerX, f.pointerY, f.pointerChild, nil
}

func (f *fakeBackend) Outputs() ([]platform.Output, error) {
	return f.outputs, nil
}

func (f *fakeBackend) TopLevelWindows() ([]platform.WindowID, error) {
	return f.topLevel, nil
}

func (f *fakeBackend) AtomName(atom uint32) string { return f.atoms[atom] }

func (f *fakeBackend) AllocColor(name string) (uint32, error) {
	switch name {
	case "chocolate1":
		return 0xff7f24, nil
	case "grey40":
		return 0x666666, nil
	}
	return 0, errors.New("unknown color")
}

func (f *fakeBackend) IgnoreMods() []uint16 { return []uint16{0, 2} }

func (f *fakeBackend) CreateFrame(bounds platform.Rect, border int, pixel uint32) (platform.WindowID, error) {
	f.nextID++
	f.windows[f.nextID] = &fakeWindow{geom: bounds, parent: f.root}
	f.borderColors[f.nextID] = pixel
	f.record("create-frame:%#x", f.nextID)
	return f.nextID, nil
}

func (f *fakeBackend) Reparent(win, parent platform.WindowID, x, y int) error {
	w, err := f.window(win)
	if err != nil {
		return err
	}
	w.parent = parent
	w.geom.X, w.geom.Y = x, y
	f.record("reparent:%#x:%#x", win, parent)
	return nil
}

func (f *fakeBackend) DestroyWindow(win platform.WindowID) {
	f.destroyed = append(f.destroyed, win)
	if w, ok := f.windows[win]; ok {
		w.gone = true
	}
}

func (f *fakeBackend) ChangeSaveSet(win platform.WindowID, insert bool) {
	f.saveSet[win] = insert
}

func (f *fakeBackend) MoveResize(win platform.WindowID, r platform.Rect) {
	f.geomRequests++
	if w, ok := f.windows[win]; ok {
		w.geom = r
	}
}

func (f *fakeBackend) Move(win platform.WindowID, x, y int) {
	f.geomRequests++
	if w, ok := f.windows[win]; ok {
		w.geom.X, w.geom.Y = x, y
	}
}

func (f *fakeBackend) Resize(win platform.WindowID, width, height int) {
	f.geomRequests++
	if w, ok := f.windows[win]; ok {
		w.geom.Width, w.geom.Height = width, height
	}
}

func (f *fakeBackend) SetBorderWidth(win platform.WindowID, width int) {
	f.geomRequests++
}

func (f *fakeBackend) SetBorderColor(win platform.WindowID, pixel uint32) {
	f.borderColors[win] = pixel
}

func (f *fakeBackend) Restack(win platform.WindowID, mode platform.StackMode) {
	f.restacks = append(f.restacks, restack{win: win, mode: mode})
}

func (f *fakeBackend) Circulate(win platform.WindowID, place uint8) {
	f.record("circulate:%#x:%d", win, place)
}

func (f *fakeBackend) ConfigurePassThrough(req platform.ConfigureRequest) {
	f.passedThrough = append(f.passedThrough, req)
}

func (f *fakeBackend) SendConfigureNotify(win platform.WindowID, r platform.Rect, border int) {
	f.geomRequests++
	f.notifies = append(f.notifies, r)
}

func (f *fakeBackend) Map(win platform.WindowID) {
	if w, ok := f.windows[win]; ok {
		w.mapped = true
	}
	f.record("map:%#x", win)
}

func (f *fakeBackend) Unmap(win platform.WindowID) {
	if w, ok := f.windows[win]; ok {
		w.mapped = false
	}
	f.record("unmap:%#x", win)
}

func (f *fakeBackend) SetEventMask(win platform.WindowID, mask platform.EventMask) {
	f.record("mask:%#x:%d", win, mask)
}

func (f *fakeBackend) SetInputFocus(win platform.WindowID, time uint32) {
	f.inputFocus = win
}

func (f *fakeBackend) SendProtocolMessage(win platform.WindowID, protocol string, time uint32) {
	f.protocolMsgs = append(f.protocolMsgs, fmt.Sprintf("%s:%#x", protocol, win))
}

func (f *fakeBackend) InstallColormap(cmap uint32) {
	f.record("colormap:%#x", cmap)
}

func (f *fakeBackend) KillClient(win platform.WindowID) {
	f.killed = append(f.killed, win)
}

func (f *fakeBackend) GrabPointer(resize bool, time uint32) error {
	f.pointerGrabbed = true
	return nil
}

func (f *fakeBackend) UngrabPointer(time uint32) {
	f.pointerGrabbed = false
}

func (f *fakeBackend) WarpPointer(win platform.WindowID, x, y int) {
	f.warps = append(f.warps, warp{win: win, x: x, y: y})
}

var modNames = map[string]uint16{
	"shift":   xproto.ModMaskShift,
	"lock":    xproto.ModMaskLock,
	"control": xproto.ModMaskControl,
	"mod1":    xproto.ModMask1,
	"mod2":    xproto.ModMask2,
	"mod3":    xproto.ModMask3,
	"mod4":    xproto.ModMask4,
	"mod5":    xproto.ModMask5,
}

// resolve turns a key sequence into modifiers and a keycode using the fake
// keyboard mapping. Unknown key names get the next free keycode.
func (f *fakeBackend) resolve(seq string) (uint16, uint8) {
	var mods uint16
	var kc uint8
	for _, part := range strings.Split(seq, "-") {
		if mask, ok := modNames[strings.ToLower(part)]; ok {
			mods |= mask
			continue
		}
		code, ok := f.keymap[part]
		if !ok {
			code = uint8(100 + len(f.keymap))
			f.keymap[part] = code
		}
		kc = code
	}
	return mods, kc
}

func (f *fakeBackend) GrabKeys(sequences []string) []platform.KeyGrab {
	grabs := make([]platform.KeyGrab, 0, len(sequences))
	for _, seq := range sequences {
		mods, kc := f.resolve(seq)
		grabs = append(grabs, platform.KeyGrab{Sequence: seq, Mods: mods, Keycodes: []uint8{kc}})
	}
	f.record("grab-keys:%d", len(grabs))
	return grabs
}

func (f *fakeBackend) GrabButtons(buttons []platform.ButtonGrab) {}

func (f *fakeBackend) ForwardKey(win platform.WindowID, ev platform.KeyPress) {
	f.forwarded = append(f.forwarded, ev)
}

func (f *fakeBackend) RefreshKeyboard() { f.record("refresh-keyboard") }

func (f *fakeBackend) SetWMState(win platform.WindowID, state platform.WMState) {
	f.wmState[win] = state
}

func (f *fakeBackend) SetSupported(atoms []string) {}
func (f *fakeBackend) SetNumberOfDesktops(n int) {}
func (f *fakeBackend) SetCurrentDesktop(n int) {
	f.currentDesktop = n
	f.record("current-desktop:%d", n)
}

func (f *fakeBackend) SetActiveWindow(win platform.WindowID) { f.activeWindow = win }

func (f *fakeBackend) SetClientList(wins []platform.WindowID) {
	f.clientList = append([]platform.WindowID(nil), wins...)
}

func (f *fakeBackend) SetWindowDesktop(win platform.WindowID, desktop int) {
	f.desktops[win] = desktop
}

func (f *fakeBackend) SetNetWMState(win platform.WindowID, states []string) {
	f.netStates[win] = append([]string(nil), states...)
}

func (f *fakeBackend) SetAllowedActions(win platform.WindowID, actions []string) {}

func (f *fakeBackend) SetFrameExtents(win platform.WindowID, border int) {
	f.frameExtents[win] = border
}

func (f *fakeBackend) Events() <-chan platform.Event { return f.events }
func (f *fakeBackend) Flush() {}
func (f *fakeBackend) Close() {}

func (f *fakeBackend) hasState(win platform.WindowID, state string) bool {
	for _, s := range f.netStates[win] {
		if s == state {
			return true
		}
	}
	return false
}

// newTestManager starts a manager on fb with the default configuration.
func newTestManager(t *testing.T, fb *fakeBackend) *Manager {
	t.Helper()
	return newTestManagerWithConfig(t, fb, config.DefaultConfig())
}

func newTestManagerWithConfig(t *testing.T, fb *fakeBackend, cfg *config.Config) *Manager {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m, err := New(fb, cfg, logrus.NewEntry(logger))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	m.spawn = func(program string) error {
		fb.record("spawn:%s", program)
		return nil
	}
	m.Start()
	return m
}

// mapWindow creates a window of the given size and lets the manager admit it.
func mapWindow(t *testing.T, m *Manager, fb *fakeBackend, w, h int) *Client {
	t.Helper()
	win := fb.addWindow(platform.Rect{Width: w, Height: h})
	m.dispatch(platform.MapRequest{Window: win})
	c := m.ClientFor(win)
	if c == nil {
		t.Fatalf("expected window %#x to be managed", win)
	}
	return c
}

// enter simulates the pointer entering c's frame.
func enter(m *Manager, fb *fakeBackend, c *Client) {
	fb.pointerChild = c.Frame
	m.dispatch(platform.Enter{Window: c.Frame, Mode: platform.CrossNormal})
}
