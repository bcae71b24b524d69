package platform

import "errors"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// None is the null window.
const None WindowID = 0

// ErrNoSuchWindow is returned when a request targets a window the server no
// longer knows about.
var ErrNoSuchWindow = errors.New("no such window")

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Output describes one physical output as reported by the display server.
// Active is false when the output has no display controller driving it.
type Output struct {
	ID     uint32
	Name   string
	Bounds Rect
	Active bool
}

// Attributes is the subset of window attributes the manager cares about.
type Attributes struct {
	OverrideRedirect bool
	Viewable         bool
	Colormap         uint32
}

// Gravity is the ICCCM window gravity.
type Gravity int

const (
	GravityForget Gravity = iota
	GravityNorthWest
	GravityNorth
	GravityNorthEast
	GravityWest
	GravityCenter
	GravityEast
	GravitySouthWest
	GravitySouth
	GravitySouthEast
	GravityStatic
)

// SizeHints mirrors WM_NORMAL_HINTS. The Has* flags record which fields the
// client actually set.
type SizeHints struct {
	UserPosition bool

	HasMin    bool
	MinWidth  int
	MinHeight int

	HasMax    bool
	MaxWidth  int
	MaxHeight int

	HasBase    bool
	BaseWidth  int
	BaseHeight int

	HasInc    bool
	WidthInc  int
	HeightInc int

	HasGravity bool
	Gravity    Gravity
}

// Protocols describes how a client wants to be focused and closed.
type Protocols struct {
	AcceptsInput bool
	TakeFocus    bool
	DeleteWindow bool
}

// StackMode selects where a window goes in the stacking order.
type StackMode int

const (
	StackAbove StackMode = iota
	StackBelow
	StackOpposite
)

// WMState is the ICCCM WM_STATE value.
type WMState int

const (
	StateWithdrawn WMState = 0
	StateNormal    WMState = 1
	StateIconic    WMState = 3
)

// EventMask names the event selections the manager switches between.
type EventMask int

const (
	// MaskClient is selected on a managed client window.
	MaskClient EventMask = iota
	// MaskFrame is selected on a visible frame.
	MaskFrame
	// MaskFrameHidden is selected on a frame that is about to be unmapped.
	MaskFrameHidden
)

// ConfigureRequest field bits, as delivered by the server.
const (
	ConfigX uint16 = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)

// KeyGrab is a key sequence as resolved against the keyboard mapping at
// grab time. One sequence may be produced by several keycodes.
type KeyGrab struct {
	Sequence string
	Mods     uint16
	Keycodes []uint8
}

// ButtonGrab is one pointer button combination grabbed on the root window.
type ButtonGrab struct {
	Mods   uint16
	Button uint8
}

// Backend is the transport to the display server: the sink for requests and
// the source of events. All calls are made from the dispatch loop.
type Backend interface {
	Root() WindowID
	ScreenBounds() Rect
	Geometry(win WindowID) (Rect, error)
	Attributes(win WindowID) (Attributes, error)
	SizeHints(win WindowID) SizeHints
	Protocols(win WindowID) Protocols
	NetWMState(win WindowID) []string
	WindowDesktop(win WindowID) (int, bool)
	QueryPointer() (x, y int, child WindowID, err error)
	Outputs() ([]Output, error)
	TopLevelWindows() ([]WindowID, error)
	AtomName(atom uint32) string
	AllocColor(name string) (uint32, error)
	IgnoreMods() []uint16

	CreateFrame(bounds Rect, border int, pixel uint32) (WindowID, error)
	Reparent(win, parent WindowID, x, y int) error
	DestroyWindow(win WindowID)
	ChangeSaveSet(win WindowID, insert bool)

	MoveResize(win WindowID, r Rect)
	Move(win WindowID, x, y int)
	Resize(win WindowID, width, height int)
	SetBorderWidth(win WindowID, width int)
	SetBorderColor(win WindowID, pixel uint32)
	Restack(win WindowID, mode StackMode)
	Circulate(win WindowID, place uint8)
	ConfigurePassThrough(req ConfigureRequest)
	SendConfigureNotify(win WindowID, r Rect, border int)
	Map(win WindowID)
	Unmap(win WindowID)
	SetEventMask(win WindowID, mask EventMask)

	// SetInputFocus with None reverts focus to the pointer root.
	SetInputFocus(win WindowID, time uint32)
	SendProtocolMessage(win WindowID, protocol string, time uint32)
	InstallColormap(cmap uint32)
	KillClient(win WindowID)
	GrabPointer(resize bool, time uint32) error
	UngrabPointer(time uint32)
	WarpPointer(win WindowID, x, y int)
	// GrabKeys replaces the key grabs with sequences such as "Mod4-Tab"
	// and reports how each one resolved. Unknown sequences are left out.
	GrabKeys(sequences []string) []KeyGrab
	GrabButtons(buttons []ButtonGrab)
	ForwardKey(win WindowID, ev KeyPress)
	RefreshKeyboard()

	SetWMState(win WindowID, state WMState)
	SetSupported(atoms []string)
	SetNumberOfDesktops(n int)
	SetCurrentDesktop(n int)
	SetActiveWindow(win WindowID)
	SetClientList(wins []WindowID)
	SetWindowDesktop(win WindowID, desktop int)
	SetNetWMState(win WindowID, states []string)
	SetAllowedActions(win WindowID, actions []string)
	SetFrameExtents(win WindowID, border int)

	Events() <-chan Event
	Flush()
	Close()
}
