package platform

// Event is one decoded display-server event. The set of kinds is closed;
// the dispatch loop switches over the concrete types below.
type Event interface {
	event()
}

// MapRequest: a window wants to be displayed.
type MapRequest struct {
	Window WindowID
}

// ButtonPress is a pointer button press delivered through a grab.
type ButtonPress struct {
	Time   uint32
	Window WindowID
	Child  WindowID
	RootX  int
	RootY  int
	Button uint8
	State  uint16
}

// ButtonRelease ends a pointer gesture.
type ButtonRelease struct {
	Time   uint32
	Window WindowID
	RootX  int
	RootY  int
	Button uint8
	State  uint16
}

// Motion is a pointer motion event during a grab.
type Motion struct {
	Time   uint32
	Window WindowID
	RootX  int
	RootY  int
	State  uint16
}

// KeyPress carries the raw event fields so an unbound key can be forwarded
// verbatim. Keycodes are matched against the grabs on the dispatch loop.
type KeyPress struct {
	Time       uint32
	Root       WindowID
	Window     WindowID
	Child      WindowID
	RootX      int
	RootY      int
	EventX     int
	EventY     int
	State      uint16
	Keycode    uint8
	SameScreen bool
}

// KeyRelease is delivered for grabbed keys.
type KeyRelease struct {
	Time    uint32
	Window  WindowID
	State   uint16
	Keycode uint8
}

// Enter is a pointer crossing into a window.
type Enter struct {
	Time   uint32
	Window WindowID
	Mode   uint8
	Detail uint8
}

// Crossing modes of Enter.
const (
	CrossNormal uint8 = 0
	CrossGrab   uint8 = 1
	CrossUngrab uint8 = 2
)

// ConfigureNotify reports a window's new geometry.
type ConfigureNotify struct {
	Window WindowID
	Bounds Rect
}

// ConfigureRequest is a client asking to change its own geometry or stacking.
type ConfigureRequest struct {
	Window      WindowID
	Mask        uint16
	X           int
	Y           int
	Width       int
	Height      int
	BorderWidth int
	Sibling     WindowID
	StackMode   uint8
}

// ClientMessage is a protocol message. Type is the resolved atom name.
type ClientMessage struct {
	Window WindowID
	Type   string
	Format uint8
	Data   [5]uint32
}

// CirculateRequest asks for a window to be raised or lowered.
type CirculateRequest struct {
	Window WindowID
	Place  uint8
}

// MappingChanged is sent when the keyboard mapping changed.
type MappingChanged struct {
	Request uint8
}

// Unmap reports that a window was unmapped.
type Unmap struct {
	Window WindowID
	Event  WindowID
}

// Destroy reports that a window was destroyed.
type Destroy struct {
	Window WindowID
}

// PropertyChange reports a property change. Atom is the resolved name.
type PropertyChange struct {
	Time    uint32
	Window  WindowID
	Atom    string
	Deleted bool
}

// ColormapChange reports a colormap attribute change on a window.
type ColormapChange struct {
	Window   WindowID
	Colormap uint32
	New      bool
}

// OutputsChanged reports that the output topology changed.
type OutputsChanged struct {
	Time uint32
}

// ShapeChanged reports that a window's shape changed.
type ShapeChanged struct {
	Window WindowID
}

// ProtocolError is an asynchronous request error reported by the server.
type ProtocolError struct {
	Err error
}

func (MapRequest) event()       {}
func (ButtonPress) event()      {}
func (ButtonRelease) event()    {}
func (Motion) event()           {}
func (KeyPress) event()         {}
func (KeyRelease) event()       {}
func (Enter) event()            {}
func (ConfigureNotify) event()  {}
func (ConfigureRequest) event() {}
func (ClientMessage) event()    {}
func (CirculateRequest) event() {}
func (MappingChanged) event()   {}
func (Unmap) event()            {}
func (Destroy) event()          {}
func (PropertyChange) event()   {}
func (ColormapChange) event()   {}
func (OutputsChanged) event()   {}
func (ShapeChanged) event()     {}
func (ProtocolError) event()    {}
