package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ErrAnotherWM is returned by BecomeWM when substructure redirection on the
// root window is already held by another client.
var ErrAnotherWM = errors.New("another window manager is already running")

// WMName is advertised on the supporting check window.
const WMName = "wmwm"

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	hasRandR     bool
	check        *xwindow.Window
	normalCursor xproto.Cursor
	moveCursor   xproto.Cursor
	resizeCursor xproto.Cursor
}

// NewConnection connects to display (or $DISPLAY when empty) and loads the
// keyboard mapping.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// keybind must know the mapping before any keysym lookup
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// BecomeWM selects substructure redirection on the root window, which only
// one client may hold at a time, then announces us through the EWMH
// supporting check window.
func (c *Connection) BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root, xproto.CwEventMask,
		[]uint32{rootEventMask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrAnotherWM
		}
		return fmt.Errorf("select root events: %w", err)
	}

	if err := c.loadCursors(); err != nil {
		return err
	}
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), c.Root, xproto.CwCursor, []uint32{uint32(c.normalCursor)})

	check, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return fmt.Errorf("generate check window: %w", err)
	}
	check.Create(c.Root, -1, -1, 1, 1, xproto.CwOverrideRedirect, 1)
	c.check = check

	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check.Id); err != nil {
		return fmt.Errorf("set supporting wm check: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check.Id, check.Id); err != nil {
		return fmt.Errorf("set supporting wm check: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, check.Id, WMName); err != nil {
		return fmt.Errorf("set wm name: %w", err)
	}
	return nil
}

func (c *Connection) loadCursors() error {
	var err error
	if c.normalCursor, err = xcursor.CreateCursor(c.XUtil, xcursor.LeftPtr); err != nil {
		return fmt.Errorf("create cursor: %w", err)
	}
	if c.moveCursor, err = xcursor.CreateCursor(c.XUtil, xcursor.Fleur); err != nil {
		return fmt.Errorf("create cursor: %w", err)
	}
	if c.resizeCursor, err = xcursor.CreateCursor(c.XUtil, xcursor.BottomRightCorner); err != nil {
		return fmt.Errorf("create cursor: %w", err)
	}
	return nil
}

// WaitForEvent blocks for the next event or error. Both are nil once the
// connection is closed.
func (c *Connection) WaitForEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// Sync flushes the request buffer and waits for the server to process it.
func (c *Connection) Sync() {
	c.XUtil.Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.check != nil {
		c.check.Destroy()
	}
	c.XUtil.Conn().Close()
}
