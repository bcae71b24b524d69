package x11

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// stickyDesktop is the _NET_WM_DESKTOP value for "all desktops".
const stickyDesktop = 0xFFFFFFFF

// NormalHints reads WM_NORMAL_HINTS.
func (c *Connection) NormalHints(win xproto.Window) (*icccm.NormalHints, error) {
	return icccm.WmNormalHintsGet(c.XUtil, win)
}

// Protocols reports the focus model and close support a client declares.
// A client without WM_HINTS input is assumed to accept focus.
func (c *Connection) Protocols(win xproto.Window) (acceptsInput, takeFocus, deleteWindow bool) {
	acceptsInput = true
	if hints, err := icccm.WmHintsGet(c.XUtil, win); err == nil && hints.Flags&icccm.HintInput != 0 {
		acceptsInput = hints.Input != 0
	}

	protocols, err := icccm.WmProtocolsGet(c.XUtil, win)
	if err != nil {
		return acceptsInput, false, false
	}
	for _, p := range protocols {
		switch p {
		case "WM_TAKE_FOCUS":
			takeFocus = true
		case "WM_DELETE_WINDOW":
			deleteWindow = true
		}
	}
	return acceptsInput, takeFocus, deleteWindow
}

// NetWMState returns the _NET_WM_STATE atom names set on win.
func (c *Connection) NetWMState(win xproto.Window) []string {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return nil
	}
	return states
}

// WindowDesktop returns the desktop win asked for. Sticky windows report
// no desktop.
func (c *Connection) WindowDesktop(win xproto.Window) (int, bool) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, win)
	if err != nil || desktop == stickyDesktop {
		return 0, false
	}
	return int(desktop), true
}

// AtomName resolves an atom, returning "" when the server does not know it.
func (c *Connection) AtomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}

// SetWMState writes the ICCCM WM_STATE property.
func (c *Connection) SetWMState(win xproto.Window, state uint) error {
	return icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: state})
}

func (c *Connection) SetSupported(atoms []string) error {
	return ewmh.SupportedSet(c.XUtil, atoms)
}

// SetNumberOfDesktops publishes the desktop count with names "1".."n".
func (c *Connection) SetNumberOfDesktops(n int) error {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(n)); err != nil {
		return fmt.Errorf("set number of desktops: %w", err)
	}
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i + 1)
	}
	return ewmh.DesktopNamesSet(c.XUtil, names)
}

func (c *Connection) SetCurrentDesktop(n int) error {
	return ewmh.CurrentDesktopSet(c.XUtil, uint(n))
}

func (c *Connection) SetActiveWindow(win xproto.Window) error {
	return ewmh.ActiveWindowSet(c.XUtil, win)
}

func (c *Connection) SetClientList(wins []xproto.Window) error {
	return ewmh.ClientListSet(c.XUtil, wins)
}

func (c *Connection) SetWindowDesktop(win xproto.Window, desktop int) error {
	return ewmh.WmDesktopSet(c.XUtil, win, uint(desktop))
}

func (c *Connection) SetNetWMState(win xproto.Window, states []string) error {
	return ewmh.WmStateSet(c.XUtil, win, states)
}

func (c *Connection) SetAllowedActions(win xproto.Window, actions []string) error {
	return ewmh.WmAllowedActionsSet(c.XUtil, win, actions)
}

// SetFrameExtents advertises an equal border on every side.
func (c *Connection) SetFrameExtents(win xproto.Window, border int) error {
	return ewmh.FrameExtentsSet(c.XUtil, win, &ewmh.FrameExtents{
		Left:   border,
		Right:  border,
		Top:    border,
		Bottom: border,
	})
}
