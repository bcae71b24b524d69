package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ErrBadWindow wraps server errors that name a window which no longer exists.
var ErrBadWindow = errors.New("bad window")

const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskButtonPress

// Event selections the manager switches between.
const (
	ClientEventMask      = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify | xproto.EventMaskColorMapChange
	FrameEventMask       = xproto.EventMaskSubstructureRedirect | xproto.EventMaskEnterWindow
	HiddenFrameEventMask = xproto.EventMaskSubstructureRedirect
)

// checkWindow folds BadWindow and BadDrawable into ErrBadWindow.
func checkWindow(err error) error {
	switch err.(type) {
	case nil:
		return nil
	case xproto.WindowError, xproto.DrawableError:
		return fmt.Errorf("%w: %v", ErrBadWindow, err)
	}
	return err
}

// Geometry returns the position relative to the parent and the inner size.
func (c *Connection) Geometry(win xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, 0, 0, checkWindow(err)
	}
	return int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height), nil
}

// Attributes reports override-redirect, viewability and the colormap.
func (c *Connection) Attributes(win xproto.Window) (overrideRedirect, viewable bool, cmap xproto.Colormap, err error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return false, false, 0, checkWindow(err)
	}
	return attrs.OverrideRedirect, attrs.MapState == xproto.MapStateViewable, attrs.Colormap, nil
}

// TopLevelWindows lists the children of the root window, bottom first.
func (c *Connection) TopLevelWindows() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	return tree.Children, nil
}

// CreateFrame creates an override-redirect parent window with a colored
// border.
func (c *Connection) CreateFrame(x, y, width, height, border int, pixel uint32) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(c.XUtil.Conn())
	if err != nil {
		return 0, fmt.Errorf("allocate frame id: %w", err)
	}
	screen := c.XUtil.Screen()
	err = xproto.CreateWindowChecked(c.XUtil.Conn(), screen.RootDepth, wid, c.Root,
		int16(x), int16(y), uint16(max(width, 1)), uint16(max(height, 1)), uint16(border),
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBorderPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{pixel, 1, FrameEventMask}).Check()
	if err != nil {
		return 0, fmt.Errorf("create frame: %w", err)
	}
	return wid, nil
}

// Reparent moves win under parent at x, y.
func (c *Connection) Reparent(win, parent xproto.Window, x, y int) error {
	err := xproto.ReparentWindowChecked(c.XUtil.Conn(), win, parent, int16(x), int16(y)).Check()
	return checkWindow(err)
}

func (c *Connection) DestroyWindow(win xproto.Window) {
	xwindow.New(c.XUtil, win).Destroy()
}

func (c *Connection) ChangeSaveSet(win xproto.Window, insert bool) {
	mode := byte(xproto.SetModeDelete)
	if insert {
		mode = xproto.SetModeInsert
	}
	xproto.ChangeSaveSet(c.XUtil.Conn(), mode, win)
}

func (c *Connection) MoveResize(win xproto.Window, x, y, width, height int) {
	xwindow.New(c.XUtil, win).MoveResize(x, y, width, height)
}

func (c *Connection) Move(win xproto.Window, x, y int) {
	xwindow.New(c.XUtil, win).Move(x, y)
}

func (c *Connection) Resize(win xproto.Window, width, height int) {
	xwindow.New(c.XUtil, win).Resize(width, height)
}

func (c *Connection) SetBorderWidth(win xproto.Window, width int) {
	xproto.ConfigureWindow(c.XUtil.Conn(), win, xproto.ConfigWindowBorderWidth, []uint32{uint32(width)})
}

func (c *Connection) SetBorderColor(win xproto.Window, pixel uint32) {
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), win, xproto.CwBorderPixel, []uint32{pixel})
}

// Restack applies one of xproto.StackModeAbove, Below or Opposite.
func (c *Connection) Restack(win xproto.Window, mode byte) {
	xwindow.New(c.XUtil, win).Stack(mode)
}

func (c *Connection) Circulate(win xproto.Window, place byte) {
	direction := byte(xproto.CirculateRaiseLowest)
	if place == xproto.PlaceOnBottom {
		direction = xproto.CirculateLowerHighest
	}
	xproto.CirculateWindow(c.XUtil.Conn(), direction, win)
}

// Configure forwards a raw ConfigureWindow request. values must follow the
// bit order of mask.
func (c *Connection) Configure(win xproto.Window, mask uint16, values []uint32) {
	xproto.ConfigureWindow(c.XUtil.Conn(), win, mask, values)
}

// SendConfigureNotify tells win where it sits in root coordinates. A
// reparented client gets no real ConfigureNotify for moves of its frame.
func (c *Connection) SendConfigureNotify(win xproto.Window, x, y, width, height, border int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     0,
		X:                int16(x),
		Y:                int16(y),
		Width:            uint16(width),
		Height:           uint16(height),
		BorderWidth:      uint16(border),
		OverrideRedirect: false,
	}
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (c *Connection) Map(win xproto.Window) {
	xwindow.New(c.XUtil, win).Map()
}

func (c *Connection) Unmap(win xproto.Window) {
	xwindow.New(c.XUtil, win).Unmap()
}

func (c *Connection) SetEventMask(win xproto.Window, mask uint32) {
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), win, xproto.CwEventMask, []uint32{mask})
}

// SetInputFocus focuses win, or reverts to the pointer root when win is 0.
func (c *Connection) SetInputFocus(win xproto.Window, time uint32) {
	if win == 0 {
		xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot,
			xproto.InputFocusPointerRoot, xproto.Timestamp(time))
		return
	}
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, win, xproto.Timestamp(time))
}

// SendProtocolMessage delivers a WM_PROTOCOLS client message such as
// WM_DELETE_WINDOW or WM_TAKE_FOCUS.
func (c *Connection) SendProtocolMessage(win xproto.Window, protocol string, time uint32) error {
	protocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return err
	}
	atom, err := xprop.Atm(c.XUtil, protocol)
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(atom), time, 0, 0, 0}),
	}
	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

func (c *Connection) InstallColormap(cmap xproto.Colormap) {
	xproto.InstallColormap(c.XUtil.Conn(), cmap)
}

func (c *Connection) KillClient(win xproto.Window) {
	xwindow.New(c.XUtil, win).Kill()
}

// QueryPointer returns the pointer position on the root window and the
// top-level child it is over.
func (c *Connection) QueryPointer() (x, y int, child xproto.Window, err error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), reply.Child, nil
}

// GrabPointer takes the pointer for a drag, with a cursor matching the
// gesture.
func (c *Connection) GrabPointer(resize bool, time uint32) error {
	cursor := c.moveCursor
	if resize {
		cursor = c.resizeCursor
	}
	reply, err := xproto.GrabPointer(c.XUtil.Conn(), false, c.Root,
		xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		c.Root, cursor, xproto.Timestamp(time)).Reply()
	if err != nil {
		return fmt.Errorf("grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("grab pointer: status %d", reply.Status)
	}
	return nil
}

func (c *Connection) UngrabPointer(time uint32) {
	xproto.UngrabPointer(c.XUtil.Conn(), xproto.Timestamp(time))
}

// WarpPointer moves the pointer to x, y relative to win.
func (c *Connection) WarpPointer(win xproto.Window, x, y int) {
	xproto.WarpPointer(c.XUtil.Conn(), 0, win, 0, 0, 0, 0, int16(x), int16(y))
}
