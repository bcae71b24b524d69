package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// IgnoreMods computes the lock combinations every grab is repeated for
// (CapsLock always, NumLock and ScrollLock wherever they are mapped) and
// installs them for keybind.
func (c *Connection) IgnoreMods() []uint16 {
	numLock := modMaskForKeysym(c.XUtil, "Num_Lock")
	scrollLock := modMaskForKeysym(c.XUtil, "Scroll_Lock")

	masks := ignoreMasks(numLock, scrollLock)
	xevent.IgnoreMods = masks
	return masks
}

func ignoreMasks(numLock, scrollLock uint16) []uint16 {
	caps := uint16(xproto.ModMaskLock)

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	masks := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		masks = append(masks, mask)
	}
	return masks
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

// GrabSequence resolves a key sequence such as "Mod4-Shift-h" against the
// current keyboard mapping and grabs every keycode that produces it, once per
// ignored lock combination.
func (c *Connection) GrabSequence(seq string) (uint16, []xproto.Keycode, error) {
	mods, keycodes, err := keybind.ParseString(c.XUtil, seq)
	if err != nil {
		return 0, nil, err
	}
	if len(keycodes) == 0 {
		return 0, nil, fmt.Errorf("no keycode for %q", seq)
	}
	for _, keycode := range keycodes {
		keybind.Grab(c.XUtil, c.Root, mods, keycode)
	}
	return mods, keycodes, nil
}

// UngrabKeys drops every key grab on the root window.
func (c *Connection) UngrabKeys() {
	xproto.UngrabKey(c.XUtil.Conn(), xproto.GrabAny, c.Root, xproto.ModMaskAny)
}

// GrabButton grabs button with mods on the root window for every ignored
// lock combination.
func (c *Connection) GrabButton(mods uint16, button byte) {
	for _, lock := range xevent.IgnoreMods {
		xproto.GrabButton(c.XUtil.Conn(), false, c.Root,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			0, 0, button, mods|lock)
	}
}

func (c *Connection) UngrabButtons() {
	xproto.UngrabButton(c.XUtil.Conn(), xproto.ButtonIndexAny, c.Root, xproto.ModMaskAny)
}

// RefreshKeyboard reloads the keyboard and modifier mappings after a
// MappingNotify.
func (c *Connection) RefreshKeyboard() {
	keyMap, modMap := keybind.MapsGet(c.XUtil)
	keybind.KeyMapSet(c.XUtil, keyMap)
	keybind.ModMapSet(c.XUtil, modMap)
}

// ForwardKey resends a grabbed key press to win.
func (c *Connection) ForwardKey(win xproto.Window, ev xproto.KeyPressEvent) {
	ev.Event = win
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskKeyPress, string(ev.Bytes()))
}
