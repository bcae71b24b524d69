// Package hotkeys holds the compiled-in keyboard bindings and the logic for
// matching key events against them regardless of lock modifiers.
package hotkeys

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/stapel/wmwm-sub000/internal/platform"
)

// Action is what a binding does.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionResize
	ActionRaiseLower
	ActionFullscreen
	ActionVertMax
	ActionSwitchWorkspace
	ActionSendToWorkspace
	ActionCorner
	ActionClose
	ActionPrevMonitor
	ActionNextMonitor
	ActionIconify
	ActionCycle
	ActionTerminal
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionResize:
		return "resize"
	case ActionRaiseLower:
		return "raise-lower"
	case ActionFullscreen:
		return "fullscreen"
	case ActionVertMax:
		return "vertical-maximize"
	case ActionSwitchWorkspace:
		return "switch-workspace"
	case ActionSendToWorkspace:
		return "send-to-workspace"
	case ActionCorner:
		return "corner"
	case ActionClose:
		return "close"
	case ActionPrevMonitor:
		return "prev-monitor"
	case ActionNextMonitor:
		return "next-monitor"
	case ActionIconify:
		return "iconify"
	case ActionCycle:
		return "cycle"
	case ActionTerminal:
		return "terminal"
	default:
		return "none"
	}
}

// Direction is the argument of move and resize bindings.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

// Corner is the argument of corner bindings.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Binding maps a key sequence in keybind notation, such as "Mod4-Shift-h",
// to an action. Arg carries the direction, corner or workspace index.
type Binding struct {
	Keys   string
	Action Action
	Arg    int
}

func (b Binding) String() string {
	return fmt.Sprintf("%s(%d) %s", b.Action, b.Arg, b.Keys)
}

// CycleModifiers are grabbed bare so that releasing them is reported while
// a focus-cycling session is open.
var CycleModifiers = []string{"Super_L", "Super_R"}

// keyMods covers every modifier bit; pointer button bits are above it.
const keyMods = xproto.ModMaskShift | xproto.ModMaskLock | xproto.ModMaskControl |
	xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 | xproto.ModMask4 | xproto.ModMask5

type boundKey struct {
	mods    uint16
	keycode uint8
}

// Table is a set of bindings. Sequences are resolved to keycodes by the
// backend at grab time; lookups match keycodes with lock modifiers masked
// out.
type Table struct {
	bindings []Binding
	bound    map[boundKey]Binding
	cycle    map[uint8]bool
	ignore   uint16
}

// Default builds the built-in binding table. mod prefixes every binding and
// extra turns moves into resizes and workspace switches into sends.
func Default(mod, extra string) *Table {
	t := &Table{}
	add := func(keys string, action Action, arg int) {
		t.bindings = append(t.bindings, Binding{Keys: keys, Action: action, Arg: arg})
	}
	plain := func(key string) string { return mod + "-" + key }
	shifted := func(key string) string { return mod + "-" + extra + "-" + key }

	for _, k := range []struct {
		key string
		dir Direction
	}{{"h", Left}, {"j", Down}, {"k", Up}, {"l", Right}} {
		add(plain(k.key), ActionMove, int(k.dir))
		add(shifted(k.key), ActionResize, int(k.dir))
	}
	add(plain("r"), ActionRaiseLower, 0)
	add(plain("x"), ActionFullscreen, 0)
	add(plain("m"), ActionVertMax, 0)
	add(plain("y"), ActionCorner, int(TopLeft))
	add(plain("u"), ActionCorner, int(TopRight))
	add(plain("b"), ActionCorner, int(BottomLeft))
	add(plain("n"), ActionCorner, int(BottomRight))
	add(plain("End"), ActionClose, 0)
	add(plain("comma"), ActionPrevMonitor, 0)
	add(plain("period"), ActionNextMonitor, 0)
	add(plain("i"), ActionIconify, 0)
	add(plain("Tab"), ActionCycle, 0)
	add(plain("Return"), ActionTerminal, 0)

	// 1 is the first workspace, 0 the tenth.
	for i, digit := range "1234567890" {
		add(plain(string(digit)), ActionSwitchWorkspace, i)
		add(shifted(string(digit)), ActionSendToWorkspace, i)
	}
	return t
}

// Bindings returns the table in definition order.
func (t *Table) Bindings() []Binding {
	return t.bindings
}

// Sequences lists everything that must be grabbed on the root window.
func (t *Table) Sequences() []string {
	seqs := make([]string, 0, len(t.bindings)+len(CycleModifiers))
	for _, b := range t.bindings {
		seqs = append(seqs, b.Keys)
	}
	return append(seqs, CycleModifiers...)
}

// Bind replaces the keycode lookup with the grabs as resolved against the
// current keyboard mapping.
func (t *Table) Bind(grabs []platform.KeyGrab) {
	byKeys := make(map[string]Binding, len(t.bindings))
	for _, b := range t.bindings {
		byKeys[b.Keys] = b
	}
	cycle := make(map[string]bool, len(CycleModifiers))
	for _, name := range CycleModifiers {
		cycle[name] = true
	}

	t.bound = make(map[boundKey]Binding)
	t.cycle = make(map[uint8]bool)
	for _, g := range grabs {
		if cycle[g.Sequence] {
			for _, kc := range g.Keycodes {
				t.cycle[kc] = true
			}
			continue
		}
		b, ok := byKeys[g.Sequence]
		if !ok {
			continue
		}
		for _, kc := range g.Keycodes {
			t.bound[boundKey{mods: g.Mods, keycode: kc}] = b
		}
	}
}

// SetIgnoreMods records the lock modifiers that must not affect matching.
func (t *Table) SetIgnoreMods(masks []uint16) {
	t.ignore = 0
	for _, m := range masks {
		t.ignore |= m
	}
}

// Lookup returns the binding for a key event.
func (t *Table) Lookup(state uint16, keycode uint8) (Binding, bool) {
	clean := state & keyMods &^ t.ignore
	b, ok := t.bound[boundKey{mods: clean, keycode: keycode}]
	return b, ok
}

// IsCycleModifier reports whether keycode is a key whose release ends a
// focus-cycling session.
func (t *Table) IsCycleModifier(keycode uint8) bool {
	return t.cycle[keycode]
}
