package wm

import (
	"github.com/stapel/wmwm-sub000/internal/config"
	"github.com/stapel/wmwm-sub000/internal/hotkeys"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

func (m *Manager) handleButtonPress(ev platform.ButtonPress) {
	if m.mode != ModeIdle {
		return
	}

	if ev.Child == platform.None {
		if prog := m.cfg.ProgramForButton(ev.Button); prog != "" {
			m.launch(prog)
		}
		return
	}

	c := m.Focused()
	if c == nil || c.Fullscreen || c.Frame != ev.Child && c.Window != ev.Child {
		return
	}

	m.gesture.offsetX = ev.RootX - c.Geom.X
	m.gesture.offsetY = ev.RootY - c.Geom.Y
	m.raise(c)

	switch ev.Button {
	case config.MoveButton:
		if err := m.backend.GrabPointer(false, m.timestamp); err != nil {
			m.log.WithError(err).Warn("cannot grab pointer for move")
			return
		}
		m.mode = transition(m.mode, triggerMoveStart)
	case config.ResizeButton:
		m.backend.WarpPointer(c.Frame, c.Geom.Width, c.Geom.Height)
		if err := m.backend.GrabPointer(true, m.timestamp); err != nil {
			m.log.WithError(err).Warn("cannot grab pointer for resize")
			return
		}
		m.mode = transition(m.mode, triggerResizeStart)
	}
}

func (m *Manager) handleMotion(ev platform.Motion) {
	c := m.Focused()
	if c == nil {
		return
	}
	switch m.mode {
	case ModeMoving:
		r := c.Geom
		r.X = ev.RootX - m.gesture.offsetX
		r.Y = ev.RootY - m.gesture.offsetY
		m.applyGeometry(c, r)
	case ModeResizing:
		r := c.Geom
		r.Width = max(0, ev.RootX-c.Geom.X-c.Border)
		r.Height = max(0, ev.RootY-c.Geom.Y-c.Border)
		if m.applyGeometry(c, r) && c.VertMax {
			c.VertMax = false
			m.publishState(c)
		}
	}
}

// handleButtonRelease always ends in idle, whatever mode it interrupts.
func (m *Manager) handleButtonRelease(ev platform.ButtonRelease) {
	switch m.mode {
	case ModeMoving, ModeResizing:
		m.backend.UngrabPointer(m.timestamp)
		if m.Focused() == nil {
			m.log.WithField("mode", m.mode).Debug("gesture ended without a focused window")
		}
	case ModeCycling:
		m.finishCycling()
	}
	m.mode = transition(m.mode, triggerRelease)
	m.gesture.Reset()
}

func (m *Manager) handleKeyPress(ev platform.KeyPress) {
	if m.mode == ModeMoving || m.mode == ModeResizing {
		return
	}

	b, ok := m.keys.Lookup(ev.State, ev.Keycode)
	if m.mode == ModeCycling {
		if ok && b.Action == hotkeys.ActionCycle {
			m.focusNext()
			return
		}
		m.finishCycling()
	}

	if !ok {
		if m.keys.IsCycleModifier(ev.Keycode) {
			return
		}
		if c := m.Focused(); c != nil {
			m.backend.ForwardKey(c.Window, ev)
		}
		return
	}
	m.runBinding(b)
}

func (m *Manager) handleKeyRelease(ev platform.KeyRelease) {
	if m.mode == ModeCycling && m.keys.IsCycleModifier(ev.Keycode) {
		m.finishCycling()
	}
}

// handleEnter implements focus follows mouse outside of gestures.
func (m *Manager) handleEnter(ev platform.Enter) {
	if m.mode != ModeIdle {
		return
	}
	if ev.Mode != platform.CrossNormal && ev.Mode != platform.CrossUngrab {
		return
	}
	c := m.reg.byWin(ev.Window)
	if c == nil || !m.onCurrent(c) {
		return
	}
	m.setFocus(c.ID)
	ws := &m.workspaces[m.current]
	*ws = moveToHead(*ws, c.ID)
}
