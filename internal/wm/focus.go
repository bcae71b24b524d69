package wm

import (
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// setFocus moves input focus to id, or back to the root for noClient.
// Clients outside the visible workspace are never focused.
func (m *Manager) setFocus(id ClientID) {
	if id == m.focus {
		return
	}

	if id == noClient {
		prev := m.reg.get(m.focus)
		m.focus = noClient
		m.backend.SetInputFocus(platform.None, m.timestamp)
		m.backend.SetActiveWindow(platform.None)
		if prev != nil {
			m.backend.SetBorderColor(prev.Frame, m.unfocusPixel)
			m.publishState(prev)
		}
		return
	}

	c := m.reg.get(id)
	if c == nil {
		return
	}
	if !m.onCurrent(c) {
		m.log.WithField("window", c.Window).Debug("not focusing window on hidden workspace")
		return
	}

	switch {
	case c.Protocols.AcceptsInput:
		m.backend.SetInputFocus(c.Window, m.timestamp)
	case c.Protocols.TakeFocus:
		m.backend.SendProtocolMessage(c.Window, "WM_TAKE_FOCUS", m.timestamp)
	}

	prev := m.reg.get(m.focus)
	m.focus = id
	if prev != nil {
		m.backend.SetBorderColor(prev.Frame, m.unfocusPixel)
		m.publishState(prev)
	}

	m.backend.SetBorderColor(c.Frame, m.focusPixel)
	if c.Colormap != 0 {
		m.backend.InstallColormap(c.Colormap)
	}
	m.backend.SetActiveWindow(c.Window)
	m.publishState(c)
}

func (m *Manager) raise(c *Client) {
	m.backend.Restack(c.Frame, platform.StackAbove)
}

// raiseOrLower flips the frame to the other end of the stacking order.
func (m *Manager) raiseOrLower(c *Client) {
	m.backend.Restack(c.Frame, platform.StackOpposite)
}

// focusNext opens or continues a cycling session over the visible
// workspace, in most-recently-used order.
func (m *Manager) focusNext() {
	ws := m.workspaces[m.current]
	if len(ws) == 0 {
		return
	}
	if m.mode != ModeCycling {
		m.lastFocus = m.focus
		m.mode = transition(m.mode, triggerCycleStart)
	}

	next := noClient
	idx := indexOf(ws, m.focus)
	switch {
	case m.focus == noClient || idx < 0:
		next = ws[0]
	case idx+1 < len(ws):
		next = ws[idx+1]
	case idx != 0:
		next = ws[0]
	}
	if next == noClient {
		return
	}

	c := m.reg.clients[next]
	m.raise(c)
	m.setFocus(next)
}

// finishCycling closes the session and commits the focus history.
func (m *Manager) finishCycling() {
	m.mode = transition(m.mode, triggerCycleEnd)

	last := m.lastFocus
	m.lastFocus = noClient
	if last == noClient || m.focus == noClient {
		return
	}
	ws := &m.workspaces[m.current]
	if indexOf(*ws, last) >= 0 {
		*ws = moveToHead(*ws, last)
	}
	if indexOf(*ws, m.focus) >= 0 {
		*ws = moveToHead(*ws, m.focus)
	}
}
