package wm

import (
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// assign makes ws the only workspace holding c. noWorkspace detaches it
// without publishing a desktop number.
func (m *Manager) assign(c *Client, ws int) {
	for i := range m.workspaces {
		if i != ws {
			m.workspaces[i] = removeID(m.workspaces[i], c.ID)
		}
	}
	c.Workspace = ws
	if ws == noWorkspace {
		return
	}
	if indexOf(m.workspaces[ws], c.ID) < 0 {
		m.workspaces[ws] = append([]ClientID{c.ID}, m.workspaces[ws]...)
	}
	m.backend.SetWindowDesktop(c.Window, ws)
}

func (m *Manager) detach(c *Client) {
	m.assign(c, noWorkspace)
}

// onCurrent reports whether c is a member of the visible workspace.
func (m *Manager) onCurrent(c *Client) bool {
	return indexOf(m.workspaces[m.current], c.ID) >= 0
}

// switchWorkspace hides the current workspace completely before the index
// moves, and shows the target only after it has moved.
func (m *Manager) switchWorkspace(target int) {
	if target == m.current || target < 0 || target >= len(m.workspaces) {
		return
	}

	m.setFocus(noClient)

	old := append([]ClientID(nil), m.workspaces[m.current]...)
	for _, id := range old {
		m.hide(m.reg.clients[id])
	}

	m.current = target
	m.backend.SetCurrentDesktop(target)

	for _, id := range m.workspaces[target] {
		m.show(m.reg.clients[id])
	}
	for _, id := range old {
		m.backend.SetEventMask(m.reg.clients[id].Frame, platform.MaskFrame)
	}

	m.log.WithField("workspace", target).Debug("switched workspace")
	m.focusUnderPointer()
}

// hide unmaps c's frame with enter events disabled so no crossing events
// are generated for windows revealed underneath.
func (m *Manager) hide(c *Client) {
	m.backend.SetEventMask(c.Frame, platform.MaskFrameHidden)
	m.backend.Unmap(c.Frame)
	c.Hidden = true
	m.setWMState(c, platform.StateIconic)
}

func (m *Manager) show(c *Client) {
	m.backend.Map(c.Frame)
	c.Hidden = false
	m.setWMState(c, platform.StateNormal)
}

// sendToWorkspace moves c to ws, hiding it if ws is not visible.
func (m *Manager) sendToWorkspace(c *Client, ws int) {
	if ws < 0 || ws >= len(m.workspaces) || ws == c.Workspace {
		return
	}
	wasVisible := !c.Hidden && c.Workspace == m.current
	m.assign(c, ws)

	switch {
	case ws == m.current && !wasVisible:
		m.show(c)
	case ws != m.current && wasVisible:
		if m.focus == c.ID {
			m.setFocus(noClient)
		}
		m.hide(c)
		m.backend.SetEventMask(c.Frame, platform.MaskFrame)
	}
}

// focusUnderPointer focuses whatever managed window the pointer is over.
func (m *Manager) focusUnderPointer() {
	_, _, child, err := m.backend.QueryPointer()
	if err != nil || child == platform.None {
		return
	}
	if c := m.reg.byWin(child); c != nil {
		m.setFocus(c.ID)
	}
}
