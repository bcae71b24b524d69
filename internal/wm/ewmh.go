package wm

import (
	"github.com/stapel/wmwm-sub000/internal/config"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

const (
	netStateFullscreen = "_NET_WM_STATE_FULLSCREEN"
	netStateMaxVert    = "_NET_WM_STATE_MAXIMIZED_VERT"
	netStateHidden     = "_NET_WM_STATE_HIDDEN"
	netStateFocused    = "_NET_WM_STATE_FOCUSED"
)

// _NET_WM_STATE actions.
const (
	netStateRemove = 0
	netStateAdd    = 1
	netStateToggle = 2
)

var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLOSE_WINDOW",
	"_NET_MOVERESIZE_WINDOW",
	"_NET_REQUEST_FRAME_EXTENTS",
	"_NET_FRAME_EXTENTS",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	netStateFullscreen,
	netStateMaxVert,
	netStateHidden,
	netStateFocused,
	"_NET_WM_ALLOWED_ACTIONS",
	"_NET_WM_ACTION_MAXIMIZE_VERT",
	"_NET_WM_ACTION_FULLSCREEN",
}

func (m *Manager) publishRoot() {
	m.backend.SetSupported(supportedAtoms)
	m.backend.SetNumberOfDesktops(config.Workspaces)
	m.backend.SetCurrentDesktop(m.current)
	m.backend.SetActiveWindow(platform.None)
	m.backend.SetClientList(nil)
}

func (m *Manager) publishClientList() {
	m.backend.SetClientList(m.reg.windows())
}

// netState computes the _NET_WM_STATE atoms for c.
func (m *Manager) netState(c *Client) []string {
	var states []string
	if c.Fullscreen {
		states = append(states, netStateFullscreen)
	}
	if c.VertMax {
		states = append(states, netStateMaxVert)
	}
	if c.Iconic || c.Hidden {
		states = append(states, netStateHidden)
	}
	if m.focus == c.ID {
		states = append(states, netStateFocused)
	}
	return states
}

func (m *Manager) publishState(c *Client) {
	m.backend.SetNetWMState(c.Window, m.netState(c))
}

// setWMState mirrors the ICCCM state and refreshes the EWMH flags.
func (m *Manager) setWMState(c *Client, state platform.WMState) {
	m.backend.SetWMState(c.Window, state)
	m.publishState(c)
}

// frameExtents is the border advertised for win, managed or not.
func (m *Manager) frameExtents(win platform.WindowID) int {
	if c := m.reg.byWin(win); c != nil {
		if c.Fullscreen {
			return 0
		}
		return c.Border
	}
	return m.cfg.BorderWidth
}
