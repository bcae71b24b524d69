package wm

import (
	"github.com/stapel/wmwm-sub000/internal/config"
	"github.com/stapel/wmwm-sub000/internal/geometry"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// X stack modes carried in ConfigureRequest.
const (
	stackAbove    = 0
	stackBelow    = 1
	stackOpposite = 4
)

// dispatch routes one event. It is the only entry point into the core
// from the event loop.
func (m *Manager) dispatch(ev platform.Event) {
	switch e := ev.(type) {
	case platform.MapRequest:
		m.manage(e.Window)
	case platform.ButtonPress:
		m.stamp(e.Time)
		m.handleButtonPress(e)
	case platform.ButtonRelease:
		m.stamp(e.Time)
		m.handleButtonRelease(e)
	case platform.Motion:
		m.stamp(e.Time)
		m.handleMotion(e)
	case platform.KeyPress:
		m.stamp(e.Time)
		m.handleKeyPress(e)
	case platform.KeyRelease:
		m.stamp(e.Time)
		m.handleKeyRelease(e)
	case platform.Enter:
		m.stamp(e.Time)
		m.handleEnter(e)
	case platform.ConfigureNotify:
		m.handleConfigureNotify(e)
	case platform.ConfigureRequest:
		m.handleConfigureRequest(e)
	case platform.ClientMessage:
		m.handleClientMessage(e)
	case platform.CirculateRequest:
		m.handleCirculateRequest(e)
	case platform.MappingChanged:
		m.backend.RefreshKeyboard()
		m.grabInput()
	case platform.Unmap:
		m.handleUnmap(e)
	case platform.Destroy:
		if c := m.reg.byWindow[e.Window]; c != noClient {
			m.forget(m.reg.clients[c])
		}
	case platform.PropertyChange:
		m.stamp(e.Time)
		m.handlePropertyChange(e)
	case platform.ColormapChange:
		m.handleColormapChange(e)
	case platform.OutputsChanged:
		m.stamp(e.Time)
		m.refreshMonitors()
	case platform.ProtocolError:
		m.log.WithError(e.Err).Warn("protocol error")
	default:
		m.log.Debugf("ignoring event %T", ev)
	}
}

// handleUnmap forgets a client that withdrew itself. Unmaps we caused
// ourselves are swallowed by the per-client counter.
func (m *Manager) handleUnmap(ev platform.Unmap) {
	id, ok := m.reg.byWindow[ev.Window]
	if !ok {
		return
	}
	c := m.reg.clients[id]
	if c.IgnoreUnmap > 0 {
		c.IgnoreUnmap--
		return
	}
	m.forget(c)
}

func (m *Manager) handleConfigureNotify(ev platform.ConfigureNotify) {
	if ev.Window != m.backend.Root() {
		return
	}
	if ev.Bounds == m.screen {
		return
	}
	m.screen = ev.Bounds
	m.refreshMonitors()
}

// handleConfigureRequest passes requests from unmanaged windows through
// and runs managed ones through gravity and the solver.
func (m *Manager) handleConfigureRequest(ev platform.ConfigureRequest) {
	c := m.reg.byWin(ev.Window)
	if c == nil {
		m.backend.ConfigurePassThrough(ev)
		return
	}

	if ev.Mask&platform.ConfigStackMode != 0 {
		switch ev.StackMode {
		case stackAbove:
			m.backend.Restack(c.Frame, platform.StackAbove)
		case stackBelow:
			m.backend.Restack(c.Frame, platform.StackBelow)
		case stackOpposite:
			m.backend.Restack(c.Frame, platform.StackOpposite)
		}
	}

	if c.Fullscreen {
		m.sendConfigureNotify(c)
		return
	}

	r := c.Geom
	if ev.Mask&platform.ConfigX != 0 {
		r.X = ev.X
	}
	if ev.Mask&platform.ConfigY != 0 {
		r.Y = ev.Y
	}
	if ev.Mask&platform.ConfigWidth != 0 {
		r.Width = ev.Width
	}
	if ev.Mask&platform.ConfigHeight != 0 {
		r.Height = ev.Height
	}
	if ev.Mask&(platform.ConfigX|platform.ConfigY) != 0 && c.Hints.HasGravity {
		r = geometry.ApplyGravity(r, c.Hints.Gravity, c.Border)
	}
	if !m.applyGeometry(c, r) {
		m.sendConfigureNotify(c)
	}
}

func (m *Manager) handleCirculateRequest(ev platform.CirculateRequest) {
	if c := m.reg.byWin(ev.Window); c != nil {
		m.backend.Circulate(c.Frame, ev.Place)
		return
	}
	m.backend.Circulate(ev.Window, ev.Place)
}

func (m *Manager) handlePropertyChange(ev platform.PropertyChange) {
	c := m.reg.byWin(ev.Window)
	if c == nil || c.Window != ev.Window {
		return
	}
	switch ev.Atom {
	case "WM_NORMAL_HINTS":
		c.Hints = m.backend.SizeHints(c.Window)
	case "WM_HINTS", "WM_PROTOCOLS":
		c.Protocols = m.backend.Protocols(c.Window)
	}
}

func (m *Manager) handleColormapChange(ev platform.ColormapChange) {
	c := m.reg.byWin(ev.Window)
	if c == nil || !ev.New {
		return
	}
	c.Colormap = ev.Colormap
	if m.focus == c.ID && c.Colormap != 0 {
		m.backend.InstallColormap(c.Colormap)
	}
}

func (m *Manager) handleClientMessage(ev platform.ClientMessage) {
	if ev.Type == "_NET_REQUEST_FRAME_EXTENTS" {
		m.backend.SetFrameExtents(ev.Window, m.frameExtents(ev.Window))
		return
	}
	if ev.Type == "_NET_CURRENT_DESKTOP" {
		m.switchWorkspace(int(ev.Data[0]))
		return
	}

	c := m.reg.byWin(ev.Window)
	if c == nil {
		m.log.WithField("type", ev.Type).WithField("window", ev.Window).Debug("client message for unmanaged window")
		return
	}

	switch ev.Type {
	case "_NET_MOVERESIZE_WINDOW":
		m.moveResizeMessage(c, ev.Data)
	case "_NET_CLOSE_WINDOW":
		m.closeClient(c)
	case "_NET_ACTIVE_WINDOW":
		m.activate(c)
	case "_NET_WM_STATE":
		m.wmStateMessage(c, ev.Data)
	case "WM_CHANGE_STATE":
		if ev.Data[0] == uint32(platform.StateIconic) && m.cfg.AllowIconify {
			m.iconify(c)
		}
	case "_NET_WM_DESKTOP":
		if ws := int(ev.Data[0]); ws < config.Workspaces {
			m.sendToWorkspace(c, ws)
		}
	}
}

// moveResizeMessage handles _NET_MOVERESIZE_WINDOW. The low byte of the
// first word is the gravity, bits 8-11 flag which of x, y, width, height
// are present.
func (m *Manager) moveResizeMessage(c *Client, data [5]uint32) {
	if c.Fullscreen {
		return
	}
	r := c.Geom
	flags := data[0] >> 8
	if flags&1 != 0 {
		r.X = int(int32(data[1]))
	}
	if flags&2 != 0 {
		r.Y = int(int32(data[2]))
	}
	if flags&4 != 0 {
		r.Width = int(data[3])
	}
	if flags&8 != 0 {
		r.Height = int(data[4])
	}

	// Gravity places a requested reference point; a size-only request
	// keeps the frame where it is.
	if flags&3 != 0 {
		gravity := platform.Gravity(data[0] & 0xff)
		if gravity == platform.GravityForget && c.Hints.HasGravity {
			gravity = c.Hints.Gravity
		}
		r = geometry.ApplyGravity(r, gravity, c.Border)
	}
	m.applyGeometry(c, r)
}

// activate brings c forward, switching workspace if it lives elsewhere.
func (m *Manager) activate(c *Client) {
	if c.Workspace == noWorkspace {
		return
	}
	if c.Workspace != m.current {
		m.switchWorkspace(c.Workspace)
	}
	m.raise(c)
	m.setFocus(c.ID)
	ws := &m.workspaces[m.current]
	*ws = moveToHead(*ws, c.ID)
}

// wmStateMessage applies a _NET_WM_STATE request. When both fullscreen
// and vertical maximize are named, only fullscreen is acted on.
func (m *Manager) wmStateMessage(c *Client, data [5]uint32) {
	first := m.backend.AtomName(data[1])
	second := ""
	if data[2] != 0 {
		second = m.backend.AtomName(data[2])
	}

	names := func(atom string) bool { return first == atom || second == atom }
	apply := func(current bool) bool {
		switch data[0] {
		case netStateRemove:
			return false
		case netStateAdd:
			return true
		case netStateToggle:
			return !current
		}
		return current
	}

	switch {
	case names(netStateFullscreen):
		m.setFullscreen(c, apply(c.Fullscreen))
	case names(netStateMaxVert):
		m.setVertMax(c, apply(c.VertMax))
	}
}
