package wm

import (
	"errors"
	"fmt"

	"github.com/stapel/wmwm-sub000/internal/geometry"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

var allowedActions = []string{
	"_NET_WM_ACTION_MAXIMIZE_VERT",
	"_NET_WM_ACTION_FULLSCREEN",
}

// admit reparents win into a new frame and registers it. It returns nil
// without error when win is already managed.
func (m *Manager) admit(win platform.WindowID) (*Client, error) {
	if m.reg.byWin(win) != nil {
		return nil, nil
	}

	geom, err := m.backend.Geometry(win)
	if err != nil {
		return nil, fmt.Errorf("geometry of %#x: %w", win, err)
	}

	border := m.cfg.BorderWidth
	frame, err := m.backend.CreateFrame(geom, border, m.unfocusPixel)
	if err != nil {
		return nil, fmt.Errorf("frame for %#x: %w", win, err)
	}

	m.backend.SetEventMask(win, platform.MaskClient)
	if err := m.backend.Reparent(win, frame, 0, 0); err != nil {
		m.backend.DestroyWindow(frame)
		return nil, fmt.Errorf("reparent %#x: %w", win, err)
	}
	m.backend.ChangeSaveSet(win, true)
	m.backend.SetBorderWidth(win, 0)

	c := m.reg.add(win, frame)
	c.Geom = geom
	c.Saved = geom
	c.Border = border
	c.Hints = m.backend.SizeHints(win)
	c.Protocols = m.backend.Protocols(win)
	if attrs, err := m.backend.Attributes(win); err == nil {
		c.Colormap = attrs.Colormap
	}
	for _, state := range m.backend.NetWMState(win) {
		if state == netStateFullscreen {
			c.Fullscreen = true
		}
	}

	m.backend.SetAllowedActions(win, allowedActions)
	m.backend.SetFrameExtents(win, c.Border)

	m.log.WithField("window", win).WithField("frame", frame).Debug("admitted window")
	return c, nil
}

// place positions a freshly admitted client and shows it on workspace ws.
// keepPosition treats the current geometry as user-specified.
func (m *Manager) place(c *Client, ws int, keepPosition bool) {
	r := c.Geom
	px, py := r.X, r.Y
	if !keepPosition && !c.Hints.UserPosition {
		x, y, _, err := m.backend.QueryPointer()
		if err != nil {
			r.X, r.Y = 0, 0
			px, py = 0, 0
		} else {
			r.X = x - r.Width/2
			r.Y = y - r.Height/2
			px, py = x, y
		}
	}
	if c.Hints.HasGravity && !keepPosition {
		r = geometry.ApplyGravity(r, c.Hints.Gravity, c.Border)
	}

	m.assignMonitorAt(c, px, py)
	m.applyGeometry(c, r)

	m.assign(c, ws)
	if ws == m.current {
		m.backend.Map(c.Window)
		m.backend.Map(c.Frame)
		m.setWMState(c, platform.StateNormal)
	} else {
		m.backend.Map(c.Window)
		c.Hidden = true
		m.setWMState(c, platform.StateIconic)
	}
	m.publishClientList()

	if ws != m.current {
		return
	}
	if _, _, child, err := m.backend.QueryPointer(); err == nil && child != c.Frame {
		m.backend.WarpPointer(c.Frame, c.Geom.Width/2, c.Geom.Height/2)
	}
}

// forget undoes admit. The client may already be gone on the server.
func (m *Manager) forget(c *Client) {
	m.detach(c)
	if m.focus == c.ID {
		m.focus = noClient
		m.backend.SetActiveWindow(platform.None)
	}
	if m.lastFocus == c.ID {
		m.lastFocus = noClient
	}

	err := m.backend.Reparent(c.Window, m.backend.Root(), 0, 0)
	m.backend.DestroyWindow(c.Frame)
	if !errors.Is(err, platform.ErrNoSuchWindow) {
		m.backend.ChangeSaveSet(c.Window, false)
		if !c.Iconic {
			m.backend.SetWMState(c.Window, platform.StateWithdrawn)
		}
	}

	m.reg.remove(c)
	m.publishClientList()
	m.log.WithField("window", c.Window).Debug("forgot window")
}

// manage admits and places a window that asked to be mapped.
func (m *Manager) manage(win platform.WindowID) {
	attrs, err := m.backend.Attributes(win)
	if err != nil {
		m.log.WithError(err).WithField("window", win).Debug("map request for vanished window")
		return
	}
	if attrs.OverrideRedirect {
		m.backend.Map(win)
		return
	}

	c, err := m.admit(win)
	if err != nil {
		m.log.WithError(err).WithField("window", win).Warn("not managing window")
		m.backend.Map(win)
		return
	}
	if c == nil {
		return
	}
	m.place(c, m.current, false)
	m.log.WithField("window", win).Info("managing window")
}

// adoptExisting manages windows that were already mapped at startup.
// Reparenting a mapped window unmaps it once, which must not be mistaken
// for the client withdrawing.
func (m *Manager) adoptExisting() {
	wins, err := m.backend.TopLevelWindows()
	if err != nil {
		m.log.WithError(err).Warn("cannot list existing windows")
		return
	}
	for _, win := range wins {
		attrs, err := m.backend.Attributes(win)
		if err != nil || attrs.OverrideRedirect || !attrs.Viewable {
			continue
		}
		c, err := m.admit(win)
		if err != nil {
			m.log.WithError(err).WithField("window", win).Warn("not adopting window")
			continue
		}
		if c == nil {
			continue
		}
		c.IgnoreUnmap++

		ws := m.current
		if d, ok := m.backend.WindowDesktop(win); ok && d >= 0 && d < len(m.workspaces) {
			ws = d
		}
		m.place(c, ws, true)
		m.log.WithField("window", win).WithField("workspace", ws).Debug("adopted window")
	}
}
