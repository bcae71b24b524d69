package wm

import (
	"github.com/stapel/wmwm-sub000/internal/geometry"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// monitorBounds returns the bounds the client must fit in. Unassigned
// clients are constrained by the whole screen.
func (m *Manager) monitorBounds(c *Client) platform.Rect {
	if c.HasMonitor {
		if mon, ok := m.monitors.Get(c.Monitor); ok {
			return mon.Bounds
		}
	}
	return m.screen
}

// assignMonitorAt picks the monitor containing the placement point: the
// pointer, or the position the window asked for.
func (m *Manager) assignMonitorAt(c *Client, x, y int) {
	mon, ok := m.monitors.At(x, y)
	c.Monitor = mon.ID
	c.HasMonitor = ok
}

// applyGeometry runs the solver on proposed and sends only the requests
// needed to reach the result. It reports whether anything changed.
func (m *Manager) applyGeometry(c *Client, proposed platform.Rect) bool {
	r, border := geometry.Constrain(geometry.Input{
		Proposed:   proposed,
		Hints:      c.Hints,
		Monitor:    m.monitorBounds(c),
		Border:     m.cfg.BorderWidth,
		Fullscreen: c.Fullscreen,
	})

	borderChanged := border != c.Border
	sizeChanged := r.Width != c.Geom.Width || r.Height != c.Geom.Height
	posChanged := r.X != c.Geom.X || r.Y != c.Geom.Y
	if !borderChanged && !sizeChanged && !posChanged {
		return false
	}

	if borderChanged {
		c.Border = border
		m.backend.SetBorderWidth(c.Frame, border)
		m.backend.SetFrameExtents(c.Window, border)
	}

	switch {
	case sizeChanged && posChanged:
		m.backend.MoveResize(c.Frame, r)
		m.backend.Resize(c.Window, r.Width, r.Height)
	case sizeChanged:
		m.backend.Resize(c.Frame, r.Width, r.Height)
		m.backend.Resize(c.Window, r.Width, r.Height)
	case posChanged:
		m.backend.Move(c.Frame, r.X, r.Y)
	}
	c.Geom = r

	// A reparented client only learns its root position from us.
	if !sizeChanged {
		m.sendConfigureNotify(c)
	}
	return true
}

func (m *Manager) sendConfigureNotify(c *Client) {
	abs := platform.Rect{
		X:      c.Geom.X + c.Border,
		Y:      c.Geom.Y + c.Border,
		Width:  c.Geom.Width,
		Height: c.Geom.Height,
	}
	m.backend.SendConfigureNotify(c.Window, abs, 0)
}
