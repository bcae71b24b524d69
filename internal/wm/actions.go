package wm

import (
	"github.com/stapel/wmwm-sub000/internal/config"
	"github.com/stapel/wmwm-sub000/internal/hotkeys"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// runBinding performs one discrete shortcut. None of them change the mode,
// except cycling.
func (m *Manager) runBinding(b hotkeys.Binding) {
	switch b.Action {
	case hotkeys.ActionSwitchWorkspace:
		m.switchWorkspace(b.Arg)
		return
	case hotkeys.ActionCycle:
		m.focusNext()
		return
	case hotkeys.ActionTerminal:
		m.launch(m.cfg.Terminal)
		return
	}

	c := m.Focused()
	if c == nil {
		return
	}
	switch b.Action {
	case hotkeys.ActionMove:
		m.stepMove(c, hotkeys.Direction(b.Arg))
	case hotkeys.ActionResize:
		m.stepResize(c, hotkeys.Direction(b.Arg))
	case hotkeys.ActionRaiseLower:
		m.raiseOrLower(c)
	case hotkeys.ActionFullscreen:
		m.setFullscreen(c, !c.Fullscreen)
	case hotkeys.ActionVertMax:
		m.setVertMax(c, !c.VertMax)
	case hotkeys.ActionSendToWorkspace:
		m.sendToWorkspace(c, b.Arg)
	case hotkeys.ActionCorner:
		m.moveToCorner(c, hotkeys.Corner(b.Arg))
	case hotkeys.ActionClose:
		m.closeClient(c)
	case hotkeys.ActionPrevMonitor:
		m.moveToMonitor(c, -1)
	case hotkeys.ActionNextMonitor:
		m.moveToMonitor(c, 1)
	case hotkeys.ActionIconify:
		if m.cfg.AllowIconify {
			m.iconify(c)
		}
	}
}

func (m *Manager) stepMove(c *Client, dir hotkeys.Direction) {
	if c.Fullscreen {
		return
	}
	r := c.Geom
	switch dir {
	case hotkeys.Left:
		r.X -= config.MoveStep
	case hotkeys.Right:
		r.X += config.MoveStep
	case hotkeys.Up:
		r.Y -= config.MoveStep
	case hotkeys.Down:
		r.Y += config.MoveStep
	}
	m.applyGeometry(c, r)
}

// stepResize grows or shrinks by one size increment, or by the fixed step
// when the client declares none.
func (m *Manager) stepResize(c *Client, dir hotkeys.Direction) {
	if c.Fullscreen {
		return
	}
	stepW, stepH := config.MoveStep, config.MoveStep
	if c.Hints.HasInc {
		if c.Hints.WidthInc > 1 {
			stepW = c.Hints.WidthInc
		}
		if c.Hints.HeightInc > 1 {
			stepH = c.Hints.HeightInc
		}
	}

	r := c.Geom
	switch dir {
	case hotkeys.Left:
		r.Width -= stepW
	case hotkeys.Right:
		r.Width += stepW
	case hotkeys.Up:
		r.Height -= stepH
	case hotkeys.Down:
		r.Height += stepH
	}
	if r.Width < 1 || r.Height < 1 {
		return
	}
	if m.applyGeometry(c, r) && c.VertMax {
		c.VertMax = false
		m.publishState(c)
	}
}

func (m *Manager) setFullscreen(c *Client, on bool) {
	if on == c.Fullscreen {
		return
	}
	if on {
		if !c.VertMax {
			c.Saved = c.Geom
		}
		c.Fullscreen = true
		m.applyGeometry(c, c.Geom)
		m.raise(c)
	} else {
		c.Fullscreen = false
		target := c.Saved
		if c.VertMax {
			mon := m.monitorBounds(c)
			target.Y = mon.Y
			target.Height = mon.Height - 2*m.cfg.BorderWidth
		}
		m.applyGeometry(c, target)
	}
	m.publishState(c)
}

func (m *Manager) setVertMax(c *Client, on bool) {
	if on == c.VertMax || c.Fullscreen {
		return
	}
	if on {
		c.Saved = c.Geom
		mon := m.monitorBounds(c)
		r := c.Geom
		r.Y = mon.Y
		r.Height = mon.Height - 2*c.Border
		c.VertMax = true
		m.applyGeometry(c, r)
		m.raise(c)
	} else {
		c.VertMax = false
		m.applyGeometry(c, c.Saved)
	}
	m.publishState(c)
}

func (m *Manager) moveToCorner(c *Client, corner hotkeys.Corner) {
	if c.Fullscreen {
		return
	}
	mon := m.monitorBounds(c)
	w := c.Geom.Width + 2*c.Border
	h := c.Geom.Height + 2*c.Border

	r := c.Geom
	switch corner {
	case hotkeys.TopLeft:
		r.X, r.Y = mon.X, mon.Y
	case hotkeys.TopRight:
		r.X, r.Y = mon.X+mon.Width-w, mon.Y
	case hotkeys.BottomLeft:
		r.X, r.Y = mon.X, mon.Y+mon.Height-h
	case hotkeys.BottomRight:
		r.X, r.Y = mon.X+mon.Width-w, mon.Y+mon.Height-h
	}
	m.applyGeometry(c, r)
	m.raise(c)
	m.backend.WarpPointer(c.Frame, c.Geom.Width/2, c.Geom.Height/2)
}

// closeClient asks politely up to MaxCloseAttempts times, then kills the
// client's connection. Clients without WM_DELETE_WINDOW are killed at once.
func (m *Manager) closeClient(c *Client) {
	if !c.Protocols.DeleteWindow || c.CloseAttempts >= config.MaxCloseAttempts {
		m.log.WithField("window", c.Window).Info("killing client")
		m.backend.KillClient(c.Window)
		return
	}
	c.CloseAttempts++
	m.backend.SendProtocolMessage(c.Window, "WM_DELETE_WINDOW", m.timestamp)
}

// iconify hides c on every workspace. The unmap it causes is not
// suppressed, so the client is forgotten and re-admitted on its next map.
func (m *Manager) iconify(c *Client) {
	if m.focus == c.ID {
		m.setFocus(noClient)
	}
	m.detach(c)
	c.Iconic = true
	m.backend.Unmap(c.Window)
	m.backend.Unmap(c.Frame)
	m.setWMState(c, platform.StateIconic)
}
