package wm

import (
	"github.com/stapel/wmwm-sub000/internal/monitor"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// refreshMonitors re-reads the outputs and moves clients off monitors that
// disappeared. No client is dropped: it goes to the successor monitor or
// becomes unassigned.
func (m *Manager) refreshMonitors() {
	outputs, err := m.backend.Outputs()
	if err != nil {
		m.log.WithError(err).Warn("cannot read outputs")
		return
	}
	if len(outputs) == 0 {
		outputs = []platform.Output{{Name: "screen", Bounds: m.screen, Active: true}}
	}
	m.applyOutputs(outputs)
}

func (m *Manager) applyOutputs(outputs []platform.Output) {
	for _, ch := range m.monitors.Apply(outputs) {
		log := m.log.WithField("monitor", ch.Monitor.Name).WithField("bounds", ch.Monitor.Bounds)
		switch ch.Kind {
		case monitor.Added:
			log.Info("monitor added")
		case monitor.Resized:
			log.Info("monitor resized")
			for _, c := range m.clientsOn(ch.Monitor.ID) {
				m.applyGeometry(c, c.Geom)
			}
		case monitor.Removed:
			log.WithField("successor", ch.Successor).Info("monitor removed")
			for _, c := range m.clientsOn(ch.Monitor.ID) {
				c.Monitor = ch.Successor
				c.HasMonitor = ch.HasSuccessor
				m.applyGeometry(c, c.Geom)
			}
		}
	}
}

func (m *Manager) clientsOn(id uint32) []*Client {
	var out []*Client
	for _, cid := range m.reg.order {
		c := m.reg.clients[cid]
		if c.HasMonitor && c.Monitor == id {
			out = append(out, c)
		}
	}
	return out
}

// moveToMonitor moves c to the monitor after (dir > 0) or before its own,
// keeping its offset from the monitor origin.
func (m *Manager) moveToMonitor(c *Client, dir int) {
	if m.monitors.Len() < 2 {
		return
	}
	var (
		target monitor.Monitor
		ok     bool
	)
	if dir > 0 {
		target, ok = m.monitors.Next(c.Monitor)
	} else {
		target, ok = m.monitors.Prev(c.Monitor)
	}
	if !ok || (c.HasMonitor && target.ID == c.Monitor) {
		return
	}

	from := m.monitorBounds(c)
	r := c.Geom
	r.X = target.Bounds.X + (c.Geom.X - from.X)
	r.Y = target.Bounds.Y + (c.Geom.Y - from.Y)
	c.Monitor = target.ID
	c.HasMonitor = true
	if c.Fullscreen {
		r = target.Bounds
	}
	m.applyGeometry(c, r)
	m.raise(c)
	m.backend.WarpPointer(c.Frame, c.Geom.Width/2, c.Geom.Height/2)
}
