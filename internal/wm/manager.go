// Package wm is the window manager core: the client registry, workspaces,
// focus policy, interaction modes and the protocol state published to
// pagers and panels. Everything runs on the dispatch loop in Run.
package wm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stapel/wmwm-sub000/internal/config"
	"github.com/stapel/wmwm-sub000/internal/hotkeys"
	"github.com/stapel/wmwm-sub000/internal/monitor"
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// ErrConnectionClosed is returned by Run when the event stream ends.
var ErrConnectionClosed = errors.New("display connection closed")

// Manager is the runtime context. It is owned by the goroutine calling Run.
type Manager struct {
	backend platform.Backend
	cfg     *config.Config
	log     *logrus.Entry
	keys    *hotkeys.Table
	spawn   func(program string) error

	monitors *monitor.Topology
	screen   platform.Rect

	reg        registry
	workspaces [config.Workspaces][]ClientID
	current    int

	focus     ClientID
	lastFocus ClientID
	mode      Mode
	gesture   gesture
	timestamp uint32

	focusPixel   uint32
	unfocusPixel uint32
}

// New builds a manager for an already-acquired backend. Border colors are
// resolved here so a bad color name fails at startup.
func New(backend platform.Backend, cfg *config.Config, log *logrus.Entry) (*Manager, error) {
	focus, err := backend.AllocColor(cfg.FocusColor)
	if err != nil {
		return nil, fmt.Errorf("focus color %q: %w", cfg.FocusColor, err)
	}
	unfocus, err := backend.AllocColor(cfg.UnfocusColor)
	if err != nil {
		return nil, fmt.Errorf("unfocus color %q: %w", cfg.UnfocusColor, err)
	}

	return &Manager{
		backend:      backend,
		cfg:          cfg,
		log:          log,
		keys:         hotkeys.Default(config.KeyModifier, config.ExtraModifier),
		spawn:        spawnProgram,
		monitors:     monitor.New(),
		screen:       backend.ScreenBounds(),
		reg:          newRegistry(),
		focusPixel:   focus,
		unfocusPixel: unfocus,
	}, nil
}

// Start publishes the initial protocol state, installs the grabs, reads the
// monitor layout and adopts windows that were mapped before we started.
func (m *Manager) Start() {
	m.publishRoot()
	m.grabInput()
	m.refreshMonitors()
	m.adoptExisting()
	m.backend.Flush()
}

// Run dispatches events until ctx is cancelled or the connection closes.
// Every event already queued is handled before the next blocking wait.
func (m *Manager) Run(ctx context.Context) error {
	events := m.backend.Events()
	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrConnectionClosed
			}
			m.dispatch(ev)
		drain:
			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return ErrConnectionClosed
					}
					m.dispatch(ev)
				default:
					break drain
				}
			}
			m.backend.Flush()
		}
	}
}

// shutdown hands every client back to the root window where it is
// currently shown and releases focus.
func (m *Manager) shutdown() {
	m.log.Info("restoring clients")
	root := m.backend.Root()
	for _, id := range m.reg.order {
		c := m.reg.clients[id]
		if err := m.backend.Reparent(c.Window, root, c.Geom.X+c.Border, c.Geom.Y+c.Border); err != nil {
			m.log.WithError(err).WithField("window", c.Window).Debug("reparent on shutdown failed")
			continue
		}
		m.backend.Map(c.Window)
		m.backend.ChangeSaveSet(c.Window, false)
	}
	m.backend.SetInputFocus(platform.None, m.timestamp)
	m.backend.Flush()
}

// stamp advances the protocol timestamp, ignoring stale values.
func (m *Manager) stamp(t uint32) {
	if t == 0 {
		return
	}
	if m.timestamp == 0 || int32(t-m.timestamp) > 0 {
		m.timestamp = t
	}
}

func (m *Manager) grabInput() {
	m.keys.SetIgnoreMods(m.backend.IgnoreMods())
	m.keys.Bind(m.backend.GrabKeys(m.keys.Sequences()))
	m.backend.GrabButtons([]platform.ButtonGrab{
		{Mods: config.MouseModMask, Button: config.MoveButton},
		{Mods: config.MouseModMask, Button: config.ResizeButton},
	})
}

// Mode reports the current interaction mode.
func (m *Manager) Mode() Mode {
	return m.mode
}

// CurrentWorkspace reports the visible workspace index.
func (m *Manager) CurrentWorkspace() int {
	return m.current
}

// Focused returns the focused client, or nil.
func (m *Manager) Focused() *Client {
	return m.reg.get(m.focus)
}

// ClientFor returns the client managing win (client window or frame).
func (m *Manager) ClientFor(win platform.WindowID) *Client {
	return m.reg.byWin(win)
}

// Clients returns every managed client, newest first.
func (m *Manager) Clients() []*Client {
	out := make([]*Client, 0, len(m.reg.order))
	for _, id := range m.reg.order {
		out = append(out, m.reg.clients[id])
	}
	return out
}
