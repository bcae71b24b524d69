// Package monitor tracks the set of active physical outputs and the ring
// order used for next/previous monitor navigation.
package monitor

import (
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// Monitor is one active output after clone removal.
type Monitor struct {
	ID     uint32
	Name   string
	Bounds platform.Rect
}

// ChangeKind classifies one entry returned by Topology.Apply.
type ChangeKind int

const (
	Added ChangeKind = iota
	Resized
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Resized:
		return "resized"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Change describes how one monitor was affected by a topology update. For
// Removed, Successor names the monitor that inherits its clients; it is
// only meaningful when HasSuccessor is true.
type Change struct {
	Kind         ChangeKind
	Monitor      Monitor
	Successor    uint32
	HasSuccessor bool
}

// Topology holds the active monitors. The zero value is not usable; call New.
type Topology struct {
	byID map[uint32]*Monitor
	ring []uint32
}

// New returns an empty topology.
func New() *Topology {
	return &Topology{byID: make(map[uint32]*Monitor)}
}

// Apply reconciles the topology with a fresh output report and returns the
// changes in the order they must be handled: additions and resizes first,
// then removals. Removals are applied one at a time, so a successor is
// always a monitor that is still present when its change is handled.
//
// Outputs sharing a position with an earlier output in the report are
// clones and are skipped. A known monitor that turned into a clone is
// removed like any other.
func (t *Topology) Apply(outputs []platform.Output) []Change {
	type point struct{ x, y int }

	accepted := make(map[uint32]bool)
	taken := make(map[point]bool)
	var changes []Change

	for _, out := range outputs {
		if !out.Active || out.Bounds.Width <= 0 || out.Bounds.Height <= 0 {
			continue
		}
		p := point{out.Bounds.X, out.Bounds.Y}
		if taken[p] || accepted[out.ID] {
			continue
		}
		taken[p] = true
		accepted[out.ID] = true

		m, known := t.byID[out.ID]
		if !known {
			m = &Monitor{ID: out.ID, Name: out.Name, Bounds: out.Bounds}
			t.byID[out.ID] = m
			t.ring = append(t.ring, out.ID)
			changes = append(changes, Change{Kind: Added, Monitor: *m})
			continue
		}
		m.Name = out.Name
		if m.Bounds != out.Bounds {
			m.Bounds = out.Bounds
			changes = append(changes, Change{Kind: Resized, Monitor: *m})
		}
	}

	for _, id := range append([]uint32(nil), t.ring...) {
		if accepted[id] {
			continue
		}
		changes = append(changes, t.remove(id))
	}
	return changes
}

func (t *Topology) remove(id uint32) Change {
	ch := Change{Kind: Removed, Monitor: *t.byID[id]}
	if next, ok := t.successor(id); ok {
		ch.Successor = next
		ch.HasSuccessor = true
	}

	idx := t.index(id)
	t.ring = append(t.ring[:idx], t.ring[idx+1:]...)
	delete(t.byID, id)
	return ch
}

// successor is the ring entry after id, or the first entry when id is last.
func (t *Topology) successor(id uint32) (uint32, bool) {
	idx := t.index(id)
	if idx+1 < len(t.ring) {
		return t.ring[idx+1], true
	}
	for _, other := range t.ring {
		if other != id {
			return other, true
		}
	}
	return 0, false
}

func (t *Topology) index(id uint32) int {
	for i, other := range t.ring {
		if other == id {
			return i
		}
	}
	return -1
}

// Len reports the number of active monitors.
func (t *Topology) Len() int {
	return len(t.ring)
}

// Get returns the monitor with the given id.
func (t *Topology) Get(id uint32) (Monitor, bool) {
	m, ok := t.byID[id]
	if !ok {
		return Monitor{}, false
	}
	return *m, true
}

// All returns the monitors in ring order.
func (t *Topology) All() []Monitor {
	out := make([]Monitor, 0, len(t.ring))
	for _, id := range t.ring {
		out = append(out, *t.byID[id])
	}
	return out
}

// First returns the head of the ring.
func (t *Topology) First() (Monitor, bool) {
	if len(t.ring) == 0 {
		return Monitor{}, false
	}
	return *t.byID[t.ring[0]], true
}

// At returns the monitor containing the point, falling back to the first
// monitor. It reports false only when there are no monitors at all.
func (t *Topology) At(x, y int) (Monitor, bool) {
	for _, id := range t.ring {
		if m := t.byID[id]; m.Bounds.Contains(x, y) {
			return *m, true
		}
	}
	return t.First()
}

// Next returns the monitor after id in ring order, wrapping around.
func (t *Topology) Next(id uint32) (Monitor, bool) {
	return t.step(id, 1)
}

// Prev returns the monitor before id in ring order, wrapping around.
func (t *Topology) Prev(id uint32) (Monitor, bool) {
	return t.step(id, -1)
}

func (t *Topology) step(id uint32, dir int) (Monitor, bool) {
	n := len(t.ring)
	if n == 0 {
		return Monitor{}, false
	}
	idx := t.index(id)
	if idx < 0 {
		return *t.byID[t.ring[0]], true
	}
	return *t.byID[t.ring[(idx+dir+n)%n]], true
}
