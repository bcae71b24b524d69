package monitor

import (
	"testing"

	"github.com/stapel/wmwm-sub000/internal/platform"
)

func output(id uint32, name string, x, y, w, h int) platform.Output {
	return platform.Output{
		ID:     id,
		Name:   name,
		Bounds: platform.Rect{X: x, Y: y, Width: w, Height: h},
		Active: true,
	}
}

func TestApplyAddsActiveOutputsInReportOrder(t *testing.T) {
	topo := New()
	changes := topo.Apply([]platform.Output{
		output(10, "DP-1", 0, 0, 1920, 1080),
		output(11, "HDMI-1", 1920, 0, 1920, 1080),
		{ID: 12, Name: "VGA-1", Active: false},
	})

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	for _, ch := range changes {
		if ch.Kind != Added {
			t.Fatalf("expected added, got %s", ch.Kind)
		}
	}
	all := topo.All()
	if len(all) != 2 || all[0].Name != "DP-1" || all[1].Name != "HDMI-1" {
		t.Fatalf("unexpected ring: %+v", all)
	}
}

func TestApplySkipsClones(t *testing.T) {
	topo := New()
	topo.Apply([]platform.Output{
		output(1, "eDP-1", 0, 0, 1920, 1080),
		output(2, "HDMI-1", 0, 0, 1280, 720),
	})

	if topo.Len() != 1 {
		t.Fatalf("expected 1 monitor, got %d", topo.Len())
	}
	m, ok := topo.First()
	if !ok || m.ID != 1 {
		t.Fatalf("expected first reported output to be canonical, got %+v", m)
	}
}

func TestApplyRemovesMonitorThatBecameClone(t *testing.T) {
	topo := New()
	topo.Apply([]platform.Output{
		output(1, "A", 0, 0, 1920, 1080),
		output(2, "B", 1920, 0, 1920, 1080),
	})

	changes := topo.Apply([]platform.Output{
		output(1, "A", 0, 0, 1920, 1080),
		output(2, "B", 0, 0, 1920, 1080),
	})
	if len(changes) != 1 || changes[0].Kind != Removed || changes[0].Monitor.ID != 2 {
		t.Fatalf("expected removal of 2, got %+v", changes)
	}
	if !changes[0].HasSuccessor || changes[0].Successor != 1 {
		t.Fatalf("expected successor 1, got %+v", changes[0])
	}
}

func TestApplyReportsResize(t *testing.T) {
	topo := New()
	topo.Apply([]platform.Output{output(1, "A", 0, 0, 1920, 1080)})

	if changes := topo.Apply([]platform.Output{output(1, "A", 0, 0, 1920, 1080)}); len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}

	changes := topo.Apply([]platform.Output{output(1, "A", 0, 0, 2560, 1440)})
	if len(changes) != 1 || changes[0].Kind != Resized {
		t.Fatalf("expected one resize, got %+v", changes)
	}
	if changes[0].Monitor.Bounds.Width != 2560 {
		t.Fatalf("expected new width 2560, got %d", changes[0].Monitor.Bounds.Width)
	}
}

func TestRemovalSuccessorFollowsRing(t *testing.T) {
	topo := New()
	topo.Apply([]platform.Output{
		output(1, "A", 0, 0, 100, 100),
		output(2, "B", 100, 0, 100, 100),
		output(3, "C", 200, 0, 100, 100),
	})

	changes := topo.Apply([]platform.Output{
		output(1, "A", 0, 0, 100, 100),
		output(3, "C", 200, 0, 100, 100),
	})
	if len(changes) != 1 || changes[0].Successor != 3 {
		t.Fatalf("expected B to hand over to C, got %+v", changes)
	}

	changes = topo.Apply([]platform.Output{output(1, "A", 0, 0, 100, 100)})
	if len(changes) != 1 || changes[0].Successor != 1 {
		t.Fatalf("expected last monitor to wrap to first, got %+v", changes)
	}

	changes = topo.Apply(nil)
	if len(changes) != 1 || changes[0].HasSuccessor {
		t.Fatalf("expected removal without successor, got %+v", changes)
	}
	if topo.Len() != 0 {
		t.Fatalf("expected empty topology, got %d", topo.Len())
	}
}

func TestAtFallsBackToFirst(t *testing.T) {
	topo := New()
	if _, ok := topo.At(0, 0); ok {
		t.Fatalf("expected no monitor in empty topology")
	}

	topo.Apply([]platform.Output{
		output(1, "A", 0, 0, 1920, 1080),
		output(2, "B", 1920, 0, 1920, 1080),
	})
	if m, _ := topo.At(2000, 10); m.ID != 2 {
		t.Fatalf("expected B, got %+v", m)
	}
	if m, _ := topo.At(-50, 5000); m.ID != 1 {
		t.Fatalf("expected fallback to A, got %+v", m)
	}
}

func TestNextPrevWrap(t *testing.T) {
	topo := New()
	topo.Apply([]platform.Output{
		output(1, "A", 0, 0, 100, 100),
		output(2, "B", 100, 0, 100, 100),
	})

	if m, _ := topo.Next(2); m.ID != 1 {
		t.Fatalf("expected next of B to wrap to A, got %d", m.ID)
	}
	if m, _ := topo.Prev(1); m.ID != 2 {
		t.Fatalf("expected prev of A to wrap to B, got %d", m.ID)
	}
}
