package geometry

import (
	"testing"

	"github.com/stapel/wmwm-sub000/internal/platform"
)

var screen = platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

func TestConstrainSnapsToIncrementFromBase(t *testing.T) {
	in := Input{
		Proposed: platform.Rect{X: 10, Y: 10, Width: 137, Height: 100},
		Hints: platform.SizeHints{
			HasBase: true, BaseWidth: 100, BaseHeight: 0,
			HasInc: true, WidthInc: 10, HeightInc: 1,
		},
		Monitor: screen,
		Border:  1,
	}

	got, border := Constrain(in)
	if got.Width != 130 {
		t.Fatalf("expected width 130, got %d", got.Width)
	}
	if got.Height != 100 {
		t.Fatalf("expected height 100, got %d", got.Height)
	}
	if border != 1 {
		t.Fatalf("expected border 1, got %d", border)
	}
}

func TestConstrainUsesMinSizeAsBase(t *testing.T) {
	in := Input{
		Proposed: platform.Rect{Width: 47, Height: 47},
		Hints: platform.SizeHints{
			HasMin: true, MinWidth: 20, MinHeight: 20,
			HasInc: true, WidthInc: 8, HeightInc: 8,
		},
		Monitor: screen,
	}

	got, _ := Constrain(in)
	if got.Width != 44 || got.Height != 44 {
		t.Fatalf("expected 44x44, got %dx%d", got.Width, got.Height)
	}
}

func TestConstrainIgnoresIncrementWithoutBaseOrMin(t *testing.T) {
	in := Input{
		Proposed: platform.Rect{Width: 137, Height: 100},
		Hints:    platform.SizeHints{HasInc: true, WidthInc: 10, HeightInc: 10},
		Monitor:  screen,
	}

	got, _ := Constrain(in)
	if got.Width != 137 {
		t.Fatalf("expected width 137, got %d", got.Width)
	}
}

func TestConstrainFullscreenTakesMonitorBounds(t *testing.T) {
	mon := platform.Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}
	in := Input{
		Proposed:   platform.Rect{X: 5, Y: 5, Width: 10, Height: 10},
		Hints:      platform.SizeHints{HasMax: true, MaxWidth: 10, MaxHeight: 10},
		Monitor:    mon,
		Border:     3,
		Fullscreen: true,
	}

	got, border := Constrain(in)
	if got != mon {
		t.Fatalf("expected %+v, got %+v", mon, got)
	}
	if border != 0 {
		t.Fatalf("expected border 0, got %d", border)
	}
}

func TestConstrainKeepsBorderedWindowOnMonitor(t *testing.T) {
	mon := platform.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}
	cases := []platform.Rect{
		{X: 0, Y: 0, Width: 200, Height: 100},
		{X: 3800, Y: 1000, Width: 200, Height: 100},
		{X: 2000, Y: -50, Width: 4000, Height: 3000},
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
	}

	for _, proposed := range cases {
		got, b := Constrain(Input{Proposed: proposed, Monitor: mon, Border: 2})
		if got.X < mon.X || got.Y < mon.Y {
			t.Fatalf("proposed %+v: origin %d,%d before monitor", proposed, got.X, got.Y)
		}
		if got.X+got.Width+2*b > mon.X+mon.Width {
			t.Fatalf("proposed %+v: right edge %d past monitor", proposed, got.X+got.Width+2*b)
		}
		if got.Y+got.Height+2*b > mon.Y+mon.Height {
			t.Fatalf("proposed %+v: bottom edge %d past monitor", proposed, got.Y+got.Height+2*b)
		}
	}
}

func TestConstrainHonorsMinAndMax(t *testing.T) {
	hints := platform.SizeHints{
		HasMin: true, MinWidth: 100, MinHeight: 80,
		HasMax: true, MaxWidth: 300, MaxHeight: 200,
	}

	small, _ := Constrain(Input{Proposed: platform.Rect{Width: 10, Height: 10}, Hints: hints, Monitor: screen})
	if small.Width != 100 || small.Height != 80 {
		t.Fatalf("expected 100x80, got %dx%d", small.Width, small.Height)
	}

	big, _ := Constrain(Input{Proposed: platform.Rect{Width: 1000, Height: 1000}, Hints: hints, Monitor: screen})
	if big.Width != 300 || big.Height != 200 {
		t.Fatalf("expected 300x200, got %dx%d", big.Width, big.Height)
	}
}

func TestConstrainIsIdempotent(t *testing.T) {
	in := Input{
		Proposed: platform.Rect{X: 1800, Y: 1000, Width: 517, Height: 333},
		Hints: platform.SizeHints{
			HasBase: true, BaseWidth: 4, BaseHeight: 4,
			HasInc: true, WidthInc: 7, HeightInc: 13,
		},
		Monitor: screen,
		Border:  1,
	}

	first, _ := Constrain(in)
	in.Proposed = first
	second, _ := Constrain(in)
	if first != second {
		t.Fatalf("expected %+v on second pass, got %+v", first, second)
	}
}

func TestApplyGravity(t *testing.T) {
	r := platform.Rect{X: 500, Y: 500, Width: 198, Height: 98}
	cases := []struct {
		g     platform.Gravity
		wantX int
		wantY int
	}{
		{platform.GravityStatic, 500, 500},
		{platform.GravityNorthWest, 500, 500},
		{platform.GravityNorth, 400, 500},
		{platform.GravityNorthEast, 300, 500},
		{platform.GravityWest, 500, 450},
		{platform.GravityCenter, 400, 450},
		{platform.GravityEast, 300, 450},
		{platform.GravitySouthWest, 500, 400},
		{platform.GravitySouth, 400, 400},
		{platform.GravitySouthEast, 300, 400},
	}

	for _, tc := range cases {
		got := ApplyGravity(r, tc.g, 1)
		if got.X != tc.wantX || got.Y != tc.wantY {
			t.Fatalf("gravity %d: expected %d,%d, got %d,%d", tc.g, tc.wantX, tc.wantY, got.X, got.Y)
		}
		if got.Width != r.Width || got.Height != r.Height {
			t.Fatalf("gravity %d changed size to %dx%d", tc.g, got.Width, got.Height)
		}
	}
}
