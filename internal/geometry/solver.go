// Package geometry computes legal frame rectangles for managed windows.
package geometry

import "github.com/stapel/wmwm-sub000/internal/platform"

// Input is everything the solver needs to correct one proposed rectangle.
type Input struct {
	Proposed   platform.Rect
	Hints      platform.SizeHints
	Monitor    platform.Rect
	Border     int
	Fullscreen bool
}

// Constrain returns the legal rectangle for in.Proposed together with the
// border width the frame must use.
//
// The steps run in a fixed order: increment snapping, minimum size,
// monitor fit, maximum size, then position clamping. A fullscreen window
// takes the monitor bounds verbatim with no border.
func Constrain(in Input) (platform.Rect, int) {
	if in.Fullscreen {
		return in.Monitor, 0
	}

	r := in.Proposed
	h := in.Hints
	b2 := 2 * in.Border

	if h.HasInc && (h.HasBase || h.HasMin) {
		baseW, baseH := h.BaseWidth, h.BaseHeight
		if !h.HasBase {
			baseW, baseH = h.MinWidth, h.MinHeight
		}
		r.Width = snap(r.Width, baseW, h.WidthInc)
		r.Height = snap(r.Height, baseH, h.HeightInc)
	}

	if h.HasMin {
		if r.Width < h.MinWidth {
			r.Width = h.MinWidth
		}
		if r.Height < h.MinHeight {
			r.Height = h.MinHeight
		}
	}

	if r.Width+b2 > in.Monitor.Width {
		r.Width = in.Monitor.Width - b2
	}
	if r.Height+b2 > in.Monitor.Height {
		r.Height = in.Monitor.Height - b2
	}

	if h.HasMax {
		if h.MaxWidth > 0 && r.Width > h.MaxWidth {
			r.Width = h.MaxWidth
		}
		if h.MaxHeight > 0 && r.Height > h.MaxHeight {
			r.Height = h.MaxHeight
		}
	}

	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}

	if r.X < in.Monitor.X {
		r.X = in.Monitor.X
	}
	if r.Y < in.Monitor.Y {
		r.Y = in.Monitor.Y
	}
	if right := in.Monitor.X + in.Monitor.Width; r.X+r.Width+b2 > right {
		r.X = right - r.Width - b2
	}
	if bottom := in.Monitor.Y + in.Monitor.Height; r.Y+r.Height+b2 > bottom {
		r.Y = bottom - r.Height - b2
	}

	return r, in.Border
}

// snap rounds size down to base + k*inc, never below base.
func snap(size, base, inc int) int {
	if inc <= 1 || size <= base {
		return size
	}
	return base + (size-base)/inc*inc
}
