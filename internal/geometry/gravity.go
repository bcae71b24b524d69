package geometry

import "github.com/stapel/wmwm-sub000/internal/platform"

// ApplyGravity shifts r so that the reference point named by g, rather than
// the top-left corner, lands on the requested (r.X, r.Y). The bordered size
// is used for the offsets.
func ApplyGravity(r platform.Rect, g platform.Gravity, border int) platform.Rect {
	w := r.Width + 2*border
	h := r.Height + 2*border

	switch g {
	case platform.GravityNorth:
		r.X -= w / 2
	case platform.GravityNorthEast:
		r.X -= w
	case platform.GravityWest:
		r.Y -= h / 2
	case platform.GravityCenter:
		r.X -= w / 2
		r.Y -= h / 2
	case platform.GravityEast:
		r.X -= w
		r.Y -= h / 2
	case platform.GravitySouthWest:
		r.Y -= h
	case platform.GravitySouth:
		r.X -= w / 2
		r.Y -= h
	case platform.GravitySouthEast:
		r.X -= w
		r.Y -= h
	}
	return r
}
