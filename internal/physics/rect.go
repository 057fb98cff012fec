package physics

import "math"

// Rect is an axis-aligned bounding box in world pixels.
// Right and Bottom are exclusive for mask sampling but inclusive for overlap tests.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectAround returns the box of size w x h centered on c.
func RectAround(c Vec2, w, h float64) Rect {
	left := c.X - w/2
	top := c.Y - h/2
	return Rect{Left: left, Top: top, Right: left + w, Bottom: top + h}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// AreIntersecting reports whether two boxes overlap. Touching edges count as overlap:
// the boxes are apart only when one far edge is strictly before the other's near edge.
func AreIntersecting(a, b Rect) bool {
	if a.Right < b.Left || b.Right < a.Left {
		return false
	}
	if a.Bottom < b.Top || b.Bottom < a.Top {
		return false
	}
	return true
}

// Intersect returns the common area of a and b. The result is empty
// (zero or negative size) when the boxes do not overlap.
func Intersect(a, b Rect) Rect {
	return Rect{
		Left:   math.Max(a.Left, b.Left),
		Top:    math.Max(a.Top, b.Top),
		Right:  math.Min(a.Right, b.Right),
		Bottom: math.Min(a.Bottom, b.Bottom),
	}
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}
