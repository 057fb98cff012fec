package physics

import "math"

// Mask is a grid of opacity bits. Each cell covers Scale x Scale world pixels.
type Mask struct {
	W, H  int // Size in cells
	Scale int // World pixels per cell edge
	bits  []bool
}

// NewMask creates a fully transparent mask.
func NewMask(w, h, scale int) *Mask {
	if scale < 1 {
		scale = 1
	}
	return &Mask{W: w, H: h, Scale: scale, bits: make([]bool, w*h)}
}

// Set marks the cell at (x, y) as opaque or transparent. Out-of-range cells are ignored.
func (m *Mask) Set(x, y int, opaque bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = opaque
}

// Opaque reports whether the cell at (x, y) is opaque.
func (m *Mask) Opaque(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// PixelWidth returns the mask width in world pixels.
func (m *Mask) PixelWidth() float64 {
	return float64(m.W * m.Scale)
}

// PixelHeight returns the mask height in world pixels.
func (m *Mask) PixelHeight() float64 {
	return float64(m.H * m.Scale)
}

// OpaqueCount returns the number of opaque cells.
func (m *Mask) OpaqueCount() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// opaqueAt samples the mask at a world point, given the mask's placement.
func (m *Mask) opaqueAt(r Rect, x, y float64) bool {
	cx := int(math.Floor((x - r.Left) / float64(m.Scale)))
	cy := int(math.Floor((y - r.Top) / float64(m.Scale)))
	return m.Opaque(cx, cy)
}

// MasksOverlap reports whether any world pixel inside the intersection of ra and rb
// is opaque in both masks. ra and rb are the placements of a and b.
func MasksOverlap(a *Mask, ra Rect, b *Mask, rb Rect) bool {
	if a == nil || b == nil {
		return false
	}
	area := Intersect(ra, rb)
	if area.Empty() {
		return false
	}

	// Sample at pixel centers covering the intersection
	for py := math.Floor(area.Top); py < area.Bottom; py++ {
		sy := py + 0.5
		if sy < area.Top || sy >= area.Bottom {
			continue
		}
		for px := math.Floor(area.Left); px < area.Right; px++ {
			sx := px + 0.5
			if sx < area.Left || sx >= area.Right {
				continue
			}
			if a.opaqueAt(ra, sx, sy) && b.opaqueAt(rb, sx, sy) {
				return true
			}
		}
	}
	return false
}
