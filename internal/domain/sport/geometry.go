package sport

import "math"

// Rect is an axis-aligned rectangle in normalized court space. Bounds are inclusive.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Mirror returns r reflected through the court centre.
func (r Rect) Mirror() Rect {
	return Rect{MinX: 1 - r.MaxX, MinY: 1 - r.MaxY, MaxX: 1 - r.MinX, MaxY: 1 - r.MinY}
}

// Arc restricts a region to the inside or outside of an ellipse.
// Ellipses model circular court markings after non-uniform normalization.
type Arc struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	RX     float64 `json:"rx"`
	RY     float64 `json:"ry"`
	Inside bool    `json:"inside"`
}

func (a Arc) contains(x, y float64) bool {
	dx := (x - a.CX) / a.RX
	dy := (y - a.CY) / a.RY
	in := dx*dx+dy*dy <= 1
	return in == a.Inside
}

// Mirror returns a reflected through the court centre.
func (a Arc) Mirror() Arc {
	a.CX = 1 - a.CX
	a.CY = 1 - a.CY
	return a
}

// Region is one cell of a sport's court partition.
type Region struct {
	Zone Zone `json:"zone"`
	Rect Rect `json:"rect"`
	Arc  *Arc `json:"arc,omitempty"`
}

// Contains reports whether (x, y) lies inside the region.
func (r Region) Contains(x, y float64) bool {
	if !r.Rect.Contains(x, y) {
		return false
	}
	if r.Arc != nil {
		return r.Arc.contains(x, y)
	}
	return true
}

// Mirror reflects the region through the court centre.
func (r Region) Mirror() Region {
	out := Region{Zone: r.Zone, Rect: r.Rect.Mirror()}
	if r.Arc != nil {
		m := r.Arc.Mirror()
		out.Arc = &m
	}
	return out
}

// Canonicalize converts physical coordinates into the canonical orientation
// where side A always plays on the left. A side swap rotates the court by
// half a turn, so the transform is its own inverse.
func Canonicalize(x, y float64, swapped bool) (float64, float64) {
	if !swapped {
		return x, y
	}
	return 1 - x, 1 - y
}

// Physical converts canonical coordinates back to the presentation orientation.
func Physical(x, y float64, swapped bool) (float64, float64) {
	return Canonicalize(x, y, swapped)
}

// InSurface reports whether (x, y) lies within the normalized surface.
func InSurface(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	return x >= 0 && x <= 1 && y >= 0 && y <= 1
}

// outStrips partitions the left-hand surface outside court into three rectangles.
func outStrips(court Rect) []Rect {
	return []Rect{
		{MinX: 0, MinY: 0, MaxX: court.MinX, MaxY: 1},
		{MinX: court.MinX, MinY: 0, MaxX: 0.5, MaxY: court.MinY},
		{MinX: court.MinX, MinY: court.MaxY, MaxX: 0.5, MaxY: 1},
	}
}

// mirrored returns regions for side A followed by their reflections for side B.
func mirrored(left []Region) []Region {
	out := make([]Region, 0, 2*len(left))
	out = append(out, left...)
	for _, r := range left {
		m := r.Mirror()
		m.Zone.Side = m.Zone.Side.Opponent()
		out = append(out, m)
	}
	return out
}
