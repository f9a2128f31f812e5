package photonkd

import "github.com/golang/geo/r3"

// Point is a visible point with a search radius. The index only reads it.
type Point struct {
	Pos    r3.Vector `json:"pos"`
	Radius Real      `json:"radius"`
}

// Bounds returns the axis-aligned box [Pos-Radius, Pos+Radius].
// A negative radius is treated as zero.
func (p Point) Bounds() Bounds3 {
	r := p.Radius
	if r < 0 {
		r = 0
	}
	d := r3.Vector{X: r, Y: r, Z: r}
	return Bounds3{Min: p.Pos.Sub(d), Max: p.Pos.Add(d)}
}

// Contains reports whether q lies within the point's search radius.
// A negative radius is treated as zero, as in Bounds.
func (p Point) Contains(q r3.Vector) bool {
	r := p.Radius
	if r < 0 {
		r = 0
	}
	d := p.Pos.Sub(q)
	return d.Dot(d) <= r*r
}

func axisOf(v r3.Vector, axis int) Real {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func setAxis(v *r3.Vector, axis int, t Real) {
	switch axis {
	case 0:
		v.X = t
	case 1:
		v.Y = t
	default:
		v.Z = t
	}
}
