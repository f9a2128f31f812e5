package photonkd

import (
	"math"

	"github.com/golang/geo/r3"
)

// Bounds3 is an axis-aligned box. The zero-volume inverted box returned by
// EmptyBounds is the identity for Union.
type Bounds3 struct {
	Min, Max r3.Vector
}

// EmptyBounds returns an inverted box that any Union overrides.
func EmptyBounds() Bounds3 {
	inf := math.Inf(1)
	return Bounds3{
		Min: r3.Vector{X: inf, Y: inf, Z: inf},
		Max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box is inverted on any axis.
func (b Bounds3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

func (b Bounds3) Union(o Bounds3) Bounds3 {
	minP, maxP := aabbUnion(b.Min, b.Max, o.Min, o.Max)
	return Bounds3{Min: minP, Max: maxP}
}

func aabbUnion(aMin, aMax, bMin, bMax r3.Vector) (r3.Vector, r3.Vector) {
	return r3.Vector{
			X: rmin(aMin.X, bMin.X),
			Y: rmin(aMin.Y, bMin.Y),
			Z: rmin(aMin.Z, bMin.Z),
		}, r3.Vector{
			X: rmax(aMax.X, bMax.X),
			Y: rmax(aMax.Y, bMax.Y),
			Z: rmax(aMax.Z, bMax.Z),
		}
}

// Diagonal returns Max-Min.
func (b Bounds3) Diagonal() r3.Vector { return b.Max.Sub(b.Min) }

// SurfaceArea of the box; zero for empty boxes.
func (b Bounds3) SurfaceArea() Real {
	if b.IsEmpty() {
		return 0
	}
	d := b.Diagonal()
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// ContainsPoint reports whether p is inside the closed box.
func (b Bounds3) ContainsPoint(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBounds reports whether o lies inside the closed box b.
func (b Bounds3) ContainsBounds(o Bounds3) bool {
	return b.ContainsPoint(o.Min) && b.ContainsPoint(o.Max)
}

// Intersects reports whether the closed boxes b and o share a point,
// faces included.
func (b Bounds3) Intersects(o Bounds3) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y &&
		b.Min.Z <= o.Max.Z && o.Min.Z <= b.Max.Z
}

// cubed returns b grown to a cube around its center when any side is
// thinner than minSide. The cube side is the largest side of b.
func (b Bounds3) cubed(minSide Real) Bounds3 {
	d := b.Diagonal()
	if d.X >= minSide && d.Y >= minSide && d.Z >= minSide {
		return b
	}
	half := rmax(d.X, rmax(d.Y, d.Z)) / 2
	c := b.Min.Add(d.Mul(0.5))
	h := r3.Vector{X: half, Y: half, Z: half}
	return Bounds3{Min: c.Sub(h), Max: c.Add(h)}
}

func rmin(a, b Real) Real {
	if a < b {
		return a
	}
	return b
}

func rmax(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}
