package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoview/pkg/math"
)

// AABB is an axis-aligned bounding box. The zero value is not a valid box;
// use EmptyAABB to start an accumulation.
type AABB struct {
	Min, Max math.Vec3
}

// EmptyAABB returns a box that contains nothing and absorbs any point
// added to it.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no point.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend returns the box grown to include p.
func (b AABB) Extend(p math.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the centroid of the box, or the origin for an empty box.
func (b AABB) Center() math.Vec3 {
	if b.IsEmpty() {
		return math.Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the size along each axis.
func (b AABB) Extent() math.Vec3 {
	if b.IsEmpty() {
		return math.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest axis size.
func (b AABB) MaxExtent() float32 {
	e := b.Extent()
	return math32.Max(e.X, math32.Max(e.Y, e.Z))
}

// Percentage returns where v lies between the box bounds on the given axis
// (0=X, 1=Y, 2=Z), clamped to [0, 1]. A flat axis maps to 0.5.
func (b AABB) Percentage(axis int, v float32) float32 {
	var lo, hi float32
	switch axis {
	case 0:
		lo, hi = b.Min.X, b.Max.X
	case 1:
		lo, hi = b.Min.Y, b.Max.Y
	default:
		lo, hi = b.Min.Z, b.Max.Z
	}
	if b.IsEmpty() || hi-lo <= 0 {
		return 0.5
	}
	p := (v - lo) / (hi - lo)
	return math32.Max(0, math32.Min(1, p))
}

// BoundsOf returns the bounding box of a set of points.
func BoundsOf(points []math.Vec3) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// BoundsOfAll returns the union of the bounding boxes of all handles.
func BoundsOfAll(items []Geometry) AABB {
	b := EmptyAABB()
	for _, g := range items {
		b = b.Union(g.BoundingBox())
	}
	return b
}
