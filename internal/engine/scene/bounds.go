package scene

import (
	"github.com/Faultbox/geoview/pkg/geometry"
	"github.com/Faultbox/geoview/pkg/math"
)

// BoundsVertexCount is the number of vertices in a box outline (12 edges x 2).
const BoundsVertexCount = 24

// BoundsColor is the outline colour of the scene bounding box.
var BoundsColor = math.Color{R: 1, G: 0.5, B: 0}

// BoxEdges returns line vertices for the 12 edges of a box, three floats
// per vertex.
func BoxEdges(b geometry.AABB) []float32 {
	lo, hi := b.Min, b.Max
	return []float32{
		// bottom face
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// top face
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// verticals
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	}
}

// Bounds returns the outline of the scene bounding box, or nil when the
// scene is empty. The batch is rebuilt only when the box changes.
func (b *Builder) Bounds(box geometry.AABB) *LineBatch {
	if box.IsEmpty() {
		return nil
	}
	if b.bounds != nil && b.boundsBox == box {
		return b.bounds
	}
	if b.boundsID == 0 {
		b.lastID++
		b.boundsID = b.lastID
	}
	b.boundsBox = box
	b.bounds = &LineBatch{
		ID:        b.boundsID,
		Version:   b.nextVersion(),
		Positions: BoxEdges(box),
		Count:     BoundsVertexCount,
		Color:     BoundsColor,
	}
	return b.bounds
}
