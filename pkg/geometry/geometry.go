// Package geometry defines the read-only geometry handles the viewer draws.
//
// The viewer never copies or mutates vertex data; it holds handles by
// reference and reads them through the accessors below.
package geometry

import "github.com/Faultbox/geoview/pkg/math"

// Kind tags a geometry handle for draw dispatch.
type Kind int

const (
	KindPointCloud Kind = iota
	KindTriangleMesh
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPointCloud:
		return "point_cloud"
	case KindTriangleMesh:
		return "triangle_mesh"
	default:
		return "unknown"
	}
}

// Geometry is a shared read-only reference to drawable data.
type Geometry interface {
	Kind() Kind
	BoundingBox() AABB
	IsEmpty() bool
}

// PointCloud is a set of points with optional per-point normals and colours.
// Normals and Colors return nil when absent, otherwise a slice the same
// length as Points.
type PointCloud interface {
	Geometry
	Points() []math.Vec3
	Normals() []math.Vec3
	Colors() []math.Color
}

// TriangleMesh is an indexed triangle mesh with optional per-vertex
// normals and colours.
type TriangleMesh interface {
	Geometry
	Vertices() []math.Vec3
	Triangles() [][3]uint32
	VertexNormals() []math.Vec3
	VertexColors() []math.Color
}
