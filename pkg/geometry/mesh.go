package geometry

import (
	"fmt"

	"github.com/Faultbox/geoview/pkg/math"
)

// LengthError reports an attribute slice whose length does not match the
// number of vertices.
type LengthError struct {
	Field     string
	Got, Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("geometry: %s has %d entries, want %d", e.Field, e.Got, e.Want)
}

// Mesh is the in-memory TriangleMesh implementation.
type Mesh struct {
	vertices  []math.Vec3
	triangles [][3]uint32
	normals   []math.Vec3
	colors    []math.Color
	bounds    AABB
}

// NewMesh wraps the given slices without copying. Every triangle index must
// reference an existing vertex. When normals is nil, smooth vertex normals
// are computed once here.
func NewMesh(vertices []math.Vec3, triangles [][3]uint32, normals []math.Vec3, colors []math.Color) (*Mesh, error) {
	n := uint32(len(vertices))
	for i, tri := range triangles {
		if tri[0] >= n || tri[1] >= n || tri[2] >= n {
			return nil, fmt.Errorf("geometry: triangle %d references vertex out of range %v (have %d)", i, tri, n)
		}
	}
	if colors != nil && len(colors) != len(vertices) {
		return nil, &LengthError{Field: "colors", Got: len(colors), Want: len(vertices)}
	}
	if normals == nil {
		normals = VertexNormals(vertices, triangles)
	} else if len(normals) != len(vertices) {
		return nil, &LengthError{Field: "normals", Got: len(normals), Want: len(vertices)}
	}
	return &Mesh{
		vertices:  vertices,
		triangles: triangles,
		normals:   normals,
		colors:    colors,
		bounds:    BoundsOf(vertices),
	}, nil
}

// Kind returns KindTriangleMesh.
func (m *Mesh) Kind() Kind { return KindTriangleMesh }

// BoundingBox returns the bounds computed at construction.
func (m *Mesh) BoundingBox() AABB { return m.bounds }

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool { return len(m.triangles) == 0 }

func (m *Mesh) Vertices() []math.Vec3 { return m.vertices }
func (m *Mesh) Triangles() [][3]uint32 { return m.triangles }
func (m *Mesh) VertexNormals() []math.Vec3 { return m.normals }
func (m *Mesh) VertexColors() []math.Color { return m.colors }

// FaceNormal returns the unit normal of a triangle, zero for degenerate faces.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// VertexNormals computes area-weighted smooth normals for an indexed mesh.
func VertexNormals(vertices []math.Vec3, triangles [][3]uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(vertices))
	for _, tri := range triangles {
		a, b, c := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		// unnormalized cross product weights by face area
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range tri {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
