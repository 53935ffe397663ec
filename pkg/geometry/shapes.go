package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoview/pkg/math"
)

// SpherePoints samples n points on a sphere using a Fibonacci spiral.
// Normals point outwards; no colours are attached.
func SpherePoints(n int, center math.Vec3, radius float32) *Cloud {
	points := make([]math.Vec3, n)
	normals := make([]math.Vec3, n)
	golden := math32.Pi * (3 - math32.Sqrt(5))
	for i := 0; i < n; i++ {
		y := float32(1)
		if n > 1 {
			y = 1 - 2*float32(i)/float32(n-1)
		}
		r := math32.Sqrt(math32.Max(0, 1-y*y))
		s, c := math32.Sincos(golden * float32(i))
		dir := math.Vec3{X: c * r, Y: y, Z: s * r}
		normals[i] = dir
		points[i] = center.Add(dir.Scale(radius))
	}
	cloud, _ := NewCloud(points, normals, nil)
	return cloud
}

// Box returns a closed axis-aligned box mesh with one colour per corner.
func Box(min, max math.Vec3) *Mesh {
	vertices := []math.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z}, {X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z}, {X: min.X, Y: max.Y, Z: max.Z},
	}
	triangles := [][3]uint32{
		{0, 2, 1}, {0, 3, 2}, // back
		{4, 5, 6}, {4, 6, 7}, // front
		{0, 1, 5}, {0, 5, 4}, // bottom
		{3, 7, 6}, {3, 6, 2}, // top
		{0, 4, 7}, {0, 7, 3}, // left
		{1, 2, 6}, {1, 6, 5}, // right
	}
	colors := make([]math.Color, len(vertices))
	for i := range colors {
		colors[i] = math.Color{R: float32(i & 1), G: float32((i >> 1) & 1), B: float32((i >> 2) & 1)}
	}
	mesh, _ := NewMesh(vertices, triangles, nil, colors)
	return mesh
}
