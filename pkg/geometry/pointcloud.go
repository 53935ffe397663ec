package geometry

import "github.com/Faultbox/geoview/pkg/math"

// Cloud is the in-memory PointCloud implementation.
type Cloud struct {
	points  []math.Vec3
	normals []math.Vec3
	colors  []math.Color
	bounds  AABB
}

// NewCloud wraps the given slices without copying. normals and colors may
// be nil; when non-nil they must match the number of points.
func NewCloud(points, normals []math.Vec3, colors []math.Color) (*Cloud, error) {
	if normals != nil && len(normals) != len(points) {
		return nil, &LengthError{Field: "normals", Got: len(normals), Want: len(points)}
	}
	if colors != nil && len(colors) != len(points) {
		return nil, &LengthError{Field: "colors", Got: len(colors), Want: len(points)}
	}
	return &Cloud{
		points:  points,
		normals: normals,
		colors:  colors,
		bounds:  BoundsOf(points),
	}, nil
}

// Kind returns KindPointCloud.
func (c *Cloud) Kind() Kind { return KindPointCloud }

// BoundingBox returns the bounds computed at construction.
func (c *Cloud) BoundingBox() AABB { return c.bounds }

// IsEmpty reports whether the cloud has no points.
func (c *Cloud) IsEmpty() bool { return len(c.points) == 0 }

func (c *Cloud) Points() []math.Vec3 { return c.points }
func (c *Cloud) Normals() []math.Vec3 { return c.normals }
func (c *Cloud) Colors() []math.Color { return c.colors }
