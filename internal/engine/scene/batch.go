package scene

import (
	"github.com/Faultbox/geoview/internal/engine/rendermode"
	"github.com/Faultbox/geoview/pkg/colormap"
	"github.com/Faultbox/geoview/pkg/geometry"
	"github.com/Faultbox/geoview/pkg/math"
)

// NormalLengthRatio sizes point normal segments relative to the scene.
const NormalLengthRatio = 0.02

// PointBatch is a point cloud ready for upload as separate xyz and rgb
// arrays.
type PointBatch struct {
	ID        uint64
	Version   uint64
	Positions []float32
	Colors    []float32
	Count     int
}

// MeshBatch is a non-indexed triangle list. Flat shading needs one normal
// per face corner, so meshes are expanded rather than indexed.
type MeshBatch struct {
	ID        uint64
	Version   uint64
	Positions []float32
	Normals   []float32
	Colors    []float32
	Count     int
	Wireframe bool
}

// LineBatch is a set of line segments drawn in one colour.
type LineBatch struct {
	ID        uint64
	Version   uint64
	Positions []float32
	Count     int
	Color     math.Color
}

type pointKey struct {
	option rendermode.PointColorOption
	color  math.Color
	bounds geometry.AABB
}

type meshKey struct {
	shade rendermode.MeshShadeOption
	color math.Color
}

type entry struct {
	id uint64

	pointKey pointKey
	points   *PointBatch

	normalBounds geometry.AABB
	normals      *LineBatch

	meshKey meshKey
	mesh    *MeshBatch
}

// Builder converts geometry plus render mode into batches, caching each
// batch until an input that affects its content changes. A rebuilt batch
// gets a new Version so the backend re-uploads only what changed.
type Builder struct {
	cmap    colormap.Map
	entries map[geometry.Geometry]*entry
	lastID  uint64
	lastVer uint64

	boundsID  uint64
	boundsBox geometry.AABB
	bounds    *LineBatch
}

// NewBuilder creates a builder that derives scalar colours from cmap.
func NewBuilder(cmap colormap.Map) *Builder {
	return &Builder{
		cmap:    cmap,
		entries: make(map[geometry.Geometry]*entry),
	}
}

func (b *Builder) entry(g geometry.Geometry) *entry {
	e, ok := b.entries[g]
	if !ok {
		b.lastID++
		e = &entry{id: b.lastID}
		b.entries[g] = e
	}
	return e
}

func (b *Builder) nextVersion() uint64 {
	b.lastVer++
	return b.lastVer
}

// Points returns the batch for a point cloud under the given mode. bounds
// is the scene bounding box that positional colour options refer to.
func (b *Builder) Points(pc geometry.PointCloud, mode rendermode.PointCloudMode, bounds geometry.AABB) *PointBatch {
	e := b.entry(pc)
	key := pointKey{option: mode.ColorOption, color: mode.DefaultColor, bounds: bounds}
	if e.points != nil && e.pointKey == key {
		return e.points
	}

	points := pc.Points()
	e.pointKey = key
	e.points = &PointBatch{
		ID:        e.id,
		Version:   b.nextVersion(),
		Positions: flattenVec3(points),
		Colors:    PointColors(pc, mode.ColorOption, mode.DefaultColor, bounds, b.cmap),
		Count:     len(points),
	}
	return e.points
}

// Normals returns line segments along each point normal, or nil when the
// cloud has no normals.
func (b *Builder) Normals(pc geometry.PointCloud, bounds geometry.AABB) *LineBatch {
	normals := pc.Normals()
	if len(normals) == 0 {
		return nil
	}
	e := b.entry(pc)
	if e.normals != nil && e.normalBounds == bounds {
		return e.normals
	}

	length := bounds.MaxExtent() * NormalLengthRatio
	if length <= 0 {
		length = NormalLengthRatio
	}
	points := pc.Points()
	positions := make([]float32, 0, len(points)*6)
	for i, p := range points {
		q := p.Add(normals[i].Scale(length))
		positions = append(positions, p.X, p.Y, p.Z, q.X, q.Y, q.Z)
	}

	e.normalBounds = bounds
	e.normals = &LineBatch{
		ID:        e.id,
		Version:   b.nextVersion(),
		Positions: positions,
		Count:     len(points) * 2,
		Color:     math.Color{R: 0, G: 1, B: 0},
	}
	return e.normals
}

// Mesh returns the batch for a triangle mesh under the given mode.
func (b *Builder) Mesh(m geometry.TriangleMesh, mode rendermode.MeshMode) *MeshBatch {
	e := b.entry(m)
	key := meshKey{shade: mode.ShadeOption, color: mode.DefaultColor}
	if e.mesh != nil && e.meshKey == key {
		return e.mesh
	}

	e.meshKey = key
	e.mesh = buildMesh(m, mode)
	e.mesh.ID = e.id
	e.mesh.Version = b.nextVersion()
	return e.mesh
}

func buildMesh(m geometry.TriangleMesh, mode rendermode.MeshMode) *MeshBatch {
	vertices := m.Vertices()
	triangles := m.Triangles()
	vnormals := m.VertexNormals()
	vcolors := m.VertexColors()

	n := len(triangles) * 3
	batch := &MeshBatch{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		Colors:    make([]float32, 0, n*3),
		Count:     n,
		Wireframe: mode.ShadeOption == rendermode.MeshShadeWireframe,
	}

	useVertexColors := len(vcolors) == len(vertices) &&
		(mode.ShadeOption == rendermode.MeshShadeVertexColor || mode.ShadeOption == rendermode.MeshShadeWireframe)
	flat := mode.ShadeOption == rendermode.MeshShadeFlat

	for _, tri := range triangles {
		var faceNormal math.Vec3
		if flat || len(vnormals) != len(vertices) {
			faceNormal = geometry.FaceNormal(vertices[tri[0]], vertices[tri[1]], vertices[tri[2]])
		}
		for _, idx := range tri {
			v := vertices[idx]
			batch.Positions = append(batch.Positions, v.X, v.Y, v.Z)

			normal := faceNormal
			if !flat && len(vnormals) == len(vertices) {
				normal = vnormals[idx]
			}
			batch.Normals = append(batch.Normals, normal.X, normal.Y, normal.Z)

			c := mode.DefaultColor
			if useVertexColors {
				c = vcolors[idx]
			}
			batch.Colors = append(batch.Colors, c.R, c.G, c.B)
		}
	}
	return batch
}

// PointColors derives one rgb triple per point for the given option.
func PointColors(pc geometry.PointCloud, option rendermode.PointColorOption, flat math.Color, bounds geometry.AABB, cmap colormap.Map) []float32 {
	points := pc.Points()
	colors := pc.Colors()
	hasColors := len(colors) == len(points) && len(colors) > 0

	out := make([]float32, 0, len(points)*3)
	for i, p := range points {
		var c math.Color
		switch option {
		case rendermode.PointColorX:
			c = cmap.Lookup(bounds.Percentage(0, p.X))
		case rendermode.PointColorY:
			c = cmap.Lookup(bounds.Percentage(1, p.Y))
		case rendermode.PointColorZ:
			c = cmap.Lookup(bounds.Percentage(2, p.Z))
		case rendermode.PointColorColor:
			if hasColors {
				c = colors[i]
			} else {
				c = flat
			}
		default:
			if hasColors {
				c = colors[i]
			} else {
				c = cmap.Lookup(bounds.Percentage(2, p.Z))
			}
		}
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

func flattenVec3(vs []math.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
