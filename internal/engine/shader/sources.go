package shader

import _ "embed"

// PointVertexShader draws unlit, per-vertex coloured points.
//
//go:embed points.vert
var PointVertexShader string

// PointFragmentShader is shared by points and lines.
//
//go:embed points.frag
var PointFragmentShader string

// MeshVertexShader transforms lit triangles.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader applies ambient, fill and headlight shading.
//
//go:embed mesh.frag
var MeshFragmentShader string

// LineVertexShader draws single-colour line segments.
//
//go:embed lines.vert
var LineVertexShader string
