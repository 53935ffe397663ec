// Package lighting derives the light setup used to shade meshes.
//
// Two fill lights are placed around the scene bounding box and only move
// when the scene changes. A headlight follows the camera eye and is
// refreshed every frame, so surfaces facing the viewer are always lit.
package lighting

import (
	"github.com/Faultbox/geoview/pkg/geometry"
	"github.com/Faultbox/geoview/pkg/math"
)

// FillLights is the number of bbox-anchored lights.
const FillLights = 2

// Fill light placement, in degrees.
var fillAngles = [FillLights][2]float32{
	{45, 45},
	{225, -30},
}

// fillDistance places fill lights this many scene extents from the centre.
const fillDistance = 2

// Light is a point light.
type Light struct {
	Position math.Vec3
	Color    math.Color
}

// Setup is everything a backend needs to shade a frame.
type Setup struct {
	Enabled   bool
	Ambient   math.Color
	Fill      [FillLights]Light
	Head      Light
	Specular  float32
	Shininess float32
}

// ForBounds returns the default lighting for a scene bounding box. An empty
// box is treated as a unit cube at the origin.
func ForBounds(b geometry.AABB, enabled bool) Setup {
	center := math.Vec3{}
	extent := float32(1)
	if !b.IsEmpty() {
		center = b.Center()
		if e := b.MaxExtent(); e > 0 {
			extent = e
		}
	}

	s := Setup{
		Enabled:   enabled,
		Ambient:   math.Color{R: 0.2, G: 0.2, B: 0.2},
		Specular:  0.3,
		Shininess: 32,
		Head:      Light{Color: math.Color{R: 0.6, G: 0.6, B: 0.6}},
	}
	for i, a := range fillAngles {
		dir := Direction(a[0], a[1])
		s.Fill[i] = Light{
			Position: center.Add(dir.Scale(extent * fillDistance)),
			Color:    math.Color{R: 0.3, G: 0.3, B: 0.3},
		}
	}
	return s
}

// WithHeadlight returns s with the headlight moved to eye.
func (s Setup) WithHeadlight(eye math.Vec3) Setup {
	s.Head.Position = eye
	return s
}

// Tracker caches the bbox-derived setup and rebuilds it only when the
// scene bounds or the light toggle change.
type Tracker struct {
	bounds  geometry.AABB
	enabled bool
	valid   bool
	setup   Setup
}

// Update returns the lighting for this frame.
func (t *Tracker) Update(bounds geometry.AABB, enabled bool, eye math.Vec3) Setup {
	if !t.valid || t.bounds != bounds || t.enabled != enabled {
		t.setup = ForBounds(bounds, enabled)
		t.bounds = bounds
		t.enabled = enabled
		t.valid = true
	}
	return t.setup.WithHeadlight(eye)
}

// Invalidate forces the next Update to rebuild.
func (t *Tracker) Invalidate() {
	t.valid = false
}
