package main

import (
	"github.com/Faultbox/geoview/internal/config"
	"github.com/Faultbox/geoview/pkg/geometry"
	"github.com/Faultbox/geoview/pkg/math"
)

// demo builds the procedural scene shown when no geometry is supplied.
type demo struct {
	scene  string
	points int
}

func newDemo(cfg config.DemoConfig) demo {
	return demo{scene: cfg.Scene, points: cfg.Points}
}

// immediate returns geometry cheap enough to build on the render thread.
func (d demo) immediate() []geometry.Geometry {
	if d.scene == "points" {
		return nil
	}
	return []geometry.Geometry{
		geometry.Box(math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}),
	}
}

// background returns geometry built off the render thread.
func (d demo) background() []geometry.Geometry {
	if d.scene == "mesh" || d.points <= 0 {
		return nil
	}
	center := math.Vec3{}
	if d.scene == "both" {
		center = math.Vec3{X: 2}
	}
	return []geometry.Geometry{geometry.SpherePoints(d.points, center, 1)}
}
