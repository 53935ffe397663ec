// Package rendermode holds the options that decide how point clouds and
// meshes are coloured and shaded.
package rendermode

import (
	"fmt"

	"github.com/Faultbox/geoview/pkg/math"
)

// Point size bounds.
const (
	MinPointSize     float32 = 1
	MaxPointSize     float32 = 25
	PointSizeStep    float32 = 1
	DefaultPointSize float32 = 5
)

// PointColorOption selects how point colours are derived.
type PointColorOption int

const (
	// PointColorDefault uses point colours when present, otherwise maps Z
	// through the colour map.
	PointColorDefault PointColorOption = iota
	// PointColorColor uses point colours when present, otherwise the flat
	// default point colour.
	PointColorColor
	PointColorX
	PointColorY
	PointColorZ

	pointColorCount
)

var pointColorNames = [...]string{"default", "color", "x", "y", "z"}

func (o PointColorOption) String() string {
	if o < 0 || o >= pointColorCount {
		return fmt.Sprintf("PointColorOption(%d)", int(o))
	}
	return pointColorNames[o]
}

// ParsePointColorOption parses a config name.
func ParsePointColorOption(name string) (PointColorOption, error) {
	for i, n := range pointColorNames {
		if n == name {
			return PointColorOption(i), nil
		}
	}
	return 0, fmt.Errorf("rendermode: unknown point color option %q", name)
}

// MeshShadeOption selects the mesh draw path.
type MeshShadeOption int

const (
	MeshShadeVertexColor MeshShadeOption = iota
	MeshShadeFlat
	MeshShadeSmooth
	MeshShadeWireframe

	meshShadeCount
)

var meshShadeNames = [...]string{"vertex_color", "flat", "smooth", "wireframe"}

func (o MeshShadeOption) String() string {
	if o < 0 || o >= meshShadeCount {
		return fmt.Sprintf("MeshShadeOption(%d)", int(o))
	}
	return meshShadeNames[o]
}

// ParseMeshShadeOption parses a config name.
func ParseMeshShadeOption(name string) (MeshShadeOption, error) {
	for i, n := range meshShadeNames {
		if n == name {
			return MeshShadeOption(i), nil
		}
	}
	return 0, fmt.Errorf("rendermode: unknown mesh shade option %q", name)
}

// PointCloudMode is the point cloud render mode.
type PointCloudMode struct {
	PointSize    float32
	ColorOption  PointColorOption
	ShowNormal   bool
	DefaultColor math.Color
}

// MeshMode is the mesh render mode.
type MeshMode struct {
	ShadeOption  MeshShadeOption
	DefaultColor math.Color
}

// State is the complete render mode. Mutators report whether anything
// visible changed so the caller can request a redraw.
type State struct {
	Points     PointCloudMode
	Mesh       MeshMode
	Background math.Color
	LightOn    bool
	// ShowBoundingBox outlines the scene bounding box.
	ShowBoundingBox bool
}

// New returns the default render mode.
func New() *State {
	return &State{
		Points: PointCloudMode{
			PointSize:    DefaultPointSize,
			ColorOption:  PointColorDefault,
			DefaultColor: math.Black,
		},
		Mesh: MeshMode{
			ShadeOption:  MeshShadeFlat,
			DefaultColor: math.Color{R: 0.5, G: 0.5, B: 0.5},
		},
		Background: math.White,
		LightOn:    true,
	}
}

// ChangePointSize adds delta steps to the point size. A change that would
// leave [MinPointSize, MaxPointSize] is ignored without error.
func (s *State) ChangePointSize(delta float32) bool {
	size := s.Points.PointSize + delta*PointSizeStep
	if size < MinPointSize || size > MaxPointSize || delta == 0 {
		return false
	}
	s.Points.PointSize = size
	return true
}

// SetPointColorOption selects how point colours are derived.
func (s *State) SetPointColorOption(o PointColorOption) bool {
	if o < 0 || o >= pointColorCount || o == s.Points.ColorOption {
		return false
	}
	s.Points.ColorOption = o
	return true
}

// CyclePointColorOption advances to the next point colour option.
func (s *State) CyclePointColorOption() bool {
	return s.SetPointColorOption((s.Points.ColorOption + 1) % pointColorCount)
}

// SetMeshShadeOption selects the mesh draw path.
func (s *State) SetMeshShadeOption(o MeshShadeOption) bool {
	if o < 0 || o >= meshShadeCount || o == s.Mesh.ShadeOption {
		return false
	}
	s.Mesh.ShadeOption = o
	return true
}

// CycleMeshShadeOption advances to the next mesh shade option.
func (s *State) CycleMeshShadeOption() bool {
	return s.SetMeshShadeOption((s.Mesh.ShadeOption + 1) % meshShadeCount)
}

// ToggleShowNormal flips point normal display.
func (s *State) ToggleShowNormal() bool {
	s.Points.ShowNormal = !s.Points.ShowNormal
	return true
}

// ToggleLight flips mesh lighting.
func (s *State) ToggleLight() bool {
	s.LightOn = !s.LightOn
	return true
}

// ToggleBackground swaps between a white and a black background. Any
// other background becomes white.
func (s *State) ToggleBackground() bool {
	if s.Background == math.White {
		s.Background = math.Black
	} else {
		s.Background = math.White
	}
	return true
}

// ToggleBoundingBox flips the scene outline.
func (s *State) ToggleBoundingBox() bool {
	s.ShowBoundingBox = !s.ShowBoundingBox
	return true
}
