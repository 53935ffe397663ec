// Package colormap maps scalars in [0, 1] to colours.
package colormap

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/geoview/pkg/math"
)

// Map converts a normalized scalar to a colour. Inputs outside [0, 1] are
// clamped.
type Map interface {
	Lookup(v float32) math.Color
}

// Func adapts a plain function to the Map interface.
type Func func(v float32) math.Color

// Lookup calls f with v clamped to [0, 1].
func (f Func) Lookup(v float32) math.Color {
	return f(clamp(v))
}

var (
	// Gray ramps from black to white.
	Gray Map = Func(func(v float32) math.Color {
		return math.Color{R: v, G: v, B: v}
	})

	// Jet is the classic blue-cyan-yellow-red ramp.
	Jet Map = Func(func(v float32) math.Color {
		return math.Color{
			R: jetBase(v*2 - 1.5),
			G: jetBase(v*2 - 1),
			B: jetBase(v*2 - 0.5),
		}
	})

	// Summer ramps from green to yellow.
	Summer Map = Func(func(v float32) math.Color {
		return math.Color{R: v, G: 0.5 + 0.5*v, B: 0.4}
	})

	// Winter ramps from blue to green.
	Winter Map = Func(func(v float32) math.Color {
		return math.Color{R: 0, G: v, B: 1 - 0.5*v}
	})
)

var byName = map[string]Map{
	"gray":   Gray,
	"jet":    Jet,
	"summer": Summer,
	"winter": Winter,
}

// ByName returns a registered colour map.
func ByName(name string) (Map, error) {
	m, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("colormap: unknown map %q (have %v)", name, Names())
	}
	return m, nil
}

// Names lists the registered colour maps in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// jetBase is the piecewise-linear hat used by each Jet channel.
func jetBase(v float32) float32 {
	switch {
	case v <= -0.75:
		return 0
	case v <= -0.25:
		return interpolate(v, 0, -0.75, 1, -0.25)
	case v <= 0.25:
		return 1
	case v <= 0.75:
		return interpolate(v, 1, 0.25, 0, 0.75)
	default:
		return 0
	}
}

func interpolate(v, y0, x0, y1, x1 float32) float32 {
	return (v-x0)*(y1-y0)/(x1-x0) + y0
}

func clamp(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(0, math32.Min(1, v))
}
