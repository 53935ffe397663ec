package math

// Color is a linear RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Common colours.
var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
	Gray  = Color{0.5, 0.5, 0.5}
)

// Clamp returns the colour with every component clamped to [0, 1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
