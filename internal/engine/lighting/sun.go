package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/geoview/pkg/math"
)

// Direction converts longitude/latitude angles in degrees to a unit vector.
// Longitude rotates around the Y axis, latitude is elevation above the XZ
// plane.
func Direction(longitude, latitude float32) math.Vec3 {
	lonSin, lonCos := math32.Sincos(math.Radians(longitude))
	latSin, latCos := math32.Sincos(math.Radians(latitude))
	return math.Vec3{
		X: latCos * lonSin,
		Y: latSin,
		Z: latCos * lonCos,
	}
}
