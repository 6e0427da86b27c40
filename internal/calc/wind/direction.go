package wind

import "math"

// Directional factors c_dir at 30 degree steps of compass bearing,
// table NA.1. Index 0 holds due north, rising clockwise.
var directionFactors = [12]float64{
	0.78, 0.73, 0.73, 0.74, 0.73, 0.80,
	0.85, 0.93, 1.00, 0.99, 0.91, 0.82,
}

var elevationBearings = map[Elevation]float64{
	North: 0,
	East:  90,
	South: 180,
	West:  270,
}

// DirectionFactors returns c_dir per elevation for a building whose
// north face is rotated clockwise from true north by rotationDeg.
// With the factor disabled every elevation gets 1.0, the conservative
// omnidirectional value.
func DirectionFactors(rotationDeg float64, enabled bool) map[Elevation]float64 {
	out := make(map[Elevation]float64, len(Elevations))
	for _, el := range Elevations {
		if !enabled {
			out[el] = 1.0
			continue
		}
		out[el] = directionFactors[bearingIndex(elevationBearings[el]+rotationDeg)]
	}
	return out
}

// bearingIndex snaps a bearing to the nearest tabulated direction.
func bearingIndex(deg float64) int {
	b := math.Mod(deg, 360)
	if b < 0 {
		b += 360
	}
	return int(math.Round(b/30)) % 12
}
