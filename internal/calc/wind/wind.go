// Package wind computes wind actions on rectangular buildings to
// BS EN 1991-1-4 with the UK National Annex. It covers terrain
// roughness, peak velocity pressure, suction zone layout on the
// side elevations, external pressure coefficients, funnelling
// between neighbouring buildings, inset storey checks, directional
// factors and the net pressure summary.
package wind

// Region selects which set of national tables the calculation uses.
type Region string

const (
	RegionEU Region = "EU" // Eurocode recommended values
	RegionUK Region = "UK" // UK National Annex
)

// Elevation names a face of the building by the compass direction it looks at.
type Elevation string

const (
	North Elevation = "North"
	East  Elevation = "East"
	South Elevation = "South"
	West  Elevation = "West"
)

// Elevations lists the faces in reporting order.
var Elevations = []Elevation{North, East, South, West}

// Zone is a pressure zone label from figure 7.5 of the code.
// A, B and C are the side suction zones from the windward edge
// backwards, D is the windward face, E is the leeward face.
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
	ZoneD Zone = "D"
	ZoneE Zone = "E"
)

// Geometry is the rectangular footprint and height of the building.
// NS is the plan dimension along the north-south axis, EW along
// east-west.
type Geometry struct {
	NSDimM  float64 `json:"ns_dim_m"`
	EWDimM  float64 `json:"ew_dim_m"`
	HeightM float64 `json:"height_m"`
}

// FaceDims returns the in-wind depth d and the crosswind breadth b
// for wind blowing onto the given elevation. Wind onto North or
// South travels along the NS axis, so d is the NS dimension and b
// the EW dimension; East and West swap them. Zone layout, h/d
// interpolation, funnelling and inset checks all take their
// dimensions from here, so a swap in this mapping corrupts every
// downstream number.
func (g Geometry) FaceDims(el Elevation) (widthM, crosswindM float64) {
	switch el {
	case North, South:
		return g.NSDimM, g.EWDimM
	default:
		return g.EWDimM, g.NSDimM
	}
}
