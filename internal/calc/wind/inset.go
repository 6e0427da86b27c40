package wind

import "math"

// insetOffsetRatio is the fraction of e1 an upper-storey edge may sit
// back from the lower roof edge and still count as flush.
const insetOffsetRatio = 0.2

// InsetFootprint describes an upper storey set back from the edges of
// the lower block. Offsets measure how far each upper face sits in
// from the matching lower face; the height is that of the inset
// storey itself.
type InsetFootprint struct {
	NorthOffsetM float64 `json:"north_offset_m"`
	EastOffsetM  float64 `json:"east_offset_m"`
	SouthOffsetM float64 `json:"south_offset_m"`
	WestOffsetM  float64 `json:"west_offset_m"`
	HeightM      float64 `json:"height_m"`
}

// InsetResult reports, for one elevation of the upper storey, whether
// a corner sits close enough to the lower roof edge to attract the
// high corner suction, and the size of the strip it acts on.
type InsetResult struct {
	Present     bool     `json:"present"`
	Corners     []string `json:"corners,omitempty"`
	E1M         float64  `json:"e1_m"`
	StripWidthM float64  `json:"strip_width_m"`
	StripDepthM float64  `json:"strip_depth_m"`
}

func (f InsetFootprint) offset(el Elevation) float64 {
	switch el {
	case North:
		return f.NorthOffsetM
	case East:
		return f.EastOffsetM
	case South:
		return f.SouthOffsetM
	default:
		return f.WestOffsetM
	}
}

// adjacent returns the two elevations meeting the given one at the
// upper storey's corners.
func adjacent(el Elevation) [2]Elevation {
	switch el {
	case North, South:
		return [2]Elevation{East, West}
	default:
		return [2]Elevation{North, South}
	}
}

func cornerName(el, side Elevation) string {
	a, b := el, side
	if a == East || a == West {
		a, b = b, a
	}
	switch a {
	case North:
		if b == East {
			return "north-east"
		}
		return "north-west"
	default:
		if b == East {
			return "south-east"
		}
		return "south-west"
	}
}

// DetectInset checks each elevation of an inset upper storey for
// corners still governed by the lower roof edge. A face only attracts
// the corner suction when it is itself set back (its offset is
// positive) while the neighbouring face at that corner sits within
// 0.2 e1 of the lower edge; e1 = min(B1, 2 H1) with B1 the upper
// breadth across the face.
func DetectInset(f InsetFootprint, g Geometry) map[Elevation]InsetResult {
	upperNS := math.Max(g.NSDimM-f.NorthOffsetM-f.SouthOffsetM, 0)
	upperEW := math.Max(g.EWDimM-f.EastOffsetM-f.WestOffsetM, 0)

	out := make(map[Elevation]InsetResult, len(Elevations))
	for _, el := range Elevations {
		var b1, along, across float64
		switch el {
		case North, South:
			b1 = math.Max(g.EWDimM-f.NorthOffsetM-f.SouthOffsetM, 0)
			along, across = upperEW, upperNS
		default:
			b1 = math.Max(g.NSDimM-f.EastOffsetM-f.WestOffsetM, 0)
			along, across = upperNS, upperEW
		}
		e1 := math.Min(b1, 2*f.HeightM)

		res := InsetResult{E1M: e1}
		if e1 > 0 && f.offset(el) > 0 {
			for _, side := range adjacent(el) {
				if f.offset(side) < insetOffsetRatio*e1 {
					res.Corners = append(res.Corners, cornerName(el, side))
				}
			}
		}
		if len(res.Corners) > 0 {
			res.Present = true
			res.StripWidthM = math.Min(e1/5, along)
			res.StripDepthM = math.Min(e1/3, across)
		}
		out[el] = res
	}
	return out
}
