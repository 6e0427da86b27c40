package wind

import "math"

// FunnellingModel selects how the gap correction between the quarter
// and full scaling length is shaped.
type FunnellingModel string

const (
	// FunnellingTriangular ramps each side zone towards its tabulated
	// peak value, worst at a gap of e/2 and vanishing at e/4 and e.
	FunnellingTriangular FunnellingModel = "triangular"

	// FunnellingLinearShift is the older flat offset of +-1.2 scaled
	// linearly across the band.
	//
	// Deprecated: kept so stored runs from earlier releases replay
	// with their original numbers. New callers get the triangular
	// model by default.
	FunnellingLinearShift FunnellingModel = "linear-shift"
)

// FunnellingConfig carries the per-region funnelling conventions.
// InclusiveBounds widens the active band from (e/4, e) to [e/4, e];
// both interpretations appear in practice, so the choice travels as
// data rather than a code fork.
type FunnellingConfig struct {
	Model           FunnellingModel `json:"model"`
	InclusiveBounds bool            `json:"inclusive_bounds"`
}

// funnellingPeaks holds the coefficient each side zone reaches when
// the gap equals e/2.
var funnellingPeaks = map[Zone]float64{
	ZoneA: -1.6,
	ZoneB: -0.9,
	ZoneC: -0.9,
}

const linearShiftSpan = 1.2

// ApplyFunnelling corrects the side-zone coefficients for a
// neighbouring building a gap away across the street. It returns the
// corrected table and, per affected zone, the percentage increase in
// suction magnitude. Outside the active band the input table comes
// back unchanged.
func ApplyFunnelling(base map[Zone]float64, gapM, e float64, cfg FunnellingConfig) (map[Zone]float64, map[Zone]float64) {
	out := make(map[Zone]float64, len(base))
	for z, v := range base {
		out[z] = v
	}
	increase := map[Zone]float64{}
	if e <= 0 || !funnellingActive(gapM, e, cfg.InclusiveBounds) {
		return out, increase
	}

	switch cfg.Model {
	case FunnellingLinearShift:
		f := (e - gapM) / (e - e/4)
		for z, v := range base {
			switch z {
			case ZoneA, ZoneB, ZoneC, ZoneE:
				out[z] = v - linearShiftSpan*f
			case ZoneD:
				out[z] = v + linearShiftSpan*f
			}
		}
	default:
		f := triangularFactor(gapM, e)
		for z, peak := range funnellingPeaks {
			v, ok := base[z]
			if !ok {
				continue
			}
			out[z] = v + f*(peak-v)
		}
	}

	for z, v := range out {
		b := base[z]
		if math.Abs(v) > math.Abs(b) && b != 0 {
			increase[z] = (math.Abs(v) - math.Abs(b)) / math.Abs(b) * 100
		}
	}
	return out, increase
}

func funnellingActive(gapM, e float64, inclusive bool) bool {
	if inclusive {
		return gapM >= e/4 && gapM <= e
	}
	return gapM > e/4 && gapM < e
}

// triangularFactor rises linearly from 0 at e/4 to 1 at e/2, then
// falls back to 0 at e.
func triangularFactor(gapM, e float64) float64 {
	if gapM <= e/2 {
		return (gapM - e/4) / (e / 4)
	}
	return (e - gapM) / (e / 2)
}
