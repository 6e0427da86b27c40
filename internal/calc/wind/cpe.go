package wind

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// hdControl holds the h/d ratios the cp,e tables are published at.
// Ratios outside the band hold the end value.
var hdControl = []float64{0.25, 1.0, 5.0}

// External pressure coefficients for loaded areas over 10 m2, table
// 7.1 and its National Annex replacement. One value per control ratio.
var (
	cpeEU = map[Zone][3]float64{
		ZoneA: {-1.2, -1.2, -1.2},
		ZoneB: {-0.8, -0.8, -0.8},
		ZoneC: {-0.5, -0.5, -0.5},
		ZoneD: {0.7, 0.8, 0.9},
		ZoneE: {-0.3, -0.5, -0.7},
	}
	cpeUK = map[Zone][3]float64{
		ZoneA: {-1.2, -1.2, -1.2},
		ZoneB: {-0.8, -0.8, -0.8},
		ZoneC: {-0.5, -0.5, -0.5},
		ZoneD: {0.8, 0.8, 0.8},
		ZoneE: {-0.5, -0.5, -0.7},
	}
)

// RegionTable bundles the national choices that differ between the
// recommended values and the UK National Annex.
type RegionTable struct {
	Region     Region
	Cpe        map[Zone][3]float64
	Funnelling FunnellingConfig
}

// TableForRegion returns the national table set. Unknown regions get
// the recommended values.
func TableForRegion(r Region) RegionTable {
	if r == RegionUK {
		return RegionTable{
			Region:     RegionUK,
			Cpe:        cpeUK,
			Funnelling: FunnellingConfig{Model: FunnellingTriangular, InclusiveBounds: true},
		}
	}
	return RegionTable{
		Region:     RegionEU,
		Cpe:        cpeEU,
		Funnelling: FunnellingConfig{Model: FunnellingTriangular},
	}
}

var cpePredictors = buildCpePredictors()

func buildCpePredictors() map[Region]map[Zone]interp.PiecewiseLinear {
	out := map[Region]map[Zone]interp.PiecewiseLinear{}
	for region, table := range map[Region]map[Zone][3]float64{RegionEU: cpeEU, RegionUK: cpeUK} {
		out[region] = map[Zone]interp.PiecewiseLinear{}
		for zone, vals := range table {
			var pl interp.PiecewiseLinear
			if err := pl.Fit(hdControl, []float64{vals[0], vals[1], vals[2]}); err != nil {
				panic(fmt.Sprintf("wind: bad cpe row %s/%s: %v", region, zone, err))
			}
			out[region][zone] = pl
		}
	}
	return out
}

// CpeTable returns cp,e for all five zones at the given h/d ratio,
// interpolated between the control ratios and clamped beyond them.
// Zones absent from a particular elevation are simply not looked up
// by the caller; the table itself is always complete.
func CpeTable(hd float64, region Region) map[Zone]float64 {
	preds, ok := cpePredictors[region]
	if !ok {
		preds = cpePredictors[RegionEU]
	}
	out := make(map[Zone]float64, len(preds))
	for zone, pl := range preds {
		out[zone] = pl.Predict(hd)
	}
	return out
}
