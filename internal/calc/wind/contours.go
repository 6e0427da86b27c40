package wind

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Digitised exposure charts from the UK National Annex. Rows are
// effective heights in metres, columns are upwind distances in km.
// The sea chart gives the roughness exposure factor for sites in
// Country (and Sea) terrain; the town chart gives the multiplier
// applied on top of it for sites inside towns.
var (
	contourHeightsM = []float64{2, 5, 10, 20, 30, 50, 100, 200}

	seaDistancesKM = []float64{0.1, 1, 3, 10, 30, 100}
	seaContour     = [][]float64{
		{1.01, 0.91, 0.86, 0.81, 0.76, 0.70},
		{1.16, 1.06, 1.02, 0.97, 0.92, 0.87},
		{1.27, 1.18, 1.14, 1.09, 1.05, 1.01},
		{1.37, 1.30, 1.26, 1.22, 1.18, 1.14},
		{1.44, 1.36, 1.33, 1.29, 1.25, 1.22},
		{1.52, 1.45, 1.42, 1.38, 1.35, 1.31},
		{1.63, 1.56, 1.54, 1.50, 1.48, 1.44},
		{1.73, 1.68, 1.66, 1.63, 1.60, 1.58},
	}

	townDistancesKM = []float64{0.1, 0.3, 1, 3, 10, 20}
	townContour     = [][]float64{
		{1.00, 0.94, 0.87, 0.80, 0.73, 0.69},
		{1.00, 0.94, 0.87, 0.80, 0.73, 0.69},
		{1.00, 0.95, 0.89, 0.84, 0.78, 0.75},
		{1.00, 0.96, 0.91, 0.87, 0.82, 0.79},
		{1.00, 0.96, 0.92, 0.88, 0.84, 0.82},
		{1.00, 0.97, 0.93, 0.90, 0.86, 0.84},
		{1.00, 0.97, 0.94, 0.91, 0.88, 0.87},
		{1.00, 0.98, 0.95, 0.93, 0.90, 0.89},
	}
)

// contourChart interpolates a digitised chart. Distance is
// interpolated piecewise-linearly on a log axis within each height
// row, then height between the bracketing rows, also on a log axis.
// The fits are built once at start-up; lookups never extrapolate.
type contourChart struct {
	heightsM    []float64
	distancesKM []float64
	logDist     []float64
	rows        []interp.PiecewiseLinear
}

func newContourChart(heightsM, distancesKM []float64, values [][]float64) *contourChart {
	c := &contourChart{heightsM: heightsM, distancesKM: distancesKM}
	c.logDist = make([]float64, len(distancesKM))
	for i, d := range distancesKM {
		c.logDist[i] = math.Log10(d)
	}
	c.rows = make([]interp.PiecewiseLinear, len(heightsM))
	for i, row := range values {
		if err := c.rows[i].Fit(c.logDist, row); err != nil {
			panic(fmt.Sprintf("wind: bad contour row %d: %v", i, err))
		}
	}
	return c
}

var (
	seaChart  = newContourChart(contourHeightsM, seaDistancesKM, seaContour)
	townChart = newContourChart(contourHeightsM, townDistancesKM, townContour)
)

func (c *contourChart) lookup(zM, distKM float64) (float64, bool) {
	nd := len(c.distancesKM)
	nh := len(c.heightsM)
	if distKM < c.distancesKM[0] || distKM > c.distancesKM[nd-1] {
		return 0, false
	}
	if zM < c.heightsM[0] || zM > c.heightsM[nh-1] {
		return 0, false
	}
	ld := math.Log10(distKM)

	i := 0
	for i < nh-2 && zM > c.heightsM[i+1] {
		i++
	}
	lo := c.rows[i].Predict(ld)
	if zM == c.heightsM[i] {
		return lo, true
	}
	hi := c.rows[i+1].Predict(ld)
	t := math.Log10(zM/c.heightsM[i]) / math.Log10(c.heightsM[i+1]/c.heightsM[i])
	return lo + t*(hi-lo), true
}

// RoughnessFactorUK reads the sea chart for the roughness factor at
// effective height z and the given upwind distance to the sea. The
// second return is false when the point lies off the chart.
func RoughnessFactorUK(zM, distSeaKM float64) (float64, bool) {
	return seaChart.lookup(zM, distSeaKM)
}

// TownCorrection reads the town chart for the multiplier applied to
// the sea-chart value when the site sits inside town terrain.
func TownCorrection(zM, distTownKM float64) (float64, bool) {
	return townChart.lookup(zM, distTownKM)
}
