package wind

import (
	"fmt"
	"math"
)

const (
	// DefaultAirDensity is rho in kg/m3 per the recommended value.
	DefaultAirDensity = 1.25

	// turbulenceK is k_I, kept at the recommended 1.0.
	turbulenceK = 1.0

	// Shape and exponent defaults of the probability factor, NA.2.8.
	defaultProbShape    = 0.2
	defaultProbExponent = 0.5
	defaultReturnYears  = 50.0
)

// TurbulenceIntensity returns I_v(z) = k_I / (c_o ln(z/z0)) with z
// clamped to the category band.
func TurbulenceIntensity(zM float64, cat TerrainCategory, orography float64) (float64, error) {
	p, err := terrainFor(cat)
	if err != nil {
		return 0, err
	}
	if orography <= 0 {
		orography = 1.0
	}
	return turbulenceK / (orography * math.Log(p.clampHeight(zM)/p.Z0M)), nil
}

// peakFrom assembles q_p in Pa from the turbulence intensity, air
// density and mean wind speed: (1 + 7 I_v) * 0.5 * rho * v_m^2.
func peakFrom(iv, rho, vmMS float64) float64 {
	return (1 + 7*iv) * 0.5 * rho * vmMS * vmMS
}

// PeakPressure returns q_p(z) in Pa for the closed-form roughness
// route. Non-positive rho and orography fall back to the recommended
// values.
func PeakPressure(zM float64, cat TerrainCategory, basicWindMS, rho, orography float64) (float64, error) {
	if rho <= 0 {
		rho = DefaultAirDensity
	}
	if orography <= 0 {
		orography = 1.0
	}
	cr, err := RoughnessFactor(zM, cat)
	if err != nil {
		return 0, err
	}
	iv, err := TurbulenceIntensity(zM, cat, orography)
	if err != nil {
		return 0, err
	}
	vm := basicWindMS * cr * orography
	return peakFrom(iv, rho, vm), nil
}

// PeakInput is the stand-alone peak pressure request, without the
// zoning part of a full calculation.
type PeakInput struct {
	Region            Region          `json:"region"`
	Terrain           TerrainCategory `json:"terrain"`
	HeightM           float64         `json:"height_m"`
	BasicWindMS       float64         `json:"basic_wind_ms"`
	AirDensityKgM3    float64         `json:"air_density_kg_m3"`
	Orography         float64         `json:"orography"`
	DistanceSeaKM     float64         `json:"distance_sea_km"`
	DistanceTownKM    float64         `json:"distance_town_km"`
	DisplacementM     float64         `json:"displacement_m"`
	RoughnessOverride float64         `json:"roughness_override"`
}

type PeakResult struct {
	Cr    float64 `json:"c_r"`
	Iv    float64 `json:"i_v"`
	VmMS  float64 `json:"vm_ms"`
	QpPa  float64 `json:"qp_pa"`
	QpKPa float64 `json:"qp_kpa"`
}

// CalculatePeak resolves exposure and returns the peak velocity
// pressure alone. UK requests go through the contour charts exactly
// as in the full calculation.
func CalculatePeak(in PeakInput) (PeakResult, error) {
	if in.HeightM <= 0 || in.BasicWindMS <= 0 {
		return PeakResult{}, fmt.Errorf("invalid input")
	}
	if in.Region == "" {
		in.Region = RegionEU
	}
	if !ValidCategory(in.Region, in.Terrain) {
		return PeakResult{}, fmt.Errorf("%w for region %s: %q", ErrUnknownTerrain, in.Region, in.Terrain)
	}
	if in.AirDensityKgM3 <= 0 {
		in.AirDensityKgM3 = DefaultAirDensity
	}
	if in.Orography <= 0 {
		in.Orography = 1.0
	}
	cr, _, err := resolveRoughness(Input{
		Region:            in.Region,
		Terrain:           in.Terrain,
		HeightM:           in.HeightM,
		DistanceSeaKM:     in.DistanceSeaKM,
		DistanceTownKM:    in.DistanceTownKM,
		DisplacementM:     in.DisplacementM,
		RoughnessOverride: in.RoughnessOverride,
	})
	if err != nil {
		return PeakResult{}, err
	}
	iv, err := TurbulenceIntensity(in.HeightM, in.Terrain, in.Orography)
	if err != nil {
		return PeakResult{}, err
	}
	vm := in.BasicWindMS * cr * in.Orography
	qp := peakFrom(iv, in.AirDensityKgM3, vm)
	return PeakResult{Cr: cr, Iv: iv, VmMS: vm, QpPa: qp, QpKPa: qp / 1000}, nil
}

// ProbabilityFactor returns c_prob for a return period other than 50
// years. Non-positive shape, exponent or period fall back to the
// defaults, under which the factor is exactly 1.
func ProbabilityFactor(shapeK, exponentN, returnYears float64) float64 {
	if shapeK <= 0 {
		shapeK = defaultProbShape
	}
	if exponentN <= 0 {
		exponentN = defaultProbExponent
	}
	if returnYears <= 1 {
		returnYears = defaultReturnYears
	}
	p := 1.0 / returnYears
	num := 1 - shapeK*math.Log(-math.Log(1-p))
	den := 1 - shapeK*math.Log(-math.Log(0.98))
	return math.Pow(num/den, exponentN)
}
