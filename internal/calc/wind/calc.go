package wind

import (
	"errors"
	"fmt"
	"math"
)

// ErrExposureRange is returned when a UK site lies outside the
// digitised contour charts and no manual roughness override was
// supplied.
var ErrExposureRange = errors.New("site outside exposure chart range")

// Input is one complete calculation request. Optional numeric fields
// left at zero take the recommended defaults.
type Input struct {
	Region  Region          `json:"region"`
	Terrain TerrainCategory `json:"terrain"`

	NSDimM  float64 `json:"ns_dim_m"`
	EWDimM  float64 `json:"ew_dim_m"`
	HeightM float64 `json:"height_m"`

	BasicWindMS    float64 `json:"basic_wind_ms"`
	AirDensityKgM3 float64 `json:"air_density_kg_m3"`
	Orography      float64 `json:"orography"`

	// UK exposure inputs. Displacement height is subtracted from z
	// before the chart lookups; the override replaces the roughness
	// factor when the site falls off the charts.
	DistanceSeaKM     float64 `json:"distance_sea_km"`
	DistanceTownKM    float64 `json:"distance_town_km"`
	DisplacementM     float64 `json:"displacement_m"`
	RoughnessOverride float64 `json:"roughness_override"`

	RotationDeg        float64 `json:"rotation_deg"`
	UseDirectionFactor bool    `json:"use_direction_factor"`

	ConsiderFunnelling bool            `json:"consider_funnelling"`
	GapNorthM          float64         `json:"gap_north_m"`
	GapEastM           float64         `json:"gap_east_m"`
	GapSouthM          float64         `json:"gap_south_m"`
	GapWestM           float64         `json:"gap_west_m"`
	FunnellingModel    FunnellingModel `json:"funnelling_model,omitempty"`

	InsetEnabled bool           `json:"inset_enabled"`
	Inset        InsetFootprint `json:"inset"`

	UseCustomFactors bool    `json:"use_custom_factors"`
	ProbShapeK       float64 `json:"prob_shape_k"`
	ProbExponentN    float64 `json:"prob_exponent_n"`
	ReturnYears      float64 `json:"return_years"`
}

func (in Input) gap(el Elevation) float64 {
	switch el {
	case North:
		return in.GapNorthM
	case East:
		return in.GapEastM
	case South:
		return in.GapSouthM
	default:
		return in.GapWestM
	}
}

// ElevationResult carries the per-face intermediate values.
type ElevationResult struct {
	WidthM        float64          `json:"width_m"`
	CrosswindM    float64          `json:"crosswind_m"`
	HDRatio       float64          `json:"h_d_ratio"`
	EM            float64          `json:"e_m"`
	Zones         []ZoneSegment    `json:"zones"`
	Cpe           map[Zone]float64 `json:"cp_e"`
	FunnellingPct map[Zone]float64 `json:"funnelling_increase_pct,omitempty"`
	GapM          float64          `json:"gap_m"`
	Cdir          float64          `json:"c_dir"`
	Inset         InsetResult      `json:"inset"`
}

type Result struct {
	Region     Region                        `json:"region"`
	Terrain    TerrainCategory               `json:"terrain"`
	CProb      float64                       `json:"c_prob"`
	Cr         float64                       `json:"c_r"`
	Iv         float64                       `json:"i_v"`
	VmMS       float64                       `json:"vm_ms"`
	QpKPa      float64                       `json:"qp_kpa"`
	Elevations map[Elevation]ElevationResult `json:"elevations"`
	Summary    Summary                       `json:"summary"`
	Notes      string                        `json:"notes"`
}

// Calculate runs the full chain: exposure, peak pressure, zone
// layout, coefficients, funnelling, inset detection, directional
// factors and the net pressure summary.
func Calculate(in Input) (Result, error) {
	if in.NSDimM <= 0 || in.EWDimM <= 0 || in.HeightM <= 0 {
		return Result{}, fmt.Errorf("invalid building dimensions")
	}
	if in.BasicWindMS <= 0 {
		return Result{}, fmt.Errorf("invalid basic wind speed")
	}
	if in.Region == "" {
		in.Region = RegionEU
	}
	if !ValidCategory(in.Region, in.Terrain) {
		return Result{}, fmt.Errorf("%w for region %s: %q", ErrUnknownTerrain, in.Region, in.Terrain)
	}
	if in.AirDensityKgM3 <= 0 {
		in.AirDensityKgM3 = DefaultAirDensity
	}
	if in.Orography <= 0 {
		in.Orography = 1.0
	}

	cprob := 1.0
	if in.UseCustomFactors {
		cprob = ProbabilityFactor(in.ProbShapeK, in.ProbExponentN, in.ReturnYears)
	}
	vb := in.BasicWindMS * cprob

	notes := "Wind actions to BS EN 1991-1-4 recommended values."
	if in.Region == RegionUK {
		notes = "Wind actions to BS EN 1991-1-4 with the UK National Annex."
	}

	cr, overridden, err := resolveRoughness(in)
	if err != nil {
		return Result{}, err
	}
	if overridden {
		notes += " Roughness factor taken from the manual override."
	}

	iv, err := TurbulenceIntensity(in.HeightM, in.Terrain, in.Orography)
	if err != nil {
		return Result{}, err
	}
	vm := vb * cr * in.Orography
	qpKPa := peakFrom(iv, in.AirDensityKgM3, vm) / 1000

	geom := Geometry{NSDimM: in.NSDimM, EWDimM: in.EWDimM, HeightM: in.HeightM}
	table := TableForRegion(in.Region)
	funCfg := table.Funnelling
	if in.FunnellingModel != "" {
		funCfg.Model = in.FunnellingModel
	}

	inset := map[Elevation]InsetResult{}
	if in.InsetEnabled {
		inset = DetectInset(in.Inset, geom)
	}
	cdir := DirectionFactors(in.RotationDeg, in.UseDirectionFactor)

	elevations := make(map[Elevation]ElevationResult, len(Elevations))
	cpeByEl := make(map[Elevation]map[Zone]float64, len(Elevations))
	zonesByEl := make(map[Elevation][]Zone, len(Elevations))
	for _, el := range Elevations {
		width, crosswind := geom.FaceDims(el)
		segs := ZonesForElevation(width, in.HeightM, crosswind)
		e := math.Min(crosswind, 2*in.HeightM)
		cpe := CpeTable(in.HeightM/width, in.Region)
		var pct map[Zone]float64
		if in.ConsiderFunnelling && in.gap(el) > 0 {
			cpe, pct = ApplyFunnelling(cpe, in.gap(el), e, funCfg)
		}
		elevations[el] = ElevationResult{
			WidthM:        width,
			CrosswindM:    crosswind,
			HDRatio:       in.HeightM / width,
			EM:            e,
			Zones:         segs,
			Cpe:           cpe,
			FunnellingPct: pct,
			GapM:          in.gap(el),
			Cdir:          cdir[el],
			Inset:         inset[el],
		}
		cpeByEl[el] = cpe
		zonesByEl[el] = PresentZones(segs)
	}

	summary := Summarize(SummaryInput{
		QpKPa:     qpKPa,
		Cpe:       cpeByEl,
		Zones:     zonesByEl,
		Inset:     inset,
		Cdir:      cdir,
		Funnelled: in.ConsiderFunnelling,
	})

	return Result{
		Region:     in.Region,
		Terrain:    in.Terrain,
		CProb:      cprob,
		Cr:         cr,
		Iv:         iv,
		VmMS:       vm,
		QpKPa:      qpKPa,
		Elevations: elevations,
		Summary:    summary,
		Notes:      notes,
	}, nil
}

// resolveRoughness picks the closed-form or chart route for c_r. The
// second return reports that the manual override was used.
func resolveRoughness(in Input) (float64, bool, error) {
	if in.Region != RegionUK {
		cr, err := RoughnessFactor(in.HeightM, in.Terrain)
		return cr, false, err
	}

	zEff := in.HeightM - in.DisplacementM
	cr, ok := RoughnessFactorUK(zEff, in.DistanceSeaKM)
	if ok && in.Terrain == TerrainUKTown {
		var tc float64
		tc, ok = TownCorrection(zEff, in.DistanceTownKM)
		cr *= tc
	}
	if !ok {
		if in.RoughnessOverride > 0 {
			return in.RoughnessOverride, true, nil
		}
		return 0, false, fmt.Errorf("%w: z_eff %.1f m, sea %.1f km, town %.1f km",
			ErrExposureRange, zEff, in.DistanceSeaKM, in.DistanceTownKM)
	}
	return cr, false, nil
}
