package wind

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownTerrain is returned when a terrain code does not exist in
// the selected region's table.
var ErrUnknownTerrain = errors.New("unknown terrain category")

// TerrainCategory is a roughness category code. EU codes follow table
// 4.1 of the base document ("0" to "IV"), UK codes the three National
// Annex categories.
type TerrainCategory string

const (
	TerrainSea     TerrainCategory = "0"
	TerrainLakes   TerrainCategory = "I"
	TerrainOpen    TerrainCategory = "II"
	TerrainSuburbs TerrainCategory = "III"
	TerrainUrban   TerrainCategory = "IV"

	TerrainUKSea     TerrainCategory = "Sea"
	TerrainUKCountry TerrainCategory = "Country"
	TerrainUKTown    TerrainCategory = "Town"
)

const (
	z0RefM = 0.05  // roughness length of category II, the kr reference
	zMaxM  = 200.0 // upper validity limit of the profile, m
)

type terrainParam struct {
	Z0M   float64
	ZMinM float64
}

var terrainParams = map[TerrainCategory]terrainParam{
	TerrainSea:     {0.003, 1},
	TerrainLakes:   {0.01, 1},
	TerrainOpen:    {0.05, 2},
	TerrainSuburbs: {0.3, 5},
	TerrainUrban:   {1.0, 10},

	TerrainUKSea:     {0.003, 1},
	TerrainUKCountry: {0.05, 2},
	TerrainUKTown:    {0.3, 5},
}

var regionCategories = map[Region][]TerrainCategory{
	RegionEU: {TerrainSea, TerrainLakes, TerrainOpen, TerrainSuburbs, TerrainUrban},
	RegionUK: {TerrainUKSea, TerrainUKCountry, TerrainUKTown},
}

func terrainFor(cat TerrainCategory) (terrainParam, error) {
	p, ok := terrainParams[cat]
	if !ok {
		return terrainParam{}, fmt.Errorf("%w: %q", ErrUnknownTerrain, cat)
	}
	return p, nil
}

// ValidCategory reports whether the terrain code belongs to the region.
func ValidCategory(region Region, cat TerrainCategory) bool {
	for _, c := range regionCategories[region] {
		if c == cat {
			return true
		}
	}
	return false
}

// clampHeight limits z to the band the log profile is defined on.
func (p terrainParam) clampHeight(zM float64) float64 {
	if zM < p.ZMinM {
		return p.ZMinM
	}
	if zM > zMaxM {
		return zMaxM
	}
	return zM
}

// RoughnessFactor returns c_r(z) = k_r ln(z/z0) for the category,
// with z clamped to [z_min, 200 m]. k_r = 0.19 (z0/z0,II)^0.07.
func RoughnessFactor(zM float64, cat TerrainCategory) (float64, error) {
	p, err := terrainFor(cat)
	if err != nil {
		return 0, err
	}
	kr := 0.19 * math.Pow(p.Z0M/z0RefM, 0.07)
	return kr * math.Log(p.clampHeight(zM)/p.Z0M), nil
}

// TerrainInfo describes one terrain category for reference listings.
type TerrainInfo struct {
	Code        TerrainCategory `json:"code"`
	Region      Region          `json:"region"`
	Description string          `json:"description"`
	Z0M         float64         `json:"z0_m"`
	ZMinM       float64         `json:"z_min_m"`
}

var terrainDescriptions = map[TerrainCategory]string{
	TerrainSea:       "Open sea or coastal area exposed to open sea",
	TerrainLakes:     "Lakes or flat terrain with negligible vegetation",
	TerrainOpen:      "Open terrain with low vegetation and isolated obstacles",
	TerrainSuburbs:   "Regular cover of vegetation or buildings (villages, suburbs)",
	TerrainUrban:     "Area with at least 15% built cover above 15 m",
	TerrainUKSea:     "Sea or coastal exposure in the wind direction",
	TerrainUKCountry: "All terrain upwind that is not sea or town",
	TerrainUKTown:    "Built-up terrain with average obstruction height above 5 m",
}

// TerrainCatalogue lists every supported category, EU first, in table order.
func TerrainCatalogue() []TerrainInfo {
	var out []TerrainInfo
	for _, region := range []Region{RegionEU, RegionUK} {
		for _, cat := range regionCategories[region] {
			p := terrainParams[cat]
			out = append(out, TerrainInfo{
				Code:        cat,
				Region:      region,
				Description: terrainDescriptions[cat],
				Z0M:         p.Z0M,
				ZMinM:       p.ZMinM,
			})
		}
	}
	return out
}

// TerrainByCode looks a category up by its code across both regions.
func TerrainByCode(code string) (TerrainInfo, error) {
	for _, info := range TerrainCatalogue() {
		if string(info.Code) == code {
			return info, nil
		}
	}
	return TerrainInfo{}, fmt.Errorf("%w: %q", ErrUnknownTerrain, code)
}
