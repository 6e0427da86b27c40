package wind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurbulenceIntensity(t *testing.T) {
	iv, err := TurbulenceIntensity(10, TerrainOpen, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.18873916581775485, iv, 1e-12)

	// Orography divides the intensity.
	iv2, err := TurbulenceIntensity(10, TerrainOpen, 1.1)
	require.NoError(t, err)
	assert.InDelta(t, iv/1.1, iv2, 1e-12)

	_, err = TurbulenceIntensity(10, "bogus", 1.0)
	assert.True(t, errors.Is(err, ErrUnknownTerrain))
}

func TestPeakPressure(t *testing.T) {
	t.Run("category II reference case", func(t *testing.T) {
		qp, err := PeakPressure(10, TerrainOpen, 25, 0, 0)
		require.NoError(t, err)
		assert.InDelta(t, 918.8632907102646, qp, 1e-9)
	})

	t.Run("density scales linearly", func(t *testing.T) {
		base, err := PeakPressure(10, TerrainOpen, 25, 1.25, 1)
		require.NoError(t, err)
		heavy, err := PeakPressure(10, TerrainOpen, 25, 2.5, 1)
		require.NoError(t, err)
		assert.InDelta(t, 2*base, heavy, 1e-9)
	})

	t.Run("invalid terrain propagates", func(t *testing.T) {
		_, err := PeakPressure(10, "XX", 25, 0, 0)
		assert.True(t, errors.Is(err, ErrUnknownTerrain))
	})
}

func TestProbabilityFactor(t *testing.T) {
	t.Run("defaults give exactly one", func(t *testing.T) {
		assert.Equal(t, 1.0, ProbabilityFactor(0, 0, 0))
		assert.Equal(t, 1.0, ProbabilityFactor(0.2, 0.5, 50))
	})

	t.Run("longer return period raises the factor", func(t *testing.T) {
		assert.InDelta(t, 1.0384765480213738, ProbabilityFactor(0.2, 0.5, 100), 1e-12)
	})

	t.Run("shorter return period lowers it", func(t *testing.T) {
		assert.InDelta(t, 0.9024802495531715, ProbabilityFactor(0.2, 0.5, 10), 1e-12)
	})
}

func TestCalculatePeak(t *testing.T) {
	t.Run("EU closed form", func(t *testing.T) {
		res, err := CalculatePeak(PeakInput{Terrain: TerrainOpen, HeightM: 10, BasicWindMS: 25})
		require.NoError(t, err)
		assert.InDelta(t, 1.0066802996441269, res.Cr, 1e-12)
		assert.InDelta(t, 25.16700749110317, res.VmMS, 1e-9)
		assert.InDelta(t, 0.9188632907102646, res.QpKPa, 1e-12)
	})

	t.Run("UK town chart route", func(t *testing.T) {
		res, err := CalculatePeak(PeakInput{
			Region:         RegionUK,
			Terrain:        TerrainUKTown,
			HeightM:        10,
			BasicWindMS:    25,
			DistanceSeaKM:  3,
			DistanceTownKM: 3,
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.9576, res.Cr, 1e-12)
		assert.InDelta(t, 0.2851799483374529, res.Iv, 1e-12)
		assert.InDelta(t, 1.0732669440455156, res.QpKPa, 1e-9)
	})

	t.Run("off-chart site needs the override", func(t *testing.T) {
		in := PeakInput{
			Region:        RegionUK,
			Terrain:       TerrainUKCountry,
			HeightM:       10,
			BasicWindMS:   25,
			DistanceSeaKM: 300,
		}
		_, err := CalculatePeak(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrExposureRange))

		in.RoughnessOverride = 1.05
		res, err := CalculatePeak(in)
		require.NoError(t, err)
		assert.Equal(t, 1.05, res.Cr)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := CalculatePeak(PeakInput{})
		assert.Error(t, err)
	})

	t.Run("rejects cross-region terrain", func(t *testing.T) {
		_, err := CalculatePeak(PeakInput{Region: RegionUK, Terrain: TerrainOpen, HeightM: 10, BasicWindMS: 25})
		assert.True(t, errors.Is(err, ErrUnknownTerrain))
	})
}
