package wind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZonesForElevation(t *testing.T) {
	t.Run("20 m face with e equal to depth", func(t *testing.T) {
		// NS 20 x EW 40 at z=10: e = min(40, 20) = 20 on the north
		// and south faces, giving A-B-A with 4 m ends.
		segs := ZonesForElevation(20, 10, 40)
		require.Len(t, segs, 3)
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 0, EndM: 4}, segs[0])
		assert.Equal(t, ZoneSegment{Zone: ZoneB, StartM: 4, EndM: 16}, segs[1])
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 16, EndM: 20}, segs[2])
	})

	t.Run("40 m face collapses the empty C", func(t *testing.T) {
		// Same building, east and west faces: d = 40 = 2e, so C has
		// no extent and the guard hands back A-B-A.
		segs := ZonesForElevation(40, 10, 20)
		require.Len(t, segs, 3)
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 0, EndM: 4}, segs[0])
		assert.Equal(t, ZoneSegment{Zone: ZoneB, StartM: 4, EndM: 36}, segs[1])
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 36, EndM: 40}, segs[2])
	})

	t.Run("deep face develops all five segments", func(t *testing.T) {
		segs := ZonesForElevation(100, 5, 30)
		require.Len(t, segs, 5)
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 0, EndM: 2}, segs[0])
		assert.Equal(t, ZoneSegment{Zone: ZoneB, StartM: 2, EndM: 10}, segs[1])
		assert.Equal(t, ZoneSegment{Zone: ZoneC, StartM: 10, EndM: 90}, segs[2])
		assert.Equal(t, ZoneSegment{Zone: ZoneB, StartM: 90, EndM: 98}, segs[3])
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 98, EndM: 100}, segs[4])
	})

	t.Run("narrow face is all zone A", func(t *testing.T) {
		segs := ZonesForElevation(4, 10, 12)
		require.Len(t, segs, 1)
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 0, EndM: 4}, segs[0])
	})

	t.Run("e at least five depths is all zone A", func(t *testing.T) {
		segs := ZonesForElevation(2, 10, 30)
		require.Len(t, segs, 1)
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 0, EndM: 2}, segs[0])
	})

	t.Run("degenerate depth collapses instead of failing", func(t *testing.T) {
		segs := ZonesForElevation(0, 10, 20)
		require.Len(t, segs, 1)
		assert.Equal(t, ZoneA, segs[0].Zone)
		assert.Equal(t, 0.0, segs[0].EndM)

		segs = ZonesForElevation(-3, 10, 20)
		require.Len(t, segs, 1)
		assert.Equal(t, 0.0, segs[0].EndM)

		segs = ZonesForElevation(10, 0, 20)
		require.Len(t, segs, 1)
		assert.Equal(t, ZoneSegment{Zone: ZoneA, StartM: 0, EndM: 10}, segs[0])
	})

	t.Run("segments tile the width", func(t *testing.T) {
		widths := []float64{0.5, 2, 7.3, 20, 40, 66.6, 120}
		heights := []float64{1, 4.2, 10, 33}
		crosswinds := []float64{1.5, 12, 20, 55, 90}
		for _, d := range widths {
			for _, h := range heights {
				for _, b := range crosswinds {
					segs := ZonesForElevation(d, h, b)
					require.NotEmpty(t, segs)
					assert.Equal(t, 0.0, segs[0].StartM)
					assert.InDelta(t, d, segs[len(segs)-1].EndM, 1e-9)
					for i, s := range segs {
						assert.Contains(t, []Zone{ZoneA, ZoneB, ZoneC}, s.Zone)
						assert.LessOrEqual(t, s.StartM, s.EndM)
						if i > 0 {
							assert.Equal(t, segs[i-1].EndM, s.StartM)
						}
					}
				}
			}
		}
	})
}

func TestPresentZones(t *testing.T) {
	assert.Equal(t, []Zone{ZoneA, ZoneB, ZoneC}, PresentZones(ZonesForElevation(100, 5, 30)))
	assert.Equal(t, []Zone{ZoneA, ZoneB}, PresentZones(ZonesForElevation(20, 10, 40)))
	assert.Equal(t, []Zone{ZoneA}, PresentZones(ZonesForElevation(2, 10, 30)))
}
