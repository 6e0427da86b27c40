package wind

import "math"

// ZoneSegment is one run of a suction zone along a side elevation,
// measured from the windward edge.
type ZoneSegment struct {
	Zone   Zone    `json:"zone"`
	StartM float64 `json:"start_m"`
	EndM   float64 `json:"end_m"`
}

// ZonesForElevation splits a side elevation into the A/B/C suction
// zones of figure 7.5, mirrored so either wind direction along the
// face is enveloped. width is the in-wind depth d of the face the
// wind travels along, crosswind the breadth b of the face it hits;
// the scaling length is e = min(b, 2h).
//
// Degenerate geometry never errors here. A non-positive depth or
// scaling length collapses to a single zone A so that a sweep over
// hundreds of rows is not aborted by one malformed entry.
func ZonesForElevation(widthM, heightM, crosswindM float64) []ZoneSegment {
	d := widthM
	if d <= 0 {
		return []ZoneSegment{{Zone: ZoneA, StartM: 0, EndM: math.Max(d, 0)}}
	}
	e := math.Min(crosswindM, 2*heightM)
	if e <= 0 {
		return []ZoneSegment{{Zone: ZoneA, StartM: 0, EndM: d}}
	}

	// Deep zones from both edges meet before C can develop.
	if d < 2*e {
		return edgeZones(d, e)
	}
	// Guard for d == 2e, where C would come out empty.
	if d-2*e <= 0 {
		return edgeZones(d, e)
	}
	return []ZoneSegment{
		{Zone: ZoneA, StartM: 0, EndM: e / 5},
		{Zone: ZoneB, StartM: e / 5, EndM: e},
		{Zone: ZoneC, StartM: e, EndM: d - e},
		{Zone: ZoneB, StartM: d - e, EndM: d - e/5},
		{Zone: ZoneA, StartM: d - e/5, EndM: d},
	}
}

// edgeZones lays out A-B-A, collapsing to a single A when the two A
// strips would overlap.
func edgeZones(d, e float64) []ZoneSegment {
	a := e / 5
	if d <= 2*a {
		return []ZoneSegment{{Zone: ZoneA, StartM: 0, EndM: d}}
	}
	return []ZoneSegment{
		{Zone: ZoneA, StartM: 0, EndM: a},
		{Zone: ZoneB, StartM: a, EndM: d - a},
		{Zone: ZoneA, StartM: d - a, EndM: d},
	}
}

// PresentZones returns the distinct side-zone labels of a layout in
// A, B, C order.
func PresentZones(segs []ZoneSegment) []Zone {
	seen := map[Zone]bool{}
	for _, s := range segs {
		seen[s.Zone] = true
	}
	var out []Zone
	for _, z := range []Zone{ZoneA, ZoneB, ZoneC} {
		if seen[z] {
			out = append(out, z)
		}
	}
	return out
}
