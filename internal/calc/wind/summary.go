package wind

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// Internal pressure coefficients paired against the external one.
	// The pairing is keyed purely off the sign of cp,e: suction zones
	// take the positive internal coefficient, pressure zones the
	// negative one. No per-row worst-case search happens here.
	CpiPositive = 0.2
	CpiNegative = -0.3

	// insetCpe is the fixed corner suction applied where the inset
	// detector flags zone E, bypassing the h/d interpolation.
	insetCpe = -2.0

	// tieTol bounds the |net| spread still reported as one tied
	// design value.
	tieTol = 1e-9
)

// PressureRow is one (elevation, zone) line of the loading table.
type PressureRow struct {
	Direction Elevation `json:"direction"`
	Zone      Zone      `json:"zone"`
	Cdir      float64   `json:"c_dir"`
	Cpe       float64   `json:"cp_e"`
	Cpi       float64   `json:"cp_i_used"`
	WeKPa     float64   `json:"we_kpa"`
	WiKPa     float64   `json:"wi_kpa"`
	NetKPa    float64   `json:"net_kpa"`
	Action    string    `json:"action"`
}

// ZoneRef names one (elevation, zone) pair.
type ZoneRef struct {
	Direction Elevation `json:"direction"`
	Zone      Zone      `json:"zone"`
}

// DesignValue is the governing net pressure magnitude with every pair
// that reaches it. Ties are reported together, never collapsed to an
// arbitrary winner.
type DesignValue struct {
	NetKPa float64   `json:"net_kpa"`
	Pairs  []ZoneRef `json:"pairs"`
}

// PairsLabel renders the tied pairs as "North/D, South/A" for log
// rows and report lines.
func (d DesignValue) PairsLabel() string {
	return formatPairs(d.Pairs)
}

// SummaryInput gathers the per-elevation results feeding the loading
// table.
type SummaryInput struct {
	QpKPa     float64
	Cpe       map[Elevation]map[Zone]float64
	Zones     map[Elevation][]Zone
	Inset     map[Elevation]InsetResult
	Cdir      map[Elevation]float64
	CpiPos    float64
	CpiNeg    float64
	Funnelled bool
}

// Summary is the assembled loading table with its global range,
// governing value and report sentences.
type Summary struct {
	Rows        []PressureRow `json:"rows"`
	RangeMinKPa float64       `json:"range_min_kpa"`
	RangeMaxKPa float64       `json:"range_max_kpa"`
	Design      DesignValue   `json:"design"`
	Sentences   []string      `json:"sentences"`
}

// Summarize builds the net pressure table. Each elevation contributes
// its geometrically present side zones, always zone D, and zone E
// only where the inset detector flagged it. Net pressure per row is
// we - wi with we = qp c_dir cp,e and wi = qp c_dir cp,i.
func Summarize(in SummaryInput) Summary {
	cpiPos, cpiNeg := in.CpiPos, in.CpiNeg
	if cpiPos == 0 {
		cpiPos = CpiPositive
	}
	if cpiNeg == 0 {
		cpiNeg = CpiNegative
	}

	var rows []PressureRow
	for _, el := range Elevations {
		table := in.Cpe[el]
		if table == nil {
			continue
		}
		cdir, ok := in.Cdir[el]
		if !ok || cdir <= 0 {
			cdir = 1.0
		}
		zones := append([]Zone{}, in.Zones[el]...)
		zones = append(zones, ZoneD)
		if in.Inset[el].Present {
			zones = append(zones, ZoneE)
		}
		for _, z := range zones {
			cpe, found := table[z]
			if z == ZoneE {
				cpe = insetCpe
				found = true
			}
			if !found {
				continue
			}
			cpi := cpiNeg
			if cpe < 0 {
				cpi = cpiPos
			}
			we := in.QpKPa * cdir * cpe
			wi := in.QpKPa * cdir * cpi
			net := we - wi
			rows = append(rows, PressureRow{
				Direction: el,
				Zone:      z,
				Cdir:      cdir,
				Cpe:       cpe,
				Cpi:       cpi,
				WeKPa:     we,
				WiKPa:     wi,
				NetKPa:    net,
				Action:    action(net),
			})
		}
	}

	s := Summary{Rows: rows}
	if len(rows) == 0 {
		// Keep a non-zero span so dependent colour scales never
		// divide by zero.
		s.RangeMinKPa, s.RangeMaxKPa = 0, 1
		s.Sentences = []string{"No pressure rows computed yet."}
		return s
	}

	s.RangeMinKPa, s.RangeMaxKPa = rows[0].NetKPa, rows[0].NetKPa
	worst := 0.0
	for _, r := range rows {
		if r.NetKPa < s.RangeMinKPa {
			s.RangeMinKPa = r.NetKPa
		}
		if r.NetKPa > s.RangeMaxKPa {
			s.RangeMaxKPa = r.NetKPa
		}
		if a := abs(r.NetKPa); a > worst {
			worst = a
		}
	}
	s.Design.NetKPa = worst
	for _, r := range rows {
		if scalar.EqualWithinAbs(abs(r.NetKPa), worst, tieTol) {
			s.Design.Pairs = append(s.Design.Pairs, ZoneRef{Direction: r.Direction, Zone: r.Zone})
		}
	}
	s.Sentences = sentences(in, rows, s.Design)
	return s
}

func action(net float64) string {
	switch {
	case net > 0:
		return "pressure"
	case net < 0:
		return "suction"
	default:
		return "none"
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sentences(in SummaryInput, rows []PressureRow, design DesignValue) []string {
	pi, si := -1, -1
	for i, r := range rows {
		if r.NetKPa > 0 && (pi < 0 || r.NetKPa > rows[pi].NetKPa) {
			pi = i
		}
		if r.NetKPa < 0 && (si < 0 || r.NetKPa < rows[si].NetKPa) {
			si = i
		}
	}

	var out []string
	if pi >= 0 {
		r := rows[pi]
		out = append(out, fmt.Sprintf("Maximum net pressure is %.2f kPa on the %s elevation, zone %s.", r.NetKPa, r.Direction, r.Zone))
	} else {
		out = append(out, "No elevation carries net positive pressure.")
	}
	if si >= 0 {
		r := rows[si]
		out = append(out, fmt.Sprintf("Maximum net suction is %.2f kPa on the %s elevation, zone %s.", r.NetKPa, r.Direction, r.Zone))
	} else {
		out = append(out, "No elevation carries net suction.")
	}
	if in.Funnelled {
		out = append(out, "Funnelling between neighbouring buildings has been considered.")
	}
	var insetFaces []string
	for _, el := range Elevations {
		if in.Inset[el].Present {
			insetFaces = append(insetFaces, string(el))
		}
	}
	if len(insetFaces) > 0 {
		out = append(out, fmt.Sprintf("Inset storey corners attract zone E suction (cp,e = %.1f) on: %s.", insetCpe, strings.Join(insetFaces, ", ")))
	}
	out = append(out, fmt.Sprintf("Recommended design value %.2f kPa, governed by %s.", design.NetKPa, formatPairs(design.Pairs)))
	return out
}

func formatPairs(pairs []ZoneRef) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s/%s", p.Direction, p.Zone)
	}
	return strings.Join(parts, ", ")
}
