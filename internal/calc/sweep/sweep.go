package sweep

import (
	"fmt"
	"math"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
)

type Input struct {
	Base    wind.Input `json:"base"`
	StepDeg float64    `json:"step_deg"`
}

// Orientation is the outcome of one rotation of the base building.
type Orientation struct {
	RotationDeg float64        `json:"rotation_deg"`
	DesignKPa   float64        `json:"design_kpa"`
	Pairs       []wind.ZoneRef `json:"pairs"`
}

type Result struct {
	Orientations []Orientation `json:"orientations"`
	WorstDeg     float64       `json:"worst_deg"`
	WorstKPa     float64       `json:"worst_kpa"`
	BestDeg      float64       `json:"best_deg"`
	BestKPa      float64       `json:"best_kpa"`
	Notes        string        `json:"notes"`
}

// Calculate rotates the building through a full circle with the
// directional factors switched on and reports the governing and the
// most favourable orientation. The default step matches the 30 degree
// resolution of the factor table.
func Calculate(in Input) (Result, error) {
	step := in.StepDeg
	if step <= 0 {
		step = 30
	}
	if math.Mod(360, step) != 0 {
		return Result{}, fmt.Errorf("step must divide 360")
	}

	base := in.Base
	base.UseDirectionFactor = true

	out := Result{Notes: "Orientation sweep with directional factors applied."}
	for deg := 0.0; deg < 360; deg += step {
		base.RotationDeg = deg
		res, err := wind.Calculate(base)
		if err != nil {
			return Result{}, fmt.Errorf("rotation %.0f: %w", deg, err)
		}
		o := Orientation{
			RotationDeg: deg,
			DesignKPa:   res.Summary.Design.NetKPa,
			Pairs:       res.Summary.Design.Pairs,
		}
		out.Orientations = append(out.Orientations, o)
		if len(out.Orientations) == 1 || o.DesignKPa > out.WorstKPa {
			out.WorstKPa = o.DesignKPa
			out.WorstDeg = deg
		}
		if len(out.Orientations) == 1 || o.DesignKPa < out.BestKPa {
			out.BestKPa = o.DesignKPa
			out.BestDeg = deg
		}
	}
	return out, nil
}
