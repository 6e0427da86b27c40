package batch

import (
	"fmt"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
)

type Input struct {
	Items []wind.Input `json:"items"`
}

type Result struct {
	Results    []wind.Result `json:"results"`
	WorstKPa   float64       `json:"worst_kpa"`
	WorstIndex int           `json:"worst_index"`
}

// Calculate runs every item and reports which one governs. A bad item
// fails the whole batch with its index, so spreadsheets can be fixed
// in place.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]wind.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := wind.Calculate(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
		if res.Summary.Design.NetKPa > out.WorstKPa {
			out.WorstKPa = res.Summary.Design.NetKPa
			out.WorstIndex = i
		}
	}
	return out, nil
}
