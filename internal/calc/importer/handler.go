package importer

import (
	"encoding/json"
	"net/http"
	"strings"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/observability"
)

type Handler struct {
	Metrics *observability.Metrics
}

type ImportResult struct {
	Count   int           `json:"count"`
	Skipped int           `json:"skipped"`
	Results []wind.Result `json:"results"`
}

// Wind accepts a multipart upload of buildings and runs the wind
// pipeline on every parseable row. The format follows the uploaded
// file name, xlsx unless it ends in .csv.
func (h *Handler) Wind(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.count("import", "invalid")
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var (
		rows    []Row
		skipped int
	)
	if strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		rows, skipped, err = readCSV(file)
	} else {
		rows, skipped, err = readXlsx(file)
	}
	if err != nil {
		h.count("import", "invalid")
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	out := ImportResult{Skipped: skipped}
	for _, row := range rows {
		res, err := wind.Calculate(row.input())
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	h.count("import", "ok")
	if h.Metrics != nil {
		h.Metrics.RowsImported.Add(float64(out.Count))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) count(tool, outcome string) {
	if h.Metrics == nil {
		return
	}
	h.Metrics.CalcRequests.WithLabelValues(tool, outcome).Inc()
}
