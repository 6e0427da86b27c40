package sweep

import (
	"encoding/json"
	"net/http"

	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/observability"
)

type Handler struct {
	Metrics *observability.Metrics
}

func (h *Handler) Wind(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.count("sweep", "invalid")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(in)
	if err != nil {
		h.count("sweep", "invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.count("sweep", "ok")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) count(tool, outcome string) {
	if h.Metrics == nil {
		return
	}
	h.Metrics.CalcRequests.WithLabelValues(tool, outcome).Inc()
}
