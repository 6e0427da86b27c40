package batch

import (
	"encoding/json"
	"net/http"

	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/observability"
)

type Handler struct {
	Metrics *observability.Metrics
}

func (h *Handler) Wind(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.count("invalid")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		h.count("invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.count("ok")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) count(outcome string) {
	if h.Metrics != nil {
		h.Metrics.CalcRequests.WithLabelValues("batch", outcome).Inc()
	}
}
