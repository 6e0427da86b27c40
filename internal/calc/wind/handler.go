package wind

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/observability"
)

// RunRecord is one line of a user's calculation history.
type RunRecord struct {
	ID          int             `json:"id"`
	Region      Region          `json:"region"`
	Terrain     TerrainCategory `json:"terrain"`
	NSDimM      float64         `json:"ns_dim_m"`
	EWDimM      float64         `json:"ew_dim_m"`
	HeightM     float64         `json:"height_m"`
	BasicWindMS float64         `json:"basic_wind_ms"`
	QpKPa       float64         `json:"qp_kpa"`
	DesignKPa   float64         `json:"design_kpa"`
	Pairs       string          `json:"pairs"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RunStore persists completed calculations. A nil store disables
// history without touching the handlers.
type RunStore interface {
	LogRun(ctx context.Context, userID int, in Input, res Result) error
	RecentRuns(ctx context.Context, userID, limit int) ([]RunRecord, error)
}

type Handler struct {
	Runs    RunStore
	Metrics *observability.Metrics
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.count("calc", "invalid")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		h.count("calc", "invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.count("calc", "ok")
	if h.Metrics != nil {
		h.Metrics.CalcDuration.Observe(time.Since(start).Seconds())
		if funnellingChanged(res) {
			h.Metrics.FunnellingApplied.Inc()
		}
		if insetPresent(res) {
			h.Metrics.InsetFlagged.Inc()
		}
	}
	if h.Runs != nil {
		if userID, ok := r.Context().Value("userID").(int); ok {
			if err := h.Runs.LogRun(r.Context(), userID, input, res); err != nil {
				log.Printf("wind: log run: %v", err)
			}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// ZonesResult is the layout-only view of a geometry, one entry per
// elevation.
type ZonesResult struct {
	Elevations map[Elevation][]ZoneSegment `json:"elevations"`
	Present    map[Elevation][]Zone        `json:"present"`
}

// Zones returns the suction zone layout without pressures. Degenerate
// geometry collapses rather than failing, matching the partitioner.
func (h *Handler) Zones(w http.ResponseWriter, r *http.Request) {
	var g Geometry
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		h.count("zones", "invalid")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	out := ZonesResult{
		Elevations: map[Elevation][]ZoneSegment{},
		Present:    map[Elevation][]Zone{},
	}
	for _, el := range Elevations {
		width, crosswind := g.FaceDims(el)
		segs := ZonesForElevation(width, g.HeightM, crosswind)
		out.Elevations[el] = segs
		out.Present[el] = PresentZones(segs)
	}
	h.count("zones", "ok")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) PeakPressure(w http.ResponseWriter, r *http.Request) {
	var input PeakInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.count("peak", "invalid")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculatePeak(input)
	if err != nil {
		h.count("peak", "invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.count("peak", "ok")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) TerrainList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TerrainCatalogue())
}

func (h *Handler) TerrainGet(w http.ResponseWriter, r *http.Request) {
	info, err := TerrainByCode(mux.Vars(r)["code"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

func (h *Handler) RunHistory(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		http.Error(w, "History disabled", http.StatusNotFound)
		return
	}
	userID, ok := r.Context().Value("userID").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	runs, err := h.Runs.RecentRuns(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

func (h *Handler) count(tool, outcome string) {
	if h.Metrics != nil {
		h.Metrics.CalcRequests.WithLabelValues(tool, outcome).Inc()
	}
}

func funnellingChanged(res Result) bool {
	for _, el := range res.Elevations {
		if len(el.FunnellingPct) > 0 {
			return true
		}
	}
	return false
}

func insetPresent(res Result) bool {
	for _, el := range res.Elevations {
		if el.Inset.Present {
			return true
		}
	}
	return false
}
