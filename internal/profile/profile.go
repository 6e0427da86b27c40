package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/repo"
)

// ProfileStore is the slice of the repository the profile handlers
// need.
type ProfileStore interface {
	GetProfileByID(ctx context.Context, id int) (repo.Profile, error)
	UpdateProfile(ctx context.Context, id int, upd repo.ProfileUpdate) error
}

type ProfileHandler struct {
	Repo ProfileStore
}

type UpdateProfileRequest struct {
	Login          string  `json:"login"`
	Organisation   string  `json:"organisation"`
	DefaultRegion  string  `json:"default_region"`
	DefaultTerrain string  `json:"default_terrain"`
	DefaultWindMS  float64 `json:"default_wind_ms"`
}

// GetProfile serves either the profile named by the path id or the
// caller's own.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if idStr, ok := vars["id"]; ok && idStr != "" {
		targetID, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}
		prof, err := h.Repo.GetProfileByID(r.Context(), targetID)
		if err != nil {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(prof)
		return
	}

	idVal := r.Context().Value("userID")
	userID, ok := idVal.(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prof, err := h.Repo.GetProfileByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(prof)
}

// UpdateProfile replaces the account details and the calculation
// defaults. Empty region and terrain fall back to the recommended
// values, anything else must name a known category.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	idVal := r.Context().Value("userID")
	userID, ok := idVal.(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" {
		http.Error(w, "Login required", http.StatusBadRequest)
		return
	}
	if req.DefaultWindMS < 0 {
		http.Error(w, "Invalid wind speed", http.StatusBadRequest)
		return
	}

	region := wind.Region(req.DefaultRegion)
	if region == "" {
		region = wind.RegionEU
	}
	terrain := wind.TerrainCategory(req.DefaultTerrain)
	if terrain == "" {
		terrain = wind.TerrainOpen
		if region == wind.RegionUK {
			terrain = wind.TerrainUKCountry
		}
	}
	if !wind.ValidCategory(region, terrain) {
		http.Error(w, "Unknown terrain category for region", http.StatusBadRequest)
		return
	}

	upd := repo.ProfileUpdate{
		Login:          req.Login,
		Organisation:   req.Organisation,
		DefaultRegion:  region,
		DefaultTerrain: terrain,
		DefaultWindMS:  req.DefaultWindMS,
	}
	if err := h.Repo.UpdateProfile(r.Context(), userID, upd); err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
