package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/repo"
)

type fakeStore struct {
	profiles map[int]repo.Profile
	updated  map[int]repo.ProfileUpdate
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: map[int]repo.Profile{},
		updated:  map[int]repo.ProfileUpdate{},
	}
}

func (f *fakeStore) GetProfileByID(_ context.Context, id int) (repo.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return repo.Profile{}, repo.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, id int, upd repo.ProfileUpdate) error {
	f.updated[id] = upd
	return nil
}

func asUser(req *http.Request, userID int) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), "userID", userID))
}

func TestGetProfile(t *testing.T) {
	store := newFakeStore()
	store.profiles[7] = repo.Profile{ID: 7, Login: "dana", DefaultRegion: wind.RegionUK, DefaultTerrain: wind.TerrainUKTown}
	store.profiles[9] = repo.Profile{ID: 9, Login: "sam"}
	h := &ProfileHandler{Repo: store}

	router := mux.NewRouter()
	router.HandleFunc("/api/user/profile", h.GetProfile)
	router.HandleFunc("/api/user/profile/{id}", h.GetProfile)

	t.Run("own profile", func(t *testing.T) {
		req := asUser(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), 7)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var prof repo.Profile
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&prof))
		assert.Equal(t, "dana", prof.Login)
		assert.Equal(t, wind.TerrainUKTown, prof.DefaultTerrain)
	})

	t.Run("by id", func(t *testing.T) {
		req := asUser(httptest.NewRequest(http.MethodGet, "/api/user/profile/9", nil), 7)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var prof repo.Profile
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&prof))
		assert.Equal(t, "sam", prof.Login)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := asUser(httptest.NewRequest(http.MethodGet, "/api/user/profile/404", nil), 7)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		req := asUser(httptest.NewRequest(http.MethodGet, "/api/user/profile/abc", nil), 7)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func updateRequest(t *testing.T, body UpdateProfileRequest, userID int) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/api/user/profile", bytes.NewReader(raw))
	if userID != 0 {
		req = asUser(req, userID)
	}
	return req
}

func TestUpdateProfile(t *testing.T) {
	t.Run("full update", func(t *testing.T) {
		store := newFakeStore()
		h := &ProfileHandler{Repo: store}

		req := updateRequest(t, UpdateProfileRequest{
			Login:          "dana",
			Organisation:   "Thornton LLP",
			DefaultRegion:  "UK",
			DefaultTerrain: "Town",
			DefaultWindMS:  22.5,
		}, 7)
		rr := httptest.NewRecorder()
		h.UpdateProfile(rr, req)

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, repo.ProfileUpdate{
			Login:          "dana",
			Organisation:   "Thornton LLP",
			DefaultRegion:  wind.RegionUK,
			DefaultTerrain: wind.TerrainUKTown,
			DefaultWindMS:  22.5,
		}, store.updated[7])
	})

	t.Run("empty region and terrain take recommended values", func(t *testing.T) {
		store := newFakeStore()
		h := &ProfileHandler{Repo: store}

		rr := httptest.NewRecorder()
		h.UpdateProfile(rr, updateRequest(t, UpdateProfileRequest{Login: "dana"}, 7))

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, wind.RegionEU, store.updated[7].DefaultRegion)
		assert.Equal(t, wind.TerrainOpen, store.updated[7].DefaultTerrain)
	})

	t.Run("uk default terrain is country", func(t *testing.T) {
		store := newFakeStore()
		h := &ProfileHandler{Repo: store}

		rr := httptest.NewRecorder()
		h.UpdateProfile(rr, updateRequest(t, UpdateProfileRequest{Login: "dana", DefaultRegion: "UK"}, 7))

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, wind.TerrainUKCountry, store.updated[7].DefaultTerrain)
	})

	t.Run("terrain must match region", func(t *testing.T) {
		h := &ProfileHandler{Repo: newFakeStore()}
		rr := httptest.NewRecorder()
		h.UpdateProfile(rr, updateRequest(t, UpdateProfileRequest{
			Login: "dana", DefaultRegion: "EU", DefaultTerrain: "Town",
		}, 7))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("login required", func(t *testing.T) {
		h := &ProfileHandler{Repo: newFakeStore()}
		rr := httptest.NewRecorder()
		h.UpdateProfile(rr, updateRequest(t, UpdateProfileRequest{Organisation: "TT"}, 7))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("negative wind speed", func(t *testing.T) {
		h := &ProfileHandler{Repo: newFakeStore()}
		rr := httptest.NewRecorder()
		h.UpdateProfile(rr, updateRequest(t, UpdateProfileRequest{Login: "dana", DefaultWindMS: -1}, 7))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		h := &ProfileHandler{Repo: newFakeStore()}
		rr := httptest.NewRecorder()
		h.UpdateProfile(rr, updateRequest(t, UpdateProfileRequest{Login: "dana"}, 0))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
