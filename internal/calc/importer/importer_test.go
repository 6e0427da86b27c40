package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
	"github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/observability"
)

func buildXlsx(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, cell))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wind/import", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doImport(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, ImportResult) {
	t.Helper()
	h := &Handler{Metrics: observability.NewMetricsForTesting()}
	rr := httptest.NewRecorder()
	h.Wind(rr, req)

	var out ImportResult
	if rr.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	}
	return rr, out
}

func TestImportXlsx(t *testing.T) {
	content := buildXlsx(t, [][]any{
		{"region", "terrain", "ns_dim_m", "ew_dim_m", "height_m", "basic_wind_ms", "distance_sea_km"},
		{"EU", "II", 20, 40, 10, 25},
		{"UK", "Country", 20, 40, 10, 25, 10},
		{"EU", "II", 20},
		{"EU", "Swamp", 20, 40, 10, 25},
	})

	rr, out := doImport(t, uploadRequest(t, "buildings.xlsx", content))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 2, out.Skipped)
	require.Len(t, out.Results, 2)
	assert.InDelta(t, 0.9188632907102646, out.Results[0].QpKPa, 1e-9)
	assert.Equal(t, wind.RegionUK, out.Results[1].Region)
	assert.InDelta(t, 1.09, out.Results[1].Cr, 1e-12)
}

func TestImportCSV(t *testing.T) {
	csv := strings.Join([]string{
		"region,terrain,ns_dim_m,ew_dim_m,height_m,basic_wind_ms,distance_sea_km,distance_town_km",
		"EU,II,20,40,10,25,,",
		"UK,Town,20,40,10,25,10,5",
		"EU,II,20,40,10,0,,",
	}, "\n")

	rr, out := doImport(t, uploadRequest(t, "sites.csv", []byte(csv)))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 1, out.Skipped)
	require.Len(t, out.Results, 2)
	assert.InDelta(t, 0.9188632907102646, out.Results[0].QpKPa, 1e-9)
	assert.Equal(t, wind.TerrainUKTown, out.Results[1].Terrain)
}

func TestImportRejects(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wind/import", nil)
		rr, _ := doImport(t, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "File required")
	})

	t.Run("not a workbook", func(t *testing.T) {
		rr, _ := doImport(t, uploadRequest(t, "junk.xlsx", []byte("not a workbook")))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid file")
	})

	t.Run("header only", func(t *testing.T) {
		content := buildXlsx(t, [][]any{
			{"region", "terrain", "ns_dim_m", "ew_dim_m", "height_m", "basic_wind_ms"},
		})
		rr, _ := doImport(t, uploadRequest(t, "buildings.xlsx", content))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
