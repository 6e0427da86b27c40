package importer

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	wind "github.com/AMcCrone/tt-BS-EN-1991-1-4-sub000/internal/calc/wind"
)

// Row is one imported building. The csv tags double as the expected
// xlsx column order.
type Row struct {
	Region         string  `csv:"region"`
	Terrain        string  `csv:"terrain"`
	NSDimM         float64 `csv:"ns_dim_m"`
	EWDimM         float64 `csv:"ew_dim_m"`
	HeightM        float64 `csv:"height_m"`
	BasicWindMS    float64 `csv:"basic_wind_ms"`
	DistanceSeaKM  float64 `csv:"distance_sea_km"`
	DistanceTownKM float64 `csv:"distance_town_km"`
}

func (r Row) input() wind.Input {
	return wind.Input{
		Region:         wind.Region(r.Region),
		Terrain:        wind.TerrainCategory(r.Terrain),
		NSDimM:         r.NSDimM,
		EWDimM:         r.EWDimM,
		HeightM:        r.HeightM,
		BasicWindMS:    r.BasicWindMS,
		DistanceSeaKM:  r.DistanceSeaKM,
		DistanceTownKM: r.DistanceTownKM,
	}
}

// readXlsx parses the first sheet, skipping the header row and any row
// that is too short or does not scan. Skips are counted, not fatal.
func readXlsx(r io.Reader) ([]Row, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil || len(cells) < 2 {
		return nil, 0, fmt.Errorf("empty sheet")
	}

	var rows []Row
	skipped := 0
	for i := 1; i < len(cells); i++ {
		row, err := parseRow(cells[i])
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

// readCSV decodes the whole file in one pass. Unlike xlsx, a cell that
// does not convert fails the upload rather than the row.
func readCSV(r io.Reader) ([]Row, int, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, 0, err
	}
	return rows, 0, nil
}

func parseRow(cells []string) (Row, error) {
	// expected: region, terrain, ns_dim_m, ew_dim_m, height_m,
	// basic_wind_ms, distance_sea_km(optional), distance_town_km(optional)
	if len(cells) < 6 {
		return Row{}, fmt.Errorf("bad row")
	}
	row := Row{Region: cells[0], Terrain: cells[1]}
	var err error
	if row.NSDimM, err = toFloat(cells[2]); err != nil {
		return Row{}, err
	}
	if row.EWDimM, err = toFloat(cells[3]); err != nil {
		return Row{}, err
	}
	if row.HeightM, err = toFloat(cells[4]); err != nil {
		return Row{}, err
	}
	if row.BasicWindMS, err = toFloat(cells[5]); err != nil {
		return Row{}, err
	}
	if len(cells) > 6 && cells[6] != "" {
		row.DistanceSeaKM, _ = toFloat(cells[6])
	}
	if len(cells) > 7 && cells[7] != "" {
		row.DistanceTownKM, _ = toFloat(cells[7])
	}
	return row, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
