package spreadsheet

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Header aliases accepted for each column, compared case-insensitively.
var (
	idHeaders  = []string{"id", "id_cliente", "client_id", "cliente"}
	latHeaders = []string{"latitude", "latitud", "lat"}
	lonHeaders = []string{"longitude", "longitud", "lon", "lng"}
)

// ExcelPointSource reads points from a workbook whose first row is a header
// naming the id, latitude and longitude columns.
type ExcelPointSource struct {
	Path string
	// Sheet to read; empty means the first sheet.
	Sheet string
}

func NewExcelPointSource(path, sheet string) *ExcelPointSource {
	return &ExcelPointSource{Path: path, Sheet: sheet}
}

// Return all points in row order. Blank rows are skipped.
func (s *ExcelPointSource) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "spreadsheet.ListPoints")(&err)

	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("read spreadsheet: path must not be empty")
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: open %q: %w", s.Path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("read spreadsheet: no sheets found in %q", s.Path)
	}

	// Raw values; a display format such as "0.00" would round the coordinates.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: sheet %q: %w", sheet, err)
	}

	points, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet %q: %w", s.Path, err)
	}
	return points, nil
}

// parseRows converts a header row plus data rows into points.
func parseRows(rows [][]string) ([]domain.Point, error) {
	if len(rows) == 0 {
		return []domain.Point{}, nil
	}

	header := rows[0]
	idCol := findColumn(header, idHeaders)
	latCol := findColumn(header, latHeaders)
	lonCol := findColumn(header, lonHeaders)

	var missing []string
	if idCol < 0 {
		missing = append(missing, "id")
	}
	if latCol < 0 {
		missing = append(missing, "latitude")
	}
	if lonCol < 0 {
		missing = append(missing, "longitude")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header row is missing columns: %s", strings.Join(missing, ", "))
	}

	points := make([]domain.Point, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// Spreadsheet rows are 1-based and the header is row 1.
		rowNum := i + 2

		if isBlank(row) {
			continue
		}

		id := cell(row, idCol)
		lat, err := parseCoordinate(cell(row, latCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: latitude: %w", rowNum, err)
		}
		lon, err := parseCoordinate(cell(row, lonCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: longitude: %w", rowNum, err)
		}

		points = append(points, domain.NewPoint(id, lat, lon))
	}

	return points, nil
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseCoordinate accepts "7.8891" and the decimal-comma form "7,8891".
func parseCoordinate(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty cell")
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return v, nil
}
