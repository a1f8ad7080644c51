package report

import (
	"delivery-route-optimizer/internal/domain"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	routeSheet   = "Route"
	summarySheet = "Summary"
)

// WriteWorkbook saves a plan as an .xlsx file with a "Route" sheet listing the
// stops in order and a "Summary" sheet with the rounded totals.
func WriteWorkbook(path string, plan *domain.RoutePlan) (err error) {
	if plan == nil {
		return errors.New("write workbook: plan must be non-nil")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write workbook: close: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), routeSheet); err != nil {
		return fmt.Errorf("write workbook: rename sheet: %w", err)
	}

	header := []any{"sequence", "id", "latitude", "longitude", "leg_km", "cumulative_km", "arrive_at"}
	if err := f.SetSheetRow(routeSheet, "A1", &header); err != nil {
		return fmt.Errorf("write workbook: header: %w", err)
	}

	for i, s := range plan.Stops {
		arrive := ""
		if !s.ArriveAt.IsZero() {
			arrive = s.ArriveAt.Format("2006-01-02 15:04")
		}
		row := []any{
			s.Sequence,
			s.Point.ID,
			s.Point.Lat,
			s.Point.Lon,
			domain.RoundTo(s.LegKm, 2),
			domain.RoundTo(s.CumulativeKm, 2),
			arrive,
		}

		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write workbook: stop %d: %w", s.Sequence, err)
		}
		if err := f.SetSheetRow(routeSheet, cellName, &row); err != nil {
			return fmt.Errorf("write workbook: stop %d: %w", s.Sequence, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("write workbook: summary sheet: %w", err)
	}

	km, minutes := plan.Rounded()
	summary := [][]any{
		{"total_distance_km", km},
		{"travel_time_min", minutes},
		{"passes", plan.Passes},
		{"improvements", plan.Improvements},
		{"converged", plan.Converged},
	}
	for i, row := range summary {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("write workbook: summary: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cellName, &row); err != nil {
			return fmt.Errorf("write workbook: summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %q: %w", path, err)
	}
	return nil
}
