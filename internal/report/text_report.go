package report

import (
	"delivery-route-optimizer/internal/domain"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// NoPointsMessage is rendered in place of a report when there is nothing to optimize.
const NoPointsMessage = "No points to optimize"

// FormatText renders a plan as the plain-text route list:
// a dated banner, the starting point, one numbered block per stop and a summary.
func FormatText(plan *domain.RoutePlan, generatedAt time.Time) string {
	if plan == nil || len(plan.Stops) == 0 {
		return NoPointsMessage
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	banner := strings.Repeat("=", 50)
	line("%s", banner)
	line("OPTIMAL ROUTE - %s", generatedAt.Format("2006-01-02 15:04"))
	line("%s", banner)

	if plan.Start != nil {
		line("Starting point:")
		line("   Latitude, Longitude")
		line("   %s", plan.Start.String())
	}
	line("")

	for _, s := range plan.Stops {
		line("%d. Client: %s", s.Sequence, s.Point.ID)
		line("   Latitude, Longitude")
		line("   %s", s.Point.Coordinates.String())
		if !s.ArriveAt.IsZero() {
			line("   Arrive at: %s", s.ArriveAt.Format("15:04"))
		}
		line("")
	}

	km, minutes := plan.Rounded()
	rule := strings.Repeat("-", 30)
	line("%s", rule)
	line("ROUTE SUMMARY")
	line("%s", rule)
	line("Total distance: %s km", strconv.FormatFloat(km, 'f', 2, 64))
	b.WriteString("Travel time: " + strconv.FormatFloat(minutes, 'f', 1, 64) + " min")

	return b.String()
}

// WriteFile saves a rendered report as UTF-8 text.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report %q: %w", path, err)
	}
	return nil
}
