package dashboard

import (
	"franchise-ops/internal/models"
)

// ApplySessionFilter substitutes revenue, bookings and occupancy with the
// rollup for sessionType. "" and "all" pass through, as does an unknown key.
func ApplySessionFilter(d models.DashboardData, sessionType string) models.DashboardData {
	out := Clone(d)

	rollup, ok := LookupSessionType(d, sessionType)
	if !ok {
		return out
	}

	out.Summary.Revenue.Total = rollup.Revenue
	out.Summary.Bookings.Total = rollup.Bookings
	out.Summary.Occupancy.Rate = rollup.Occupancy

	return out
}
