package dashboard

import (
	"franchise-ops/internal/models"
)

// ApplyLocationFilter substitutes summary figures with a country or city
// rollup. Global and franchise scopes are handled elsewhere and pass through,
// as does any lookup miss.
func ApplyLocationFilter(d models.DashboardData, scope models.LocationScope, countryCode, cityName string) models.DashboardData {
	out := Clone(d)

	switch scope {
	case models.LocationCountry:
		if c, ok := LookupCountry(d, countryCode); ok {
			setRegional(&out.Summary, c.Revenue, c.Bookings, c.Satisfaction)
		}
	case models.LocationCity:
		if c, ok := LookupCity(d, countryCode, cityName); ok {
			setRegional(&out.Summary, c.Revenue, c.Bookings, c.Satisfaction)
		}
	}

	return out
}

func setRegional(s *models.DashboardSummary, revenue, bookings int, satisfaction float64) {
	s.Revenue.Total = revenue
	s.Bookings.Total = bookings
	s.Satisfaction.Score = satisfaction
}
