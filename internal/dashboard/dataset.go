// Package dashboard derives role-scoped dashboard views from a fixed seed dataset.
package dashboard

import (
	"franchise-ops/internal/models"
)

// seed is built once and never handed out directly; Seed returns a deep copy.
var seed = buildSeed()

// Seed returns a fresh deep copy of the seed dataset.
func Seed() models.DashboardData {
	return Clone(seed)
}

func intPtr(v int) *int {
	return &v
}

func buildSeed() models.DashboardData {
	return models.DashboardData{
		Summary: models.DashboardSummary{
			Revenue: models.RevenueSummary{
				Total:    28450,
				Change:   12.5,
				Online:   17070,
				WalkIn:   11380,
				Previous: intPtr(25290),
			},
			Bookings: models.BookingsSummary{
				Total:  486,
				Change: 8.2,
				Online: 312,
				WalkIn: 174,
			},
			Occupancy: models.OccupancySummary{
				Rate:   78,
				Change: 5.3,
				ByFranchise: []models.FranchiseOccupancy{
					{Name: "Downtown Bistro", Rate: 86},
					{Name: "Marina Grill", Rate: 81},
					{Name: "Harbor View", Rate: 74},
					{Name: "Uptown Terrace", Rate: 69},
				},
			},
			Satisfaction: models.SatisfactionSummary{
				Score:  4.6,
				Change: 0.2,
				Reviews: models.ReviewCounts{
					Positive: 342,
					Neutral:  58,
					Negative: 21,
				},
			},
			Franchises: &models.FranchiseCounts{Active: 12, Total: 14},
			Guests: models.GuestsSummary{
				Today:     186,
				Week:      1248,
				Change:    6.8,
				New:       intPtr(412),
				Returning: intPtr(836),
			},
		},
		RevenueTrends: []models.RevenueTrend{
			{Name: "Mon", Revenue: 3200, PreviousRevenue: 2900},
			{Name: "Tue", Revenue: 3450, PreviousRevenue: 3100},
			{Name: "Wed", Revenue: 3800, PreviousRevenue: 3350},
			{Name: "Thu", Revenue: 4100, PreviousRevenue: 3600},
			{Name: "Fri", Revenue: 4900, PreviousRevenue: 4250},
			{Name: "Sat", Revenue: 5600, PreviousRevenue: 4800},
			{Name: "Sun", Revenue: 4300, PreviousRevenue: 3900},
		},
		TopFranchises: []models.FranchisePerformance{
			{Name: "Downtown Bistro", Revenue: 8450, Satisfaction: 4.8},
			{Name: "Marina Grill", Revenue: 7320, Satisfaction: 4.6},
			{Name: "Harbor View", Revenue: 6180, Satisfaction: 4.5},
			{Name: "Uptown Terrace", Revenue: 5240, Satisfaction: 4.3},
			{Name: "Garden Court", Revenue: 4260, Satisfaction: 4.2},
		},
		BookingDistribution: []models.BookingDistribution{
			{Name: "Online", Value: 312},
			{Name: "Phone", Value: 64},
			{Name: "Walk-in", Value: 82},
			{Name: "Partner", Value: 28},
		},
		PaymentStatus: []models.PaymentStatus{
			{Name: "Paid", Value: 412},
			{Name: "Pending", Value: 52},
			{Name: "Refunded", Value: 14},
			{Name: "Failed", Value: 8},
		},
		OfferUtilization: []models.OfferUtilization{
			{Name: "Happy Hour", Value: 124},
			{Name: "Early Bird", Value: 86},
			{Name: "Loyalty Coins", Value: 142},
			{Name: "Weekend Brunch", Value: 68},
		},
		OperationalMetrics: models.OperationalMetrics{
			Bookings: models.BookingStatusMetrics{
				Confirmed: 402,
				Pending:   58,
				Cancelled: 26,
				Total:     486,
			},
			Occupancy: models.OccupancyMetrics{
				Current: 78,
				Target:  85,
				ByFranchise: []models.FranchiseOccupancy{
					{Name: "Downtown Bistro", Rate: 92, Status: "high"},
					{Name: "Marina Grill", Rate: 84, Status: "optimal"},
					{Name: "Harbor View", Rate: 76, Status: "optimal"},
					{Name: "Uptown Terrace", Rate: 58, Status: "low"},
				},
			},
			Payments: models.PaymentMetrics{
				Completed: 412,
				Pending:   52,
				Failed:    8,
				Refunded:  14,
			},
			Feedback: models.ReviewCounts{
				Positive: 342,
				Neutral:  58,
				Negative: 21,
			},
			CoinUsage: []models.CoinUsage{
				{Franchise: "Downtown Bistro", Issued: 5200, Redeemed: 3900, Status: models.CoinStatusGood},
				{Franchise: "Marina Grill", Issued: 4100, Redeemed: 3650, Status: models.CoinStatusWarning},
				{Franchise: "Harbor View", Issued: 2800, Redeemed: 2740, Status: models.CoinStatusCritical},
				{Franchise: "Uptown Terrace", Issued: 3300, Redeemed: 1980, Status: models.CoinStatusGood},
			},
			RealTime: models.RealTimeMetrics{
				CheckIns:     64,
				StaffPresent: 38,
				ActiveAlerts: 2,
			},
		},
		CountryData: []models.CountryData{
			{Code: "us", Name: "United States", Revenue: 14250, Bookings: 248, Satisfaction: 4.7},
			{Code: "uk", Name: "United Kingdom", Revenue: 8120, Bookings: 136, Satisfaction: 4.5},
			{Code: "ae", Name: "United Arab Emirates", Revenue: 6080, Bookings: 102, Satisfaction: 4.6},
		},
		CityData: map[string]map[string]models.CityData{
			"us": {
				"New York":      {Revenue: 6420, Bookings: 112, Satisfaction: 4.8},
				"Miami":         {Revenue: 4310, Bookings: 76, Satisfaction: 4.6},
				"San Francisco": {Revenue: 3520, Bookings: 60, Satisfaction: 4.7},
			},
			"uk": {
				"London":     {Revenue: 5680, Bookings: 94, Satisfaction: 4.5},
				"Manchester": {Revenue: 2440, Bookings: 42, Satisfaction: 4.4},
			},
			"ae": {
				"Dubai":     {Revenue: 4290, Bookings: 71, Satisfaction: 4.7},
				"Abu Dhabi": {Revenue: 1790, Bookings: 31, Satisfaction: 4.5},
			},
		},
		SessionTypeData: map[string]models.SessionTypeData{
			"breakfast": {Revenue: 2980, Bookings: 92, Occupancy: 64},
			"lunch":     {Revenue: 6240, Bookings: 128, Occupancy: 72},
			"dinner":    {Revenue: 11820, Bookings: 174, Occupancy: 88},
			"brunch":    {Revenue: 3364, Bookings: 26, Occupancy: 70},
			"special":   {Revenue: 4046, Bookings: 66, Occupancy: 85},
		},
	}
}

// Clone deep-copies d so that no slice, map or pointer is shared with it.
func Clone(d models.DashboardData) models.DashboardData {
	out := d

	out.Summary = cloneSummary(d.Summary)
	out.RevenueTrends = cloneSlice(d.RevenueTrends)
	out.TopFranchises = cloneSlice(d.TopFranchises)
	out.BookingDistribution = cloneSlice(d.BookingDistribution)
	out.PaymentStatus = cloneSlice(d.PaymentStatus)
	out.OfferUtilization = cloneSlice(d.OfferUtilization)

	out.OperationalMetrics.Occupancy.ByFranchise = cloneSlice(d.OperationalMetrics.Occupancy.ByFranchise)
	out.OperationalMetrics.CoinUsage = cloneSlice(d.OperationalMetrics.CoinUsage)

	out.CountryData = cloneSlice(d.CountryData)

	if d.CityData != nil {
		out.CityData = make(map[string]map[string]models.CityData, len(d.CityData))
		for country, cities := range d.CityData {
			if cities == nil {
				out.CityData[country] = nil
				continue
			}
			cp := make(map[string]models.CityData, len(cities))
			for name, c := range cities {
				cp[name] = c
			}
			out.CityData[country] = cp
		}
	}

	if d.SessionTypeData != nil {
		out.SessionTypeData = make(map[string]models.SessionTypeData, len(d.SessionTypeData))
		for k, v := range d.SessionTypeData {
			out.SessionTypeData[k] = v
		}
	}

	return out
}

func cloneSummary(s models.DashboardSummary) models.DashboardSummary {
	out := s
	out.Revenue.Previous = cloneIntPtr(s.Revenue.Previous)
	out.Occupancy.ByFranchise = cloneSlice(s.Occupancy.ByFranchise)
	if s.Franchises != nil {
		fc := *s.Franchises
		out.Franchises = &fc
	}
	out.Guests.New = cloneIntPtr(s.Guests.New)
	out.Guests.Returning = cloneIntPtr(s.Guests.Returning)
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneSlice keeps nil as nil so that deep equality with the input holds.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
