package dashboard

import (
	"franchise-ops/internal/models"
)

// DateOverride is the precomputed aggregate for one time bucket.
type DateOverride struct {
	RevenueTotal   int
	RevenueChange  float64
	BookingsTotal  int
	BookingsChange float64
	OccupancyRate  float64
	// LatestTrend takes the revenue total from the most recent trend bucket.
	LatestTrend bool
}

var dateOverrides = map[models.DateBucket]DateOverride{
	models.DateBucketToday: {
		RevenueTotal:   4300,
		RevenueChange:  4.2,
		BookingsTotal:  72,
		BookingsChange: 3.5,
		OccupancyRate:  81,
		LatestTrend:    true,
	},
	models.DateBucketMonth: {
		RevenueTotal:   118400,
		RevenueChange:  9.6,
		BookingsTotal:  2014,
		BookingsChange: 7.1,
		OccupancyRate:  76,
	},
	models.DateBucketQuarter: {
		RevenueTotal:   352900,
		RevenueChange:  11.2,
		BookingsTotal:  6120,
		BookingsChange: 8.4,
		OccupancyRate:  74,
	},
	models.DateBucketYear: {
		RevenueTotal:   1386500,
		RevenueChange:  14.8,
		BookingsTotal:  24380,
		BookingsChange: 10.9,
		OccupancyRate:  73,
	},
}

// LookupDateBucket returns the override for bucket. "week" is the baseline and
// "custom" has no aggregation of its own, so neither has an entry.
func LookupDateBucket(bucket models.DateBucket) (DateOverride, bool) {
	o, ok := dateOverrides[bucket]
	return o, ok
}

// ApplyDateFilter substitutes summary figures for the requested time bucket.
func ApplyDateFilter(d models.DashboardData, bucket models.DateBucket) models.DashboardData {
	out := Clone(d)

	o, ok := LookupDateBucket(bucket)
	if !ok {
		return out
	}

	out.Summary.Revenue.Total = o.RevenueTotal
	if o.LatestTrend {
		if latest, ok := LatestRevenueTrend(d); ok {
			out.Summary.Revenue.Total = latest.Revenue
		}
	}
	out.Summary.Revenue.Change = o.RevenueChange
	out.Summary.Bookings.Total = o.BookingsTotal
	out.Summary.Bookings.Change = o.BookingsChange
	out.Summary.Occupancy.Rate = o.OccupancyRate

	return out
}
