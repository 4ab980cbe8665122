package models

// DashboardData is the full dashboard dataset. Every top-level field is always
// present in JSON output; filters only substitute contents.
type DashboardData struct {
	Summary             DashboardSummary               `json:"summary"`
	RevenueTrends       []RevenueTrend                 `json:"revenueTrends"`
	TopFranchises       []FranchisePerformance         `json:"topFranchises"`
	BookingDistribution []BookingDistribution          `json:"bookingDistribution"`
	PaymentStatus       []PaymentStatus                `json:"paymentStatus"`
	OfferUtilization    []OfferUtilization             `json:"offerUtilization"`
	OperationalMetrics  OperationalMetrics             `json:"operationalMetrics"`
	CountryData         []CountryData                  `json:"countryData"`
	CityData            map[string]map[string]CityData `json:"cityData"`
	SessionTypeData     map[string]SessionTypeData     `json:"sessionTypeData"`
}

// DashboardSummary component counts (online+walkIn, review sentiments) are not
// required to add up to their totals.
type DashboardSummary struct {
	Revenue      RevenueSummary      `json:"revenue"`
	Bookings     BookingsSummary     `json:"bookings"`
	Occupancy    OccupancySummary    `json:"occupancy"`
	Satisfaction SatisfactionSummary `json:"satisfaction"`
	Franchises   *FranchiseCounts    `json:"franchises,omitempty"`
	Guests       GuestsSummary       `json:"guests"`
}

type RevenueSummary struct {
	Total    int     `json:"total"`
	Change   float64 `json:"change"`
	Online   int     `json:"online"`
	WalkIn   int     `json:"walkIn"`
	Previous *int    `json:"previous,omitempty"`
}

type BookingsSummary struct {
	Total  int     `json:"total"`
	Change float64 `json:"change"`
	Online int     `json:"online"`
	WalkIn int     `json:"walkIn"`
}

type OccupancySummary struct {
	Rate        float64              `json:"rate"`
	Change      float64              `json:"change"`
	ByFranchise []FranchiseOccupancy `json:"byFranchise,omitempty"`
}

type SatisfactionSummary struct {
	Score   float64      `json:"score"`
	Change  float64      `json:"change"`
	Reviews ReviewCounts `json:"reviews"`
}

type ReviewCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type GuestsSummary struct {
	Today     int     `json:"today"`
	Week      int     `json:"week"`
	Change    float64 `json:"change"`
	New       *int    `json:"new,omitempty"`
	Returning *int    `json:"returning,omitempty"`
}

// RevenueTrend is one bucket of a chronologically ordered series.
type RevenueTrend struct {
	Name            string `json:"name"`
	Revenue         int    `json:"revenue"`
	PreviousRevenue int    `json:"previousRevenue"`
}

type BookingDistribution struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type PaymentStatus struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type OfferUtilization struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type OperationalMetrics struct {
	Bookings  BookingStatusMetrics `json:"bookings"`
	Occupancy OccupancyMetrics     `json:"occupancy"`
	Payments  PaymentMetrics       `json:"payments"`
	Feedback  ReviewCounts         `json:"feedback"`
	CoinUsage []CoinUsage          `json:"coinUsage"`
	RealTime  RealTimeMetrics      `json:"realTime"`
}

type BookingStatusMetrics struct {
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

type OccupancyMetrics struct {
	Current     float64              `json:"current"`
	Target      float64              `json:"target"`
	ByFranchise []FranchiseOccupancy `json:"byFranchise"`
}

type PaymentMetrics struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Failed    int `json:"failed"`
	Refunded  int `json:"refunded"`
}

type RealTimeMetrics struct {
	CheckIns     int `json:"checkIns"`
	StaffPresent int `json:"staffPresent"`
	ActiveAlerts int `json:"activeAlerts"`
}

// CountryData is a country rollup, matched by exact Code.
type CountryData struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Revenue      int     `json:"revenue"`
	Bookings     int     `json:"bookings"`
	Satisfaction float64 `json:"satisfaction"`
}

// CityData is keyed by country code, then by city name.
type CityData struct {
	Revenue      int     `json:"revenue"`
	Bookings     int     `json:"bookings"`
	Satisfaction float64 `json:"satisfaction"`
}

type SessionTypeData struct {
	Revenue   int     `json:"revenue"`
	Bookings  int     `json:"bookings"`
	Occupancy float64 `json:"occupancy"`
}

type DateBucket string

const (
	DateBucketToday   DateBucket = "today"
	DateBucketWeek    DateBucket = "week"
	DateBucketMonth   DateBucket = "month"
	DateBucketQuarter DateBucket = "quarter"
	DateBucketYear    DateBucket = "year"
	DateBucketCustom  DateBucket = "custom"
)

type LocationScope string

const (
	LocationGlobal    LocationScope = "global"
	LocationCountry   LocationScope = "country"
	LocationCity      LocationScope = "city"
	LocationFranchise LocationScope = "franchise"
)

// SessionTypeAll disables the session-type filter.
const SessionTypeAll = "all"

// DashboardFilters are the user-selected dashboard controls. Empty strings mean
// "not provided". ViewType and SortBy are not read by the pipeline.
type DashboardFilters struct {
	DateBucket    DateBucket    `json:"dateBucket"`
	ViewType      string        `json:"viewType"`
	LocationScope LocationScope `json:"locationScope"`
	CountryCode   string        `json:"countryCode,omitempty"`
	CityName      string        `json:"cityName,omitempty"`
	SessionType   string        `json:"sessionType,omitempty"`
	SortBy        string        `json:"sortBy,omitempty"`
}

// DashboardView is the derived dataset plus the presentation-only filter
// values, echoed unchanged.
type DashboardView struct {
	DashboardData
	ViewType string `json:"viewType,omitempty"`
	SortBy   string `json:"sortBy,omitempty"`
}
