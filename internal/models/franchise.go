// internal/models/franchise.go
package models

// FranchisePerformance is one row of the "top performers" table. Callers sort it.
type FranchisePerformance struct {
	Name         string  `json:"name"`
	Revenue      int     `json:"revenue"`
	Satisfaction float64 `json:"satisfaction"`
}

type FranchiseCounts struct {
	Active int `json:"active"`
	Total  int `json:"total"`
}

// FranchiseOccupancy is a per-franchise occupancy reading. Status is only set
// in operational metrics ("optimal", "high", "low").
type FranchiseOccupancy struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Status string  `json:"status,omitempty"`
}

type CoinStatus string

const (
	CoinStatusGood     CoinStatus = "good"
	CoinStatusWarning  CoinStatus = "warning"
	CoinStatusCritical CoinStatus = "critical"
)

// CoinUsage status is computed upstream and stored as-is.
type CoinUsage struct {
	Franchise string     `json:"franchise"`
	Issued    int        `json:"issued"`
	Redeemed  int        `json:"redeemed"`
	Status    CoinStatus `json:"status"`
}
