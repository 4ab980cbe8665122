// internal/workers/dashboard/get-dashboard-data/models.go
package getdashboarddata

import "franchise-ops/internal/models"

// Input mirrors the dashboard controls. Empty strings mean "not selected".
type Input struct {
	Role          string `json:"role"`
	TenantID      string `json:"tenantId,omitempty"`
	DateBucket    string `json:"dateBucket"`
	ViewType      string `json:"viewType"`
	LocationScope string `json:"locationScope"`
	CountryCode   string `json:"countryCode,omitempty"`
	CityName      string `json:"cityName,omitempty"`
	SessionType   string `json:"sessionType,omitempty"`
	SortBy        string `json:"sortBy,omitempty"`
}

func (in *Input) Actor() models.Actor {
	return models.Actor{Role: models.Role(in.Role), TenantID: in.TenantID}
}

func (in *Input) Filters() models.DashboardFilters {
	return models.DashboardFilters{
		DateBucket:    models.DateBucket(in.DateBucket),
		ViewType:      in.ViewType,
		LocationScope: models.LocationScope(in.LocationScope),
		CountryCode:   in.CountryCode,
		CityName:      in.CityName,
		SessionType:   in.SessionType,
		SortBy:        in.SortBy,
	}
}

type Output struct {
	Dashboard   models.DashboardView `json:"dashboard"`
	CacheHit    bool                 `json:"cacheHit"`
	GeneratedAt string               `json:"generatedAt"`
}
