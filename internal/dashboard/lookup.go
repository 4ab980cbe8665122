package dashboard

import (
	"franchise-ops/internal/models"
)

// Lookups report a miss with ok == false. Callers decide what a miss means;
// every filter in this package treats it as "leave the data as is".

func LookupCountry(d models.DashboardData, code string) (models.CountryData, bool) {
	if code == "" {
		return models.CountryData{}, false
	}
	for _, c := range d.CountryData {
		if c.Code == code {
			return c, true
		}
	}
	return models.CountryData{}, false
}

func LookupCity(d models.DashboardData, countryCode, cityName string) (models.CityData, bool) {
	if countryCode == "" || cityName == "" {
		return models.CityData{}, false
	}
	cities, ok := d.CityData[countryCode]
	if !ok {
		return models.CityData{}, false
	}
	city, ok := cities[cityName]
	return city, ok
}

func LookupSessionType(d models.DashboardData, sessionType string) (models.SessionTypeData, bool) {
	if sessionType == "" || sessionType == models.SessionTypeAll {
		return models.SessionTypeData{}, false
	}
	rollup, ok := d.SessionTypeData[sessionType]
	return rollup, ok
}

// LookupOwnerFranchise picks the owner's row from the top performers list.
// Selection is positional (first entry), not keyed by tenant id.
func LookupOwnerFranchise(d models.DashboardData, actor models.Actor) (models.FranchisePerformance, bool) {
	if len(d.TopFranchises) == 0 {
		return models.FranchisePerformance{}, false
	}
	return d.TopFranchises[0], true
}

// LatestRevenueTrend returns the most recent bucket of the revenue series.
func LatestRevenueTrend(d models.DashboardData) (models.RevenueTrend, bool) {
	if len(d.RevenueTrends) == 0 {
		return models.RevenueTrend{}, false
	}
	return d.RevenueTrends[len(d.RevenueTrends)-1], true
}
