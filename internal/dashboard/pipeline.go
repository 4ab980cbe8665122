package dashboard

import (
	"franchise-ops/internal/models"
)

// Stage is one pure step of the derivation pipeline.
type Stage func(models.DashboardData) models.DashboardData

// Pipeline derives dashboard views from a base dataset. The base is copied on
// construction and on every call, so a Pipeline is safe for concurrent use.
type Pipeline struct {
	base models.DashboardData
}

func NewPipeline(base models.DashboardData) *Pipeline {
	return &Pipeline{base: Clone(base)}
}

// NewSeedPipeline returns a pipeline over the built-in seed dataset.
func NewSeedPipeline() *Pipeline {
	return &Pipeline{base: Seed()}
}

// Stages returns the filter chain for actor and filters in application order:
// role, date, location, session. Later stages overwrite overlapping summary
// fields written by earlier ones.
func Stages(actor models.Actor, filters models.DashboardFilters) []Stage {
	return []Stage{
		func(d models.DashboardData) models.DashboardData {
			return ApplyRoleFilter(d, actor)
		},
		func(d models.DashboardData) models.DashboardData {
			return ApplyDateFilter(d, filters.DateBucket)
		},
		func(d models.DashboardData) models.DashboardData {
			return ApplyLocationFilter(d, filters.LocationScope, filters.CountryCode, filters.CityName)
		},
		func(d models.DashboardData) models.DashboardData {
			return ApplySessionFilter(d, filters.SessionType)
		},
	}
}

// Derive runs the full chain. It never fails: unknown filter values are no-ops.
func (p *Pipeline) Derive(actor models.Actor, filters models.DashboardFilters) models.DashboardView {
	data := Clone(p.base)
	for _, stage := range Stages(actor, filters) {
		data = stage(data)
	}

	return models.DashboardView{
		DashboardData: data,
		ViewType:      filters.ViewType,
		SortBy:        filters.SortBy,
	}
}

// GetDashboardData derives a view from the seed dataset.
func GetDashboardData(actor models.Actor, filters models.DashboardFilters) models.DashboardView {
	return NewSeedPipeline().Derive(actor, filters)
}
