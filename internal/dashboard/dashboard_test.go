package dashboard

import (
	"testing"

	"franchise-ops/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func owner() models.Actor {
	return models.Actor{Role: models.RoleFranchiseOwner, TenantID: "tenant-001"}
}

func manager() models.Actor {
	return models.Actor{Role: models.RoleFranchiseManager, TenantID: "tenant-001"}
}

func superadmin() models.Actor {
	return models.Actor{Role: models.RoleSuperadmin}
}

func weekFilters() models.DashboardFilters {
	return models.DashboardFilters{
		DateBucket:    models.DateBucketWeek,
		ViewType:      "overview",
		LocationScope: models.LocationGlobal,
	}
}

// ==========================
// Seed Dataset Tests
// ==========================

func TestSeed_ReturnsIndependentCopies(t *testing.T) {
	a := Seed()
	b := Seed()
	require.Equal(t, a, b)

	a.TopFranchises[0].Revenue = 1
	a.Summary.Franchises.Active = 99
	*a.Summary.Revenue.Previous = 1
	a.CityData["us"]["Miami"] = models.CityData{}
	a.SessionTypeData["special"] = models.SessionTypeData{}

	fresh := Seed()
	assert.Equal(t, 8450, fresh.TopFranchises[0].Revenue)
	assert.Equal(t, 12, fresh.Summary.Franchises.Active)
	assert.Equal(t, 25290, *fresh.Summary.Revenue.Previous)
	assert.Equal(t, 4310, fresh.CityData["us"]["Miami"].Revenue)
	assert.Equal(t, 85.0, fresh.SessionTypeData["special"].Occupancy)
	assert.Equal(t, b, fresh)
}

func TestSeed_ScenarioValues(t *testing.T) {
	d := Seed()
	require.Len(t, d.RevenueTrends, 7)
	assert.Equal(t, "Sun", d.RevenueTrends[6].Name)
	assert.Equal(t, 4300, d.RevenueTrends[6].Revenue)
	assert.Equal(t, models.SessionTypeData{Revenue: 4046, Bookings: 66, Occupancy: 85}, d.SessionTypeData["special"])
}

func TestClone_PreservesNilFields(t *testing.T) {
	d := models.DashboardData{}
	assert.Equal(t, d, Clone(d))

	d.CityData = map[string]map[string]models.CityData{"us": nil}
	assert.Equal(t, d, Clone(d))
}

// ==========================
// Lookup Tests
// ==========================

func TestLookups(t *testing.T) {
	d := Seed()

	t.Run("country hit", func(t *testing.T) {
		c, ok := LookupCountry(d, "uk")
		assert.True(t, ok)
		assert.Equal(t, 8120, c.Revenue)
	})

	t.Run("country miss", func(t *testing.T) {
		_, ok := LookupCountry(d, "zz")
		assert.False(t, ok)
		_, ok = LookupCountry(d, "")
		assert.False(t, ok)
	})

	t.Run("city needs both keys", func(t *testing.T) {
		_, ok := LookupCity(d, "", "London")
		assert.False(t, ok)
		_, ok = LookupCity(d, "uk", "")
		assert.False(t, ok)
		c, ok := LookupCity(d, "uk", "London")
		assert.True(t, ok)
		assert.Equal(t, 94, c.Bookings)
	})

	t.Run("city miss within present country", func(t *testing.T) {
		_, ok := LookupCity(d, "us", "Atlantis")
		assert.False(t, ok)
	})

	t.Run("session sentinel is a miss", func(t *testing.T) {
		_, ok := LookupSessionType(d, models.SessionTypeAll)
		assert.False(t, ok)
		_, ok = LookupSessionType(d, "")
		assert.False(t, ok)
	})

	t.Run("date buckets without overrides", func(t *testing.T) {
		for _, b := range []models.DateBucket{models.DateBucketWeek, models.DateBucketCustom, "fortnight"} {
			_, ok := LookupDateBucket(b)
			assert.False(t, ok, string(b))
		}
	})

	t.Run("owner franchise on empty list", func(t *testing.T) {
		_, ok := LookupOwnerFranchise(models.DashboardData{}, owner())
		assert.False(t, ok)
	})
}

// ==========================
// Role Filter Tests
// ==========================

func TestApplyRoleFilter(t *testing.T) {
	tests := []struct {
		name           string
		actor          models.Actor
		validateOutput func(t *testing.T, in, out models.DashboardData)
	}{
		{
			name:  "owner sees a single franchise",
			actor: owner(),
			validateOutput: func(t *testing.T, in, out models.DashboardData) {
				require.Len(t, out.TopFranchises, 1)
				entry := out.TopFranchises[0]
				assert.Equal(t, in.TopFranchises[0], entry)
				assert.Equal(t, entry.Revenue, out.Summary.Revenue.Total)
				assert.Equal(t, entry.Satisfaction, out.Summary.Satisfaction.Score)
				// 486 * 8450 / 28450
				assert.Equal(t, 144, out.Summary.Bookings.Total)
				assert.Equal(t, in.RevenueTrends, out.RevenueTrends)
			},
		},
		{
			name:  "manager sees the latest bucket and shift bookings",
			actor: manager(),
			validateOutput: func(t *testing.T, in, out models.DashboardData) {
				require.Len(t, out.RevenueTrends, 1)
				assert.Equal(t, "Sun", out.RevenueTrends[0].Name)
				assert.Equal(t, shiftBookings, out.Summary.Bookings)
				assert.Equal(t, in.Summary.Revenue, out.Summary.Revenue)
				assert.Equal(t, in.TopFranchises, out.TopFranchises)
			},
		},
		{
			name:  "superadmin passes through",
			actor: superadmin(),
			validateOutput: func(t *testing.T, in, out models.DashboardData) {
				assert.Equal(t, in, out)
			},
		},
		{
			name:  "guest passes through",
			actor: models.Actor{Role: models.RoleGuest},
			validateOutput: func(t *testing.T, in, out models.DashboardData) {
				assert.Equal(t, in, out)
			},
		},
		{
			name:  "unknown role passes through",
			actor: models.Actor{Role: "regional_director"},
			validateOutput: func(t *testing.T, in, out models.DashboardData) {
				assert.Equal(t, in, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Seed()
			out := ApplyRoleFilter(in, tt.actor)
			tt.validateOutput(t, in, out)
			assert.Equal(t, Seed(), in, "input must not be mutated")
		})
	}
}

func TestApplyRoleFilter_OwnerWithNoFranchises(t *testing.T) {
	in := Seed()
	in.TopFranchises = nil

	out := ApplyRoleFilter(in, owner())
	assert.Equal(t, in, out)
}

// ==========================
// Date Filter Tests
// ==========================

func TestApplyDateFilter(t *testing.T) {
	tests := []struct {
		name          string
		bucket        models.DateBucket
		expectRevenue int
		passThrough   bool
	}{
		{name: "today uses the latest trend bucket", bucket: models.DateBucketToday, expectRevenue: 4300},
		{name: "month", bucket: models.DateBucketMonth, expectRevenue: 118400},
		{name: "quarter", bucket: models.DateBucketQuarter, expectRevenue: 352900},
		{name: "year", bucket: models.DateBucketYear, expectRevenue: 1386500},
		{name: "week is the baseline", bucket: models.DateBucketWeek, passThrough: true},
		{name: "custom passes through", bucket: models.DateBucketCustom, passThrough: true},
		{name: "unknown bucket passes through", bucket: "fortnight", passThrough: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Seed()
			out := ApplyDateFilter(in, tt.bucket)

			if tt.passThrough {
				assert.Equal(t, in, out)
				return
			}
			assert.Equal(t, tt.expectRevenue, out.Summary.Revenue.Total)
			assert.Equal(t, in.RevenueTrends, out.RevenueTrends)
			assert.Equal(t, in.TopFranchises, out.TopFranchises)
			assert.Equal(t, Seed(), in)
		})
	}
}

func TestApplyDateFilter_TodayReadsSundayBucket(t *testing.T) {
	d := Seed()
	require.Equal(t, 4300, d.RevenueTrends[6].Revenue)

	assert.Equal(t, 4300, ApplyDateFilter(d, models.DateBucketToday).Summary.Revenue.Total)

	d.RevenueTrends[6].Revenue = 5100
	assert.Equal(t, 5100, ApplyDateFilter(d, models.DateBucketToday).Summary.Revenue.Total)
}

func TestApplyDateFilter_TodayWithoutTrends(t *testing.T) {
	d := Seed()
	d.RevenueTrends = nil

	out := ApplyDateFilter(d, models.DateBucketToday)
	assert.Equal(t, 4300, out.Summary.Revenue.Total)
	assert.Equal(t, 72, out.Summary.Bookings.Total)
}

// ==========================
// Location Filter Tests
// ==========================

func TestApplyLocationFilter(t *testing.T) {
	tests := []struct {
		name        string
		scope       models.LocationScope
		country     string
		city        string
		passThrough bool
		expect      models.CityData
	}{
		{name: "global", scope: models.LocationGlobal, passThrough: true},
		{name: "franchise", scope: models.LocationFranchise, country: "us", passThrough: true},
		{name: "unknown scope", scope: "continent", country: "us", passThrough: true},
		{name: "country hit", scope: models.LocationCountry, country: "us", expect: models.CityData{Revenue: 14250, Bookings: 248, Satisfaction: 4.7}},
		{name: "country miss", scope: models.LocationCountry, country: "zz", passThrough: true},
		{name: "country missing code", scope: models.LocationCountry, passThrough: true},
		{name: "city hit", scope: models.LocationCity, country: "ae", city: "Dubai", expect: models.CityData{Revenue: 4290, Bookings: 71, Satisfaction: 4.7}},
		{name: "city miss in known country", scope: models.LocationCity, country: "us", city: "Atlantis", passThrough: true},
		{name: "city with unknown country", scope: models.LocationCity, country: "zz", city: "London", passThrough: true},
		{name: "city without country", scope: models.LocationCity, city: "London", passThrough: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Seed()
			out := ApplyLocationFilter(in, tt.scope, tt.country, tt.city)

			if tt.passThrough {
				assert.Equal(t, in, out)
				return
			}
			assert.Equal(t, tt.expect.Revenue, out.Summary.Revenue.Total)
			assert.Equal(t, tt.expect.Bookings, out.Summary.Bookings.Total)
			assert.Equal(t, tt.expect.Satisfaction, out.Summary.Satisfaction.Score)
			assert.Equal(t, in.Summary.Occupancy, out.Summary.Occupancy)
		})
	}
}

// ==========================
// Session Filter Tests
// ==========================

func TestApplySessionFilter(t *testing.T) {
	t.Run("special", func(t *testing.T) {
		out := ApplySessionFilter(Seed(), "special")
		assert.Equal(t, 85.0, out.Summary.Occupancy.Rate)
		assert.Equal(t, 4046, out.Summary.Revenue.Total)
		assert.Equal(t, 66, out.Summary.Bookings.Total)
	})

	for _, key := range []string{"", models.SessionTypeAll, "midnight-feast"} {
		t.Run("pass through "+key, func(t *testing.T) {
			in := Seed()
			assert.Equal(t, in, ApplySessionFilter(in, key))
		})
	}
}

// ==========================
// Pipeline Tests
// ==========================

func TestGetDashboardData_Deterministic(t *testing.T) {
	filters := models.DashboardFilters{
		DateBucket:    models.DateBucketMonth,
		ViewType:      "detailed",
		LocationScope: models.LocationCity,
		CountryCode:   "uk",
		CityName:      "London",
		SessionType:   "dinner",
		SortBy:        "revenue",
	}

	first := GetDashboardData(owner(), filters)
	second := GetDashboardData(owner(), filters)
	assert.Equal(t, first, second)
}

func TestGetDashboardData_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		actor          models.Actor
		filters        models.DashboardFilters
		validateOutput func(t *testing.T, view models.DashboardView)
	}{
		{
			name:    "superadmin week global is the seed",
			actor:   superadmin(),
			filters: weekFilters(),
			validateOutput: func(t *testing.T, view models.DashboardView) {
				assert.Equal(t, Seed(), view.DashboardData)
				assert.Equal(t, "overview", view.ViewType)
			},
		},
		{
			name:  "later stages win over role narrowing",
			actor: owner(),
			filters: models.DashboardFilters{
				DateBucket:    models.DateBucketWeek,
				LocationScope: models.LocationGlobal,
				SessionType:   "special",
			},
			validateOutput: func(t *testing.T, view models.DashboardView) {
				require.Len(t, view.TopFranchises, 1)
				assert.Equal(t, 4046, view.Summary.Revenue.Total)
				assert.Equal(t, 66, view.Summary.Bookings.Total)
				assert.Equal(t, 4.8, view.Summary.Satisfaction.Score)
			},
		},
		{
			name:  "manager today keeps the single trend bucket",
			actor: manager(),
			filters: models.DashboardFilters{
				DateBucket:    models.DateBucketToday,
				LocationScope: models.LocationGlobal,
			},
			validateOutput: func(t *testing.T, view models.DashboardView) {
				require.Len(t, view.RevenueTrends, 1)
				assert.Equal(t, 4300, view.Summary.Revenue.Total)
				assert.Equal(t, 72, view.Summary.Bookings.Total)
			},
		},
		{
			name:  "country overrides date",
			actor: superadmin(),
			filters: models.DashboardFilters{
				DateBucket:    models.DateBucketYear,
				LocationScope: models.LocationCountry,
				CountryCode:   "ae",
			},
			validateOutput: func(t *testing.T, view models.DashboardView) {
				assert.Equal(t, 6080, view.Summary.Revenue.Total)
				assert.Equal(t, 102, view.Summary.Bookings.Total)
				assert.Equal(t, 14.8, view.Summary.Revenue.Change)
				assert.Equal(t, 73.0, view.Summary.Occupancy.Rate)
			},
		},
		{
			name:  "garbage filters degrade to the seed",
			actor: models.Actor{Role: "nobody"},
			filters: models.DashboardFilters{
				DateBucket:    "eon",
				LocationScope: "planet",
				CountryCode:   "zz",
				SessionType:   "none",
				SortBy:        "chaos",
			},
			validateOutput: func(t *testing.T, view models.DashboardView) {
				assert.Equal(t, Seed(), view.DashboardData)
				assert.Equal(t, "chaos", view.SortBy)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := GetDashboardData(tt.actor, tt.filters)
			tt.validateOutput(t, view)
		})
	}
}

func TestPipeline_CustomBase(t *testing.T) {
	base := Seed()
	base.RevenueTrends[6].Revenue = 9999

	p := NewPipeline(base)
	base.RevenueTrends[6].Revenue = 1

	view := p.Derive(superadmin(), models.DashboardFilters{DateBucket: models.DateBucketToday})
	assert.Equal(t, 9999, view.Summary.Revenue.Total)
}

func TestStages_Order(t *testing.T) {
	stages := Stages(owner(), models.DashboardFilters{SessionType: "special"})
	require.Len(t, stages, 4)

	afterRole := stages[0](Seed())
	assert.Len(t, afterRole.TopFranchises, 1)

	afterSession := stages[3](afterRole)
	assert.Equal(t, 4046, afterSession.Summary.Revenue.Total)
}
