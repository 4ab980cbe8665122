// internal/workers/dashboard/export-dashboard-report/models.go
package exportdashboardreport

import (
	"franchise-ops/internal/common/validation"
	"franchise-ops/internal/models"
)

// keyPartPattern limits the inputs that end up in the S3 object key.
const keyPartPattern = "^[a-z0-9_-]*$"

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

// Output carries either the uploaded object location or, when uploads are
// disabled, the CSV itself.
type Output struct {
	Bucket    string `json:"bucket,omitempty"`
	Key       string `json:"key,omitempty"`
	Location  string `json:"location,omitempty"`
	Report    string `json:"report,omitempty"`
	Rows      int    `json:"rows"`
	Bytes     int    `json:"bytes"`
	Generated string `json:"generatedAt"`
}

func GetInputSchema() validation.JSONSchema {
	pattern := keyPartPattern
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"role":          {Type: "string", Pattern: &pattern, MaxLength: validation.Int(64)},
			"dateBucket":    {Type: "string", Pattern: &pattern, MaxLength: validation.Int(32)},
			"locationScope": {Type: "string"},
		},
		AdditionalProperties: true,
	}
}
