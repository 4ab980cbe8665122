// internal/workers/menu/set-menu-session-availability/models.go
package setmenusessionavailability

import (
	"franchise-ops/internal/common/validation"
	"franchise-ops/internal/models"
)

type Input struct {
	Role       string `json:"role"`
	TenantID   string `json:"tenantId,omitempty"`
	MenuItemID string `json:"menuItemId"`
	SessionID  string `json:"sessionId"`
	Available  *bool  `json:"available"`
}

func (in *Input) Actor() models.Actor {
	return models.Actor{Role: models.Role(in.Role), TenantID: in.TenantID}
}

type Output struct {
	Success    bool     `json:"success"`
	Changed    bool     `json:"changed"`
	MenuItemID string   `json:"menuItemId"`
	SessionID  string   `json:"sessionId"`
	Available  bool     `json:"available"`
	State      string   `json:"assignmentState"`
	Sessions   []string `json:"sessions"`
}

// GetInputSchema requires available to be an explicit boolean; a missing
// flag marshals to null and is rejected.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"role":       {Type: "string"},
			"tenantId":   {Type: "string"},
			"menuItemId": {Type: "string", MinLength: validation.Int(1)},
			"sessionId":  {Type: "string", MinLength: validation.Int(1)},
			"available":  {Type: "boolean"},
		},
		Required:             []string{"menuItemId", "sessionId", "available"},
		AdditionalProperties: true,
	}
}
