// internal/workers/menu/assign-menu-session/models.go
package assignmenusession

import (
	"franchise-ops/internal/common/validation"
	"franchise-ops/internal/models"
)

type Input struct {
	Role       string `json:"role"`
	TenantID   string `json:"tenantId,omitempty"`
	MenuItemID string `json:"menuItemId"`
	SessionID  string `json:"sessionId"`
}

func (in *Input) Actor() models.Actor {
	return models.Actor{Role: models.Role(in.Role), TenantID: in.TenantID}
}

type Output struct {
	Success    bool     `json:"success"`
	Changed    bool     `json:"changed"`
	MenuItemID string   `json:"menuItemId"`
	SessionID  string   `json:"sessionId"`
	State      string   `json:"assignmentState"`
	Sessions   []string `json:"sessions"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"role":       {Type: "string"},
			"tenantId":   {Type: "string"},
			"menuItemId": {Type: "string", MinLength: validation.Int(1)},
			"sessionId":  {Type: "string", MinLength: validation.Int(1)},
		},
		Required:             []string{"menuItemId", "sessionId"},
		AdditionalProperties: true,
	}
}
