// internal/workers/menu/save-menu-item/models.go
package savemenuitem

import "franchise-ops/internal/models"

type Input struct {
	Role       string          `json:"role"`
	TenantID   string          `json:"tenantId,omitempty"`
	MenuItem   models.MenuItem `json:"menuItem"`
	SessionIDs []string        `json:"sessionIds"`
}

func (in *Input) Actor() models.Actor {
	return models.Actor{Role: models.Role(in.Role), TenantID: in.TenantID}
}

type Output struct {
	MenuItem   models.MenuItem `json:"menuItem"`
	MenuItemID string          `json:"menuItemId"`
	Sessions   []string        `json:"sessions"`
	Created    bool            `json:"created"`
}
