// internal/workers/menu/delete-menu-item/models.go
package deletemenuitem

import "franchise-ops/internal/models"

type Input struct {
	Role       string `json:"role"`
	TenantID   string `json:"tenantId,omitempty"`
	MenuItemID string `json:"menuItemId"`
}

func (in *Input) Actor() models.Actor {
	return models.Actor{Role: models.Role(in.Role), TenantID: in.TenantID}
}

type Output struct {
	Deleted         bool     `json:"deleted"`
	MenuItemID      string   `json:"menuItemId"`
	RemovedSessions []string `json:"removedSessions"`
}
