// internal/workers/menu/search-menu-items/models.go
package searchmenuitems

import "franchise-ops/internal/models"

type Input struct {
	Role       string      `json:"role"`
	TenantID   string      `json:"tenantId,omitempty"`
	Keywords   string      `json:"keywords,omitempty"`
	Category   string      `json:"category,omitempty"`
	SessionID  string      `json:"sessionId,omitempty"`
	Vegetarian *bool       `json:"vegetarian,omitempty"`
	GlutenFree *bool       `json:"glutenFree,omitempty"`
	DairyFree  *bool       `json:"dairyFree,omitempty"`
	Popular    *bool       `json:"popular,omitempty"`
	SortBy     string      `json:"sortBy,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Items     []models.MenuItem `json:"items"`
	TotalHits int64             `json:"totalHits"`
	MaxScore  float64           `json:"maxScore"`
	Took      int64             `json:"took"`
}
