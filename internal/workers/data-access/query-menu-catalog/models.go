// internal/workers/data-access/query-menu-catalog/models.go
package querymenucatalog

import "franchise-ops/internal/models"

type Input struct {
	QueryType     string `json:"queryType"`
	MenuItemID    string `json:"menuItemId,omitempty"`
	SessionID     string `json:"sessionId,omitempty"`
	Category      string `json:"category,omitempty"`
	AvailableOnly bool   `json:"availableOnly,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeMenuItems      = models.QueryTypeMenuItems
	QueryTypeMenuItemByID   = models.QueryTypeMenuItemByID
	QueryTypeDiningSessions = models.QueryTypeDiningSessions
	QueryTypeSessionMenu    = models.QueryTypeSessionMenu
)
