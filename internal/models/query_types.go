// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeMenuItems      QueryType = "menu_items"
	QueryTypeMenuItemByID   QueryType = "menu_item_by_id"
	QueryTypeDiningSessions QueryType = "dining_sessions"
	QueryTypeSessionMenu    QueryType = "session_menu"
)
