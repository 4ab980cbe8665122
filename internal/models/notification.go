// internal/models/notification.go
package models

type NotificationLevel string

const (
	NotificationInfo     NotificationLevel = "info"
	NotificationError    NotificationLevel = "error"
	NotificationCritical NotificationLevel = "critical"
)

// Notification is a user-facing outcome message. Message text never carries
// internal error codes.
type Notification struct {
	ID         string            `json:"id"`
	Level      NotificationLevel `json:"level"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Role       Role              `json:"role,omitempty"`
	TenantID   string            `json:"tenantId,omitempty"`
	MenuItemID string            `json:"menuItemId,omitempty"`
	SessionID  string            `json:"sessionId,omitempty"`
	CreatedAt  string            `json:"createdAt"`
}
