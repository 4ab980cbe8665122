package menu

import (
	"context"
	"errors"

	"franchise-ops/internal/models"
)

var (
	ErrMenuItemNotFound = errors.New("MENU_ITEM_NOT_FOUND")
	ErrSessionNotFound  = errors.New("DINING_SESSION_NOT_FOUND")
)

// Repository is the system of record for menu items, sessions and the
// menu_item_sessions relation.
type Repository interface {
	ListSessions(ctx context.Context) ([]models.DiningSession, error)
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	ListMappings(ctx context.Context) ([]models.MenuSessionMapping, error)

	// InsertMapping must not create a duplicate row for an existing pair.
	InsertMapping(ctx context.Context, m models.MenuSessionMapping) error
	DeleteMapping(ctx context.Context, menuItemID, sessionID string) error
	SetAvailability(ctx context.Context, menuItemID, sessionID string, available bool) error

	// SaveMenuItem upserts item and makes mappings its complete relation set.
	SaveMenuItem(ctx context.Context, item models.MenuItem, mappings []models.MenuSessionMapping) error
	// DeleteMenuItem removes the item's relation rows and then the item as
	// one unit. ErrMenuItemNotFound if the item does not exist.
	DeleteMenuItem(ctx context.Context, menuItemID string) error

	SaveSession(ctx context.Context, s models.DiningSession) error
}
