package menu

import (
	"fmt"

	"franchise-ops/internal/models"
)

// Notification text is shown to the user as-is and never carries error codes.

func (s *Service) notification(actor models.Actor, level models.NotificationLevel, title, message, itemID, sessionID string) models.Notification {
	return models.Notification{
		ID:         s.newID(),
		Level:      level,
		Title:      title,
		Message:    message,
		Role:       actor.Role,
		TenantID:   actor.TenantID,
		MenuItemID: itemID,
		SessionID:  sessionID,
		CreatedAt:  s.now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func assignedText(item, session string) (string, string) {
	return "Session assigned", fmt.Sprintf("%s is now on the %s menu.", item, session)
}

func removedText(item, session string) (string, string) {
	return "Session removed", fmt.Sprintf("%s is no longer on the %s menu.", item, session)
}

func availabilityText(item, session string, available bool) (string, string) {
	if available {
		return "Item available", fmt.Sprintf("%s is available again during %s.", item, session)
	}
	return "Item unavailable", fmt.Sprintf("%s is marked unavailable during %s.", item, session)
}

func failedText(item, session string) (string, string) {
	return "Change not saved", fmt.Sprintf("We couldn't update %s for %s. Nothing was changed, please try again.", item, session)
}

func busyText(item string) (string, string) {
	return "Change in progress", fmt.Sprintf("Another change to %s is still saving. Try again in a moment.", item)
}

func savedText(item string) (string, string) {
	return "Menu item saved", fmt.Sprintf("%s was saved.", item)
}

func saveFailedText(item string) (string, string) {
	return "Menu item not saved", fmt.Sprintf("We couldn't save %s. Nothing was changed, please try again.", item)
}

func noSessionsText() (string, string) {
	return "Choose a session", "Every menu item needs at least one dining session."
}

func invalidItemText() (string, string) {
	return "Check menu item", "Some menu item details are missing or invalid."
}

func deletedText(item string) (string, string) {
	return "Menu item deleted", fmt.Sprintf("%s and its session assignments were removed.", item)
}

func deleteFailedText(item string) (string, string) {
	return "Menu item not deleted", fmt.Sprintf("Deleting %s did not complete and nothing was removed. Please retry or contact support.", item)
}
