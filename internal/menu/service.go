package menu

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/common/validation"
	"franchise-ops/internal/models"
	"franchise-ops/internal/notify"
)

// AssignmentResult reports one pair action. Sessions is the item's session
// name list after the action, or the unchanged list when it failed.
type AssignmentResult struct {
	Success    bool                   `json:"success"`
	Changed    bool                   `json:"changed"`
	MenuItemID string                 `json:"menuItemId"`
	SessionID  string                 `json:"sessionId"`
	State      models.AssignmentState `json:"state"`
	Sessions   []string               `json:"sessions"`
}

type ServiceDependencies struct {
	Repository Repository
	Catalog    *Catalog
	Notifier   notify.Notifier
	Indexer    Indexer
	Logger     logger.Logger
}

type Service struct {
	repo     Repository
	catalog  *Catalog
	notifier notify.Notifier
	indexer  Indexer
	logger   logger.Logger
	inflight *inflight

	now   func() time.Time
	newID func() string
}

func NewService(deps ServiceDependencies) *Service {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = NewCatalog()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Discard{}
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		repo:     deps.Repository,
		catalog:  catalog,
		notifier: notifier,
		indexer:  deps.Indexer,
		logger:   log.WithFields(map[string]interface{}{"component": "menu-service"}),
		inflight: newInflight(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Load replaces the catalog with the repository contents.
func (s *Service) Load(ctx context.Context) error {
	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return errors.NewQueryExecutionFailedError("dining_sessions", err)
	}
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return errors.NewQueryExecutionFailedError("menu_items", err)
	}
	mappings, err := s.repo.ListMappings(ctx)
	if err != nil {
		return errors.NewQueryExecutionFailedError("menu_item_sessions", err)
	}
	s.catalog.Replace(sessions, items, mappings)
	s.logger.Info("menu catalog loaded", map[string]interface{}{
		"sessions": len(sessions),
		"items":    len(items),
		"mappings": len(mappings),
	})
	return nil
}

// SaveSession creates or renames a dining session.
func (s *Service) SaveSession(ctx context.Context, session models.DiningSession) error {
	if strings.TrimSpace(session.ID) == "" || strings.TrimSpace(session.Name) == "" {
		return errors.NewMenuItemValidationFailedError("session id and name are required")
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return errors.NewAssignmentPersistenceFailedError("save-session", err)
	}
	s.catalog.PutSession(session)
	return nil
}

// Assign moves a pair from Unassigned to Assigned-Available. Assigning an
// already assigned pair changes nothing and makes no repository call.
func (s *Service) Assign(ctx context.Context, actor models.Actor, menuItemID, sessionID string) (*AssignmentResult, error) {
	const op = "assign"

	item, session, err := s.resolvePair(menuItemID, sessionID)
	if err != nil {
		s.record(op, "rejected")
		return nil, err
	}
	if !s.inflight.acquirePair(menuItemID, sessionID) {
		return s.busy(ctx, actor, op, item, sessionID)
	}
	defer s.inflight.releasePair(menuItemID, sessionID)

	if s.catalog.State(menuItemID, sessionID) != models.AssignmentUnassigned {
		s.record(op, "noop")
		return s.result(true, false, menuItemID, sessionID), nil
	}

	mapping := models.MenuSessionMapping{MenuItemID: menuItemID, SessionID: sessionID, Available: true}
	if err := s.repo.InsertMapping(ctx, mapping); err != nil {
		return s.persistFailed(ctx, actor, op, item, session, err)
	}
	s.catalog.setMapping(menuItemID, sessionID, true)
	s.reindex(ctx, menuItemID)

	s.record(op, "applied")
	title, msg := assignedText(item.Name, session.Name)
	s.send(ctx, s.notification(actor, models.NotificationInfo, title, msg, menuItemID, sessionID))
	return s.result(true, true, menuItemID, sessionID), nil
}

// Remove moves an assigned pair back to Unassigned. Removing an unassigned
// pair changes nothing.
func (s *Service) Remove(ctx context.Context, actor models.Actor, menuItemID, sessionID string) (*AssignmentResult, error) {
	const op = "remove"

	item, session, err := s.resolvePair(menuItemID, sessionID)
	if err != nil {
		s.record(op, "rejected")
		return nil, err
	}
	if !s.inflight.acquirePair(menuItemID, sessionID) {
		return s.busy(ctx, actor, op, item, sessionID)
	}
	defer s.inflight.releasePair(menuItemID, sessionID)

	if s.catalog.State(menuItemID, sessionID) == models.AssignmentUnassigned {
		s.record(op, "noop")
		return s.result(true, false, menuItemID, sessionID), nil
	}

	if err := s.repo.DeleteMapping(ctx, menuItemID, sessionID); err != nil {
		return s.persistFailed(ctx, actor, op, item, session, err)
	}
	s.catalog.deleteMapping(menuItemID, sessionID)
	s.reindex(ctx, menuItemID)

	s.record(op, "applied")
	title, msg := removedText(item.Name, session.Name)
	s.send(ctx, s.notification(actor, models.NotificationInfo, title, msg, menuItemID, sessionID))
	return s.result(true, true, menuItemID, sessionID), nil
}

// SetAvailability flips the availability flag of an assigned pair.
func (s *Service) SetAvailability(ctx context.Context, actor models.Actor, menuItemID, sessionID string, available bool) (*AssignmentResult, error) {
	const op = "set-availability"

	item, session, err := s.resolvePair(menuItemID, sessionID)
	if err != nil {
		s.record(op, "rejected")
		return nil, err
	}
	if !s.inflight.acquirePair(menuItemID, sessionID) {
		return s.busy(ctx, actor, op, item, sessionID)
	}
	defer s.inflight.releasePair(menuItemID, sessionID)

	state := s.catalog.State(menuItemID, sessionID)
	if state == models.AssignmentUnassigned {
		s.record(op, "rejected")
		return s.result(false, false, menuItemID, sessionID),
			errors.NewResourceNotFoundError("menu", fmt.Sprintf("menuItemId %s is not assigned to sessionId %s", menuItemID, sessionID))
	}
	if (state == models.AssignmentAvailable) == available {
		s.record(op, "noop")
		return s.result(true, false, menuItemID, sessionID), nil
	}

	if err := s.repo.SetAvailability(ctx, menuItemID, sessionID, available); err != nil {
		return s.persistFailed(ctx, actor, op, item, session, err)
	}
	s.catalog.setMapping(menuItemID, sessionID, available)

	s.record(op, "applied")
	title, msg := availabilityText(item.Name, session.Name, available)
	s.send(ctx, s.notification(actor, models.NotificationInfo, title, msg, menuItemID, sessionID))
	return s.result(true, true, menuItemID, sessionID), nil
}

type saveRequest struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Price      float64  `json:"price"`
	SessionIDs []string `json:"sessionIds"`
}

// SaveItemSchema gates SaveMenuItem before anything reaches the repository.
func SaveItemSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"name":     {Type: "string", MinLength: validation.Int(1), MaxLength: validation.Int(120)},
			"category": {Type: "string", MinLength: validation.Int(1)},
			"price":    {Type: "number", Minimum: validation.Float(0)},
			"sessionIds": {
				Type:        "array",
				MinItems:    validation.Int(1),
				UniqueItems: true,
				Items:       &validation.Property{Type: "string", MinLength: validation.Int(1)},
			},
		},
		Required:             []string{"name", "category", "price", "sessionIds"},
		AdditionalProperties: false,
	}
}

// SaveMenuItem creates or updates item with exactly sessionIDs as its
// sessions. Validation failures return before any repository call. A new
// item gets a generated id. Existing pairs keep their availability.
func (s *Service) SaveMenuItem(ctx context.Context, actor models.Actor, item models.MenuItem, sessionIDs []string) (*models.MenuItem, error) {
	const op = "save-item"

	if sessionIDs == nil {
		sessionIDs = []string{}
	}
	result := validation.ValidateDocument(saveRequest{
		Name:       strings.TrimSpace(item.Name),
		Category:   strings.TrimSpace(item.Category),
		Price:      item.Price,
		SessionIDs: sessionIDs,
	}, SaveItemSchema())
	if !result.Valid {
		s.record(op, "rejected")
		title, msg := invalidItemText()
		if result.HasErrors("sessionIds") {
			title, msg = noSessionsText()
		}
		s.send(ctx, s.notification(actor, models.NotificationError, title, msg, item.ID, ""))
		return nil, errors.NewMenuItemValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}
	for _, id := range sessionIDs {
		if _, ok := s.catalog.Session(id); !ok {
			s.record(op, "rejected")
			return nil, errors.NewDiningSessionNotFoundError(id)
		}
	}

	if item.ID == "" {
		item.ID = s.newID()
	}
	if !s.inflight.acquireItem(item.ID) {
		s.record(op, "rejected")
		title, msg := busyText(item.Name)
		s.send(ctx, s.notification(actor, models.NotificationError, title, msg, item.ID, ""))
		return nil, errors.NewAssignmentInFlightError(item.ID, "*")
	}
	defer s.inflight.releaseItem(item.ID)

	mappings := make([]models.MenuSessionMapping, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		available := s.catalog.State(item.ID, id) != models.AssignmentUnavailable
		mappings = append(mappings, models.MenuSessionMapping{MenuItemID: item.ID, SessionID: id, Available: available})
	}

	item.Sessions = nil
	if err := s.repo.SaveMenuItem(ctx, item, mappings); err != nil {
		s.record(op, "failed")
		s.logger.Error("menu item save failed", map[string]interface{}{
			"menuItemId": item.ID,
			"error":      err.Error(),
		})
		title, msg := saveFailedText(item.Name)
		s.send(ctx, s.notification(actor, models.NotificationError, title, msg, item.ID, ""))
		return nil, errors.NewAssignmentPersistenceFailedError(op, err)
	}
	s.catalog.putItem(item, mappings)
	s.reindex(ctx, item.ID)

	s.record(op, "applied")
	title, msg := savedText(item.Name)
	s.send(ctx, s.notification(actor, models.NotificationInfo, title, msg, item.ID, ""))

	saved, _ := s.catalog.Item(item.ID)
	return &saved, nil
}

// DeleteMenuItem removes the item's relation rows and then the item. On
// failure the catalog keeps both and a critical notification is raised.
func (s *Service) DeleteMenuItem(ctx context.Context, actor models.Actor, menuItemID string) error {
	const op = "delete-item"

	item, ok := s.catalog.Item(menuItemID)
	if !ok {
		s.record(op, "rejected")
		return errors.NewMenuItemNotFoundError(menuItemID)
	}
	if !s.inflight.acquireItem(menuItemID) {
		s.record(op, "rejected")
		title, msg := busyText(item.Name)
		s.send(ctx, s.notification(actor, models.NotificationError, title, msg, menuItemID, ""))
		return errors.NewAssignmentInFlightError(menuItemID, "*")
	}
	defer s.inflight.releaseItem(menuItemID)

	if err := s.repo.DeleteMenuItem(ctx, menuItemID); err != nil {
		if stderrors.Is(err, ErrMenuItemNotFound) {
			s.catalog.removeItem(menuItemID)
			s.record(op, "rejected")
			return errors.NewMenuItemNotFoundError(menuItemID)
		}
		s.record(op, "failed")
		s.logger.Error("cascade delete failed", map[string]interface{}{
			"menuItemId": menuItemID,
			"mappings":   len(item.Sessions),
			"error":      err.Error(),
		})
		title, msg := deleteFailedText(item.Name)
		s.send(ctx, s.notification(actor, models.NotificationCritical, title, msg, menuItemID, ""))
		return errors.NewCascadeDeleteFailedError(menuItemID, err).WithMetadata("menuItemId", menuItemID)
	}
	s.catalog.removeItem(menuItemID)
	s.reindex(ctx, menuItemID)

	s.record(op, "applied")
	title, msg := deletedText(item.Name)
	s.send(ctx, s.notification(actor, models.NotificationInfo, title, msg, menuItemID, ""))
	return nil
}

func (s *Service) resolvePair(menuItemID, sessionID string) (models.MenuItem, models.DiningSession, error) {
	item, ok := s.catalog.Item(menuItemID)
	if !ok {
		return models.MenuItem{}, models.DiningSession{}, errors.NewMenuItemNotFoundError(menuItemID)
	}
	session, ok := s.catalog.Session(sessionID)
	if !ok {
		return models.MenuItem{}, models.DiningSession{}, errors.NewDiningSessionNotFoundError(sessionID)
	}
	return item, session, nil
}

func (s *Service) result(success, changed bool, menuItemID, sessionID string) *AssignmentResult {
	return &AssignmentResult{
		Success:    success,
		Changed:    changed,
		MenuItemID: menuItemID,
		SessionID:  sessionID,
		State:      s.catalog.State(menuItemID, sessionID),
		Sessions:   s.catalog.SessionNames(menuItemID),
	}
}

func (s *Service) busy(ctx context.Context, actor models.Actor, op string, item models.MenuItem, sessionID string) (*AssignmentResult, error) {
	s.record(op, "rejected")
	title, msg := busyText(item.Name)
	s.send(ctx, s.notification(actor, models.NotificationError, title, msg, item.ID, sessionID))
	return s.result(false, false, item.ID, sessionID), errors.NewAssignmentInFlightError(item.ID, sessionID)
}

func (s *Service) persistFailed(ctx context.Context, actor models.Actor, op string, item models.MenuItem, session models.DiningSession, err error) (*AssignmentResult, error) {
	s.record(op, "failed")
	s.logger.Error("assignment write failed", map[string]interface{}{
		"operation":  op,
		"menuItemId": item.ID,
		"sessionId":  session.ID,
		"error":      err.Error(),
	})
	title, msg := failedText(item.Name, session.Name)
	s.send(ctx, s.notification(actor, models.NotificationError, title, msg, item.ID, session.ID))
	return s.result(false, false, item.ID, session.ID), errors.NewAssignmentPersistenceFailedError(op, err)
}

// send delivers n; delivery failures are logged and never fail the action.
func (s *Service) send(ctx context.Context, n models.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notification delivery failed", map[string]interface{}{
			"notificationId": n.ID,
			"level":          string(n.Level),
			"error":          err.Error(),
		})
	}
}

// reindex pushes the catalog's current view of an item to the search index,
// or removes it when the item is gone.
func (s *Service) reindex(ctx context.Context, menuItemID string) {
	if s.indexer == nil {
		return
	}
	var err error
	if doc, ok := s.catalog.SearchDocument(menuItemID); ok {
		err = s.indexer.Index(ctx, doc)
	} else {
		err = s.indexer.Remove(ctx, menuItemID)
	}
	if err != nil {
		s.logger.Warn("search index update failed", map[string]interface{}{
			"menuItemId": menuItemID,
			"error":      err.Error(),
		})
	}
}

func (s *Service) record(op, outcome string) {
	metrics.MenuAssignmentActions.WithLabelValues(op, outcome).Inc()
}
