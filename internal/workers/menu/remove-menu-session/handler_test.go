// internal/workers/menu/remove-menu-session/handler_test.go
package removemenusession

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/menu"
	"franchise-ops/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func createTestService(t *testing.T, repo menu.Repository) *menu.Service {
	svc := menu.NewService(menu.ServiceDependencies{Repository: repo, Logger: logger.NewTestLogger(t)})
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func seededRepository(t *testing.T) *menu.MemoryRepository {
	ctx := context.Background()
	repo := menu.NewMemoryRepository()
	require.NoError(t, repo.SaveSession(ctx, models.DiningSession{ID: "lunch", Name: "Lunch"}))
	require.NoError(t, repo.SaveSession(ctx, models.DiningSession{ID: "dinner", Name: "Sunset Dinner"}))
	require.NoError(t, repo.SaveMenuItem(ctx,
		models.MenuItem{ID: "item-2", Name: "Pho", Category: "Soups", Price: 9},
		[]models.MenuSessionMapping{
			{MenuItemID: "item-2", SessionID: "lunch", Available: true},
			{MenuItemID: "item-2", SessionID: "dinner", Available: false},
		}))
	return repo
}

// failingRepository fails every mapping delete.
type failingRepository struct {
	*menu.MemoryRepository
}

func (failingRepository) DeleteMapping(context.Context, string, string) error {
	return stderrors.New("connection refused")
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Remove(t *testing.T) {
	repo := seededRepository(t)
	handler := NewHandler(createTestConfig(), createTestService(t, repo), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Role: "franchise_manager", MenuItemID: "item-2", SessionID: "dinner"})
	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.True(t, output.Changed)
	assert.Equal(t, "unassigned", output.State)
	assert.Equal(t, []string{"Lunch"}, output.Sessions)

	rows, err := repo.ListMappings(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestHandler_Execute_RemoveUnassigned(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestService(t, seededRepository(t)), logger.NewTestLogger(t))
	ctx := context.Background()

	_, err := handler.Execute(ctx, &Input{MenuItemID: "item-2", SessionID: "lunch"})
	require.NoError(t, err)

	again, err := handler.Execute(ctx, &Input{MenuItemID: "item-2", SessionID: "lunch"})
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, []string{"Sunset Dinner"}, again.Sessions)
}

func TestHandler_Execute_PersistenceFailure(t *testing.T) {
	svc := createTestService(t, failingRepository{seededRepository(t)})
	handler := NewHandler(createTestConfig(), svc, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{MenuItemID: "item-2", SessionID: "lunch"})
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeAssignmentPersistenceFailed, stdErr.Code)
	assert.Equal(t, models.AssignmentAvailable, svc.Catalog().State("item-2", "lunch"))
}

func TestHandler_Execute_Validation(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestService(t, seededRepository(t)), logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{SessionID: "lunch"})
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeMenuItemValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "menuItemId")
}
