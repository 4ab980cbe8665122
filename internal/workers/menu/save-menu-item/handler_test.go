// internal/workers/menu/save-menu-item/handler_test.go
package savemenuitem

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
// Mock Implementations
// ==========================

// countingRepository counts SaveMenuItem calls.
type countingRepository struct {
	*menu.MemoryRepository
	saves int
}

func (r *countingRepository) SaveMenuItem(ctx context.Context, item models.MenuItem, mappings []models.MenuSessionMapping) error {
	r.saves++
	return r.MemoryRepository.SaveMenuItem(ctx, item, mappings)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func createTestHandler(t *testing.T) (*Handler, *countingRepository) {
	ctx := context.Background()
	repo := &countingRepository{MemoryRepository: menu.NewMemoryRepository()}
	require.NoError(t, repo.SaveSession(ctx, models.DiningSession{ID: "breakfast", Name: "Breakfast"}))
	require.NoError(t, repo.SaveSession(ctx, models.DiningSession{ID: "lunch", Name: "Lunch"}))

	svc := menu.NewService(menu.ServiceDependencies{Repository: repo, Logger: logger.NewTestLogger(t)})
	require.NoError(t, svc.Load(ctx))
	return NewHandler(createTestConfig(), svc, logger.NewTestLogger(t)), repo
}

func createTestItem() models.MenuItem {
	return models.MenuItem{
		Name:       "Falafel Wrap",
		Category:   "Mains",
		Price:      8.5,
		Vegetarian: true,
		Allergens:  []string{"sesame"},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Create(t *testing.T) {
	handler, repo := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Role:       "franchise_manager",
		MenuItem:   createTestItem(),
		SessionIDs: []string{"lunch", "breakfast"},
	})
	require.NoError(t, err)

	assert.True(t, output.Created)
	assert.NotEmpty(t, output.MenuItemID)
	assert.Equal(t, output.MenuItemID, output.MenuItem.ID)
	assert.Equal(t, []string{"Breakfast", "Lunch"}, output.Sessions)
	assert.Equal(t, 1, repo.saves)
}

func TestHandler_Execute_Update(t *testing.T) {
	handler, _ := createTestHandler(t)
	ctx := context.Background()

	first, err := handler.Execute(ctx, &Input{MenuItem: createTestItem(), SessionIDs: []string{"lunch"}})
	require.NoError(t, err)

	item := first.MenuItem
	item.Price = 9
	second, err := handler.Execute(ctx, &Input{MenuItem: item, SessionIDs: []string{"breakfast"}})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.MenuItemID, second.MenuItemID)
	assert.Equal(t, 9.0, second.MenuItem.Price)
	assert.Equal(t, []string{"Breakfast"}, second.Sessions)
}

func TestHandler_Execute_EmptySessionsNeverPersist(t *testing.T) {
	tests := []struct {
		name       string
		sessionIDs []string
	}{
		{name: "missing", sessionIDs: nil},
		{name: "empty", sessionIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, repo := createTestHandler(t)

			output, err := handler.Execute(context.Background(), &Input{MenuItem: createTestItem(), SessionIDs: tt.sessionIDs})
			assert.Nil(t, output)

			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, errors.ErrCodeMenuItemValidationFailed, stdErr.Code)
			assert.Zero(t, repo.saves)
		})
	}
}
