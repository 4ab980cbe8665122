// internal/workers/menu/delete-menu-item/handler_test.go
package deletemenuitem

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

type mockRepository struct {
	*menu.MemoryRepository
	DeleteMenuItemFunc func(ctx context.Context, menuItemID string) error
}

func (m *mockRepository) DeleteMenuItem(ctx context.Context, menuItemID string) error {
	if m.DeleteMenuItemFunc != nil {
		return m.DeleteMenuItemFunc(ctx, menuItemID)
	}
	return m.MemoryRepository.DeleteMenuItem(ctx, menuItemID)
}

type recordingNotifier struct {
	got []models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n models.Notification) error {
	r.got = append(r.got, n)
	return nil
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func createTestHandler(t *testing.T) (*Handler, *mockRepository, *recordingNotifier, *menu.Service) {
	ctx := context.Background()
	repo := &mockRepository{MemoryRepository: menu.NewMemoryRepository()}
	require.NoError(t, repo.SaveSession(ctx, models.DiningSession{ID: "lunch", Name: "Lunch"}))
	require.NoError(t, repo.SaveSession(ctx, models.DiningSession{ID: "dinner", Name: "Sunset Dinner"}))
	require.NoError(t, repo.SaveMenuItem(ctx,
		models.MenuItem{ID: "item-2", Name: "Pho", Category: "Soups", Price: 9},
		[]models.MenuSessionMapping{
			{MenuItemID: "item-2", SessionID: "lunch", Available: true},
			{MenuItemID: "item-2", SessionID: "dinner", Available: true},
		}))

	notifier := &recordingNotifier{}
	svc := menu.NewService(menu.ServiceDependencies{Repository: repo, Notifier: notifier, Logger: logger.NewTestLogger(t)})
	require.NoError(t, svc.Load(ctx))
	return NewHandler(createTestConfig(), svc, logger.NewTestLogger(t)), repo, notifier, svc
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_CascadeDelete(t *testing.T) {
	handler, repo, _, svc := createTestHandler(t)
	ctx := context.Background()

	output, err := handler.Execute(ctx, &Input{Role: "franchise_owner", MenuItemID: "item-2"})
	require.NoError(t, err)
	assert.True(t, output.Deleted)
	assert.Equal(t, []string{"Lunch", "Sunset Dinner"}, output.RemovedSessions)

	rows, err := repo.ListMappings(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	items, err := repo.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, ok := svc.Catalog().Item("item-2")
	assert.False(t, ok)
}

func TestHandler_Execute_CascadeFailure(t *testing.T) {
	handler, repo, notifier, svc := createTestHandler(t)
	repo.DeleteMenuItemFunc = func(ctx context.Context, menuItemID string) error {
		return stderrors.New("statement timeout")
	}

	output, err := handler.Execute(context.Background(), &Input{MenuItemID: "item-2"})
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeCascadeDeleteFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)

	require.NotEmpty(t, notifier.got)
	assert.Equal(t, models.NotificationCritical, notifier.got[len(notifier.got)-1].Level)
	assert.Len(t, svc.Catalog().Mappings("item-2"), 2)
}

func TestHandler_Execute_Validation(t *testing.T) {
	handler, _, _, _ := createTestHandler(t)

	tests := []struct {
		name       string
		input      *Input
		expectCode errors.ErrorCode
	}{
		{name: "nil input", input: nil, expectCode: errors.ErrCodeMenuItemValidationFailed},
		{name: "blank id", input: &Input{MenuItemID: "  "}, expectCode: errors.ErrCodeMenuItemValidationFailed},
		{name: "unknown id", input: &Input{MenuItemID: "item-404"}, expectCode: errors.ErrCodeMenuItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Execute(context.Background(), tt.input)
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.expectCode, stdErr.Code)
		})
	}
}
