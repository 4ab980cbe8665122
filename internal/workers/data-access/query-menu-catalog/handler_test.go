// internal/workers/data-access/query-menu-catalog/handler_test.go
package querymenucatalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHandler(createTestConfig(), db, logger.NewTestLogger(t)), mock
}

var menuItemColumns = []string{
	"id", "name", "category", "price", "description", "vegetarian",
	"gluten_free", "dairy_free", "popular", "allergens", "satisfaction", "image", "sessions",
}

func menuItemRows() *sqlmock.Rows {
	return sqlmock.NewRows(menuItemColumns).
		AddRow("item-1", "Shakshuka", "Mains", 12.5, "Eggs in tomato", true, true, false, true, "{eggs}", 4.6, nil, "{Breakfast,Lunch}").
		AddRow("item-3", "Lemonade", "Drinks", 3.0, "", true, true, true, false, "{}", nil, "lemonade.png", "{}")
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		mockQuery      func(mock sqlmock.Sqlmock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "menu items",
			input: &Input{QueryType: string(QueryTypeMenuItems)},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("GROUP BY m.id ORDER BY m.created_at, m.id")).
					WithArgs().
					WillReturnRows(menuItemRows())
			},
			validateOutput: func(t *testing.T, output *Output) {
				items, ok := output.Data.([]models.MenuItem)
				require.True(t, ok)
				require.Len(t, items, 2)
				assert.Equal(t, 2, output.RowCount)

				assert.Equal(t, []string{"Breakfast", "Lunch"}, items[0].Sessions)
				assert.Equal(t, []string{"eggs"}, items[0].Allergens)
				require.NotNil(t, items[0].Satisfaction)
				assert.Equal(t, 4.6, *items[0].Satisfaction)
				assert.Nil(t, items[0].Image)

				assert.Equal(t, []string{}, items[1].Sessions)
				assert.Nil(t, items[1].Satisfaction)
				require.NotNil(t, items[1].Image)
				assert.Equal(t, "lemonade.png", *items[1].Image)
			},
		},
		{
			name:  "menu items by category",
			input: &Input{QueryType: string(QueryTypeMenuItems), Category: "Drinks"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE m.category = $1")).
					WithArgs("Drinks").
					WillReturnRows(sqlmock.NewRows(menuItemColumns))
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []models.MenuItem{}, output.Data)
				assert.Equal(t, 0, output.RowCount)
			},
		},
		{
			name:  "menu item by id",
			input: &Input{QueryType: string(QueryTypeMenuItemByID), MenuItemID: "item-1"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE m.id = $1 GROUP BY m.id")).
					WithArgs("item-1").
					WillReturnRows(menuItemRows())
			},
			validateOutput: func(t *testing.T, output *Output) {
				item, ok := output.Data.(models.MenuItem)
				require.True(t, ok)
				assert.Equal(t, "Shakshuka", item.Name)
				assert.Equal(t, 1, output.RowCount)
			},
		},
		{
			name:  "dining sessions",
			input: &Input{QueryType: string(QueryTypeDiningSessions)},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "days", "start_time", "end_time", "capacity", "default_menu"}).
					AddRow("breakfast", "Breakfast", "{Mon,Tue}", "07:00", "10:30", 40, "Morning").
					AddRow("dinner", "Sunset Dinner", "{}", "18:00", "22:00", 60, "")
				mock.ExpectQuery(regexp.QuoteMeta("FROM dining_sessions")).WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				sessions, ok := output.Data.([]models.DiningSession)
				require.True(t, ok)
				require.Len(t, sessions, 2)
				assert.Equal(t, []string{"Mon", "Tue"}, sessions[0].Days)
				assert.Equal(t, "Sunset Dinner", sessions[1].Name)
			},
		},
		{
			name:  "session menu available only",
			input: &Input{QueryType: string(QueryTypeSessionMenu), SessionID: "breakfast", AvailableOnly: true},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE session_id = $1 AND (available OR NOT $2)")).
					WithArgs("breakfast", true).
					WillReturnRows(menuItemRows())
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := createTestHandler(t)
			tt.mockQuery(mock)

			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			require.NotNil(t, output)
			tt.validateOutput(t, output)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		mockQuery     func(mock sqlmock.Sqlmock)
		expectCode    errors.ErrorCode
		expectRetries bool
	}{
		{
			name:       "nil input",
			expectCode: errors.ErrCodeInvalidFilterFormat,
		},
		{
			name:       "unknown query type",
			input:      &Input{QueryType: "franchise_full_details"},
			expectCode: errors.ErrCodeInvalidQueryType,
		},
		{
			name:       "menu item by id without id",
			input:      &Input{QueryType: string(QueryTypeMenuItemByID)},
			expectCode: errors.ErrCodeInvalidFilterFormat,
		},
		{
			name:       "session menu without session",
			input:      &Input{QueryType: string(QueryTypeSessionMenu)},
			expectCode: errors.ErrCodeInvalidFilterFormat,
		},
		{
			name:  "menu item missing",
			input: &Input{QueryType: string(QueryTypeMenuItemByID), MenuItemID: "item-404"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE m.id = $1")).
					WithArgs("item-404").
					WillReturnError(sql.ErrNoRows)
			},
			expectCode: errors.ErrCodeMenuItemNotFound,
		},
		{
			name:  "database failure",
			input: &Input{QueryType: string(QueryTypeMenuItems)},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items m")).
					WillReturnError(fmt.Errorf("connection reset by peer"))
			},
			expectCode:    errors.ErrCodeQueryExecutionFailed,
			expectRetries: true,
		},
		{
			name:  "connection lost",
			input: &Input{QueryType: string(QueryTypeDiningSessions)},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM dining_sessions")).
					WillReturnError(sql.ErrConnDone)
			},
			expectCode:    errors.ErrCodeDatabaseConnectionFailed,
			expectRetries: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := createTestHandler(t)
			if tt.mockQuery != nil {
				tt.mockQuery(mock)
			}

			output, err := handler.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, output)

			normalized := errors.Normalize(err)
			assert.Equal(t, tt.expectCode, normalized.Code)
			assert.Equal(t, tt.expectRetries, normalized.Retryable)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_Timeout(t *testing.T) {
	handler, mock := createTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM dining_sessions")).
		WillDelayFor(500 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := handler.Execute(ctx, &Input{QueryType: string(QueryTypeDiningSessions)})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeQueryTimeout, errors.Normalize(err).Code)
}
