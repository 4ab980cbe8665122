package menu

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-ops/internal/models"
)

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_ListSessions(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"id", "name", "days", "start_time", "end_time", "capacity", "default_menu"}).
		AddRow("breakfast", "Breakfast", []byte("{Mon,Tue}"), "07:00", "11:00", 40, "Morning").
		AddRow("dinner", "Sunset Dinner", []byte("{}"), "18:00", "22:00", 80, "Evening")
	mock.ExpectQuery(regexp.QuoteMeta("FROM dining_sessions")).WillReturnRows(rows)

	sessions, err := repo.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, []string{"Mon", "Tue"}, sessions[0].Days)
	assert.Equal(t, "Mon, Tue 07:00-11:00", sessions[0].Schedule())
	assert.Equal(t, "Daily 18:00-22:00", sessions[1].Schedule())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListMenuItems(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "category", "price", "description", "vegetarian", "gluten_free",
		"dairy_free", "popular", "allergens", "satisfaction", "image",
	}).
		AddRow("item-1", "Shakshuka", "Mains", 12.5, "Eggs in tomato", true, true, false, true, []byte("{eggs}"), 4.6, nil).
		AddRow("item-2", "Pho", "Soups", 9.0, "", false, false, true, false, []byte("{}"), nil, "pho.jpg")
	mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items")).WillReturnRows(rows)

	items, err := repo.ListMenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, []string{"eggs"}, items[0].Allergens)
	require.NotNil(t, items[0].Satisfaction)
	assert.Equal(t, 4.6, *items[0].Satisfaction)
	assert.Nil(t, items[0].Image)

	assert.Nil(t, items[1].Satisfaction)
	require.NotNil(t, items[1].Image)
	assert.Equal(t, "pho.jpg", *items[1].Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_InsertMapping_NoDuplicates(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (menu_item_id, session_id) DO NOTHING")).
		WithArgs("item-1", "lunch", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.InsertMapping(context.Background(), models.MenuSessionMapping{MenuItemID: "item-1", SessionID: "lunch", Available: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetAvailability_NotAssigned(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE menu_item_sessions SET available")).
		WithArgs("item-1", "dinner", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetAvailability(context.Background(), "item-1", "dinner", false)
	assert.True(t, stderrors.Is(err, ErrMenuItemNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteMenuItem(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		expectErr error
	}{
		{
			name: "rows then item in one transaction",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_item_sessions WHERE menu_item_id = $1")).
					WithArgs("item-2").
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_items WHERE id = $1")).
					WithArgs("item-2").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "item delete failure rolls back the rows",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_item_sessions")).
					WithArgs("item-2").
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_items")).
					WithArgs("item-2").
					WillReturnError(stderrors.New("lock timeout"))
				mock.ExpectRollback()
			},
			expectErr: stderrors.New("delete menu item: lock timeout"),
		},
		{
			name: "missing item rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_item_sessions")).
					WithArgs("item-2").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_items")).
					WithArgs("item-2").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			expectErr: ErrMenuItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setup(mock)

			err := repo.DeleteMenuItem(context.Background(), "item-2")
			if tt.expectErr == nil {
				require.NoError(t, err)
			} else if tt.expectErr == ErrMenuItemNotFound {
				assert.True(t, stderrors.Is(err, ErrMenuItemNotFound))
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.expectErr.Error(), err.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_SaveMenuItem(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO menu_items")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("NOT (session_id = ANY($2))")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO menu_item_sessions")).
		WithArgs("item-1", "breakfast", true).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO menu_item_sessions")).
		WithArgs("item-1", "lunch", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SaveMenuItem(context.Background(),
		models.MenuItem{ID: "item-1", Name: "Shakshuka", Category: "Mains", Price: 12.5, Allergens: []string{"eggs"}},
		[]models.MenuSessionMapping{
			{MenuItemID: "item-1", SessionID: "breakfast", Available: true},
			{MenuItemID: "item-1", SessionID: "lunch", Available: false},
		})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Migrate(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS menu_item_sessions")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
