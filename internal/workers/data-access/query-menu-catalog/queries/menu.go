// internal/workers/data-access/query-menu-catalog/queries/menu.go
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"franchise-ops/internal/models"
)

// menuItemSelect joins each item with its session names in display order.
// Items without sessions get an empty array.
const menuItemSelect = `
	SELECT m.id, m.name, m.category, m.price, m.description, m.vegetarian,
	       m.gluten_free, m.dairy_free, m.popular, m.allergens, m.satisfaction, m.image,
	       COALESCE(array_agg(s.name ORDER BY s.position) FILTER (WHERE s.id IS NOT NULL), '{}') AS sessions
	FROM menu_items m
	LEFT JOIN menu_item_sessions ms ON ms.menu_item_id = m.id
	LEFT JOIN dining_sessions s ON s.id = ms.session_id`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row scanner) (models.MenuItem, error) {
	var (
		item         models.MenuItem
		satisfaction sql.NullFloat64
		image        sql.NullString
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Price, &item.Description,
		&item.Vegetarian, &item.GlutenFree, &item.DairyFree, &item.Popular,
		pq.Array(&item.Allergens), &satisfaction, &image, pq.Array(&item.Sessions),
	)
	if err != nil {
		return models.MenuItem{}, err
	}
	if satisfaction.Valid {
		item.Satisfaction = &satisfaction.Float64
	}
	if image.Valid {
		item.Image = &image.String
	}
	if item.Sessions == nil {
		item.Sessions = []string{}
	}
	if item.Allergens == nil {
		item.Allergens = []string{}
	}
	return item, nil
}

func collectMenuItems(rows *sql.Rows) ([]models.MenuItem, error) {
	defer rows.Close()
	results := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// MenuItems lists every menu item, optionally restricted to one category.
func MenuItems(ctx context.Context, db *sql.DB, params Params) (interface{}, int, int64, error) {
	start := time.Now()

	query := menuItemSelect
	var args []interface{}
	if params.Category != "" {
		query += ` WHERE m.category = $1`
		args = append(args, params.Category)
	}
	query += ` GROUP BY m.id ORDER BY m.created_at, m.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	results, err := collectMenuItems(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	return results, len(results), time.Since(start).Milliseconds(), nil
}

func MenuItemByID(ctx context.Context, db *sql.DB, params Params) (interface{}, int, int64, error) {
	if params.MenuItemID == "" {
		return nil, 0, 0, fmt.Errorf("%w: menuItemId", ErrMissingParam)
	}
	start := time.Now()

	row := db.QueryRowContext(ctx, menuItemSelect+` WHERE m.id = $1 GROUP BY m.id`, params.MenuItemID)
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, 0, 0, err
	}

	return item, 1, time.Since(start).Milliseconds(), nil
}

func DiningSessions(ctx context.Context, db *sql.DB, _ Params) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, days, start_time, end_time, capacity, default_menu
		FROM dining_sessions
		ORDER BY position, id`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results := []models.DiningSession{}
	for rows.Next() {
		var s models.DiningSession
		if err := rows.Scan(&s.ID, &s.Name, pq.Array(&s.Days), &s.StartTime, &s.EndTime, &s.Capacity, &s.DefaultMenu); err != nil {
			return nil, 0, 0, fmt.Errorf("scan session: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	return results, len(results), time.Since(start).Milliseconds(), nil
}

// SessionMenu lists the items assigned to one session. AvailableOnly drops
// items marked unavailable for that session.
func SessionMenu(ctx context.Context, db *sql.DB, params Params) (interface{}, int, int64, error) {
	if params.SessionID == "" {
		return nil, 0, 0, fmt.Errorf("%w: sessionId", ErrMissingParam)
	}
	start := time.Now()

	query := menuItemSelect + `
	WHERE m.id IN (
		SELECT menu_item_id FROM menu_item_sessions
		WHERE session_id = $1 AND (available OR NOT $2)
	)
	GROUP BY m.id ORDER BY m.created_at, m.id`

	rows, err := db.QueryContext(ctx, query, params.SessionID, params.AvailableOnly)
	if err != nil {
		return nil, 0, 0, err
	}
	results, err := collectMenuItems(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	return results, len(results), time.Since(start).Milliseconds(), nil
}
