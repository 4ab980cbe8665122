package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"franchise-ops/internal/models"
)

// Schema creates the menu tables. Session position keeps display order stable.
const Schema = `
CREATE TABLE IF NOT EXISTS dining_sessions (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	days         TEXT[] NOT NULL DEFAULT '{}',
	start_time   TEXT NOT NULL,
	end_time     TEXT NOT NULL,
	capacity     INTEGER NOT NULL DEFAULT 0,
	default_menu TEXT NOT NULL DEFAULT '',
	position     SERIAL
);

CREATE TABLE IF NOT EXISTS menu_items (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	category     TEXT NOT NULL,
	price        NUMERIC(10,2) NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	vegetarian   BOOLEAN NOT NULL DEFAULT FALSE,
	gluten_free  BOOLEAN NOT NULL DEFAULT FALSE,
	dairy_free   BOOLEAN NOT NULL DEFAULT FALSE,
	popular      BOOLEAN NOT NULL DEFAULT FALSE,
	allergens    TEXT[] NOT NULL DEFAULT '{}',
	satisfaction DOUBLE PRECISION,
	image        TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS menu_item_sessions (
	menu_item_id TEXT NOT NULL REFERENCES menu_items(id),
	session_id   TEXT NOT NULL REFERENCES dining_sessions(id),
	available    BOOLEAN NOT NULL DEFAULT TRUE,
	PRIMARY KEY (menu_item_id, session_id)
);
`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate applies Schema.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply menu schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListSessions(ctx context.Context) ([]models.DiningSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, days, start_time, end_time, capacity, default_menu
		FROM dining_sessions
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.DiningSession
	for rows.Next() {
		var s models.DiningSession
		if err := rows.Scan(&s.ID, &s.Name, pq.Array(&s.Days), &s.StartTime, &s.EndTime, &s.Capacity, &s.DefaultMenu); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, price, description, vegetarian, gluten_free,
		       dairy_free, popular, allergens, satisfaction, image
		FROM menu_items
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

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
		pq.Array(&item.Allergens), &satisfaction, &image,
	)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("scan menu item: %w", err)
	}
	if satisfaction.Valid {
		item.Satisfaction = &satisfaction.Float64
	}
	if image.Valid {
		item.Image = &image.String
	}
	return item, nil
}

func (r *PostgresRepository) ListMappings(ctx context.Context) ([]models.MenuSessionMapping, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT menu_item_id, session_id, available
		FROM menu_item_sessions
		ORDER BY menu_item_id, session_id`)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()

	var mappings []models.MenuSessionMapping
	for rows.Next() {
		var m models.MenuSessionMapping
		if err := rows.Scan(&m.MenuItemID, &m.SessionID, &m.Available); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

func (r *PostgresRepository) InsertMapping(ctx context.Context, m models.MenuSessionMapping) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_item_sessions (menu_item_id, session_id, available)
		VALUES ($1, $2, $3)
		ON CONFLICT (menu_item_id, session_id) DO NOTHING`,
		m.MenuItemID, m.SessionID, m.Available)
	if err != nil {
		return fmt.Errorf("insert mapping: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteMapping(ctx context.Context, menuItemID, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM menu_item_sessions
		WHERE menu_item_id = $1 AND session_id = $2`,
		menuItemID, sessionID)
	if err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetAvailability(ctx context.Context, menuItemID, sessionID string, available bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_item_sessions SET available = $3
		WHERE menu_item_id = $1 AND session_id = $2`,
		menuItemID, sessionID, available)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s not assigned to %s", ErrMenuItemNotFound, menuItemID, sessionID)
	}
	return nil
}

func (r *PostgresRepository) SaveMenuItem(ctx context.Context, item models.MenuItem, mappings []models.MenuSessionMapping) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, category, price, description, vegetarian,
		                        gluten_free, dairy_free, popular, allergens, satisfaction, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			description = EXCLUDED.description,
			vegetarian = EXCLUDED.vegetarian,
			gluten_free = EXCLUDED.gluten_free,
			dairy_free = EXCLUDED.dairy_free,
			popular = EXCLUDED.popular,
			allergens = EXCLUDED.allergens,
			satisfaction = EXCLUDED.satisfaction,
			image = EXCLUDED.image`,
		item.ID, item.Name, item.Category, item.Price, item.Description, item.Vegetarian,
		item.GlutenFree, item.DairyFree, item.Popular, pq.Array(item.Allergens),
		item.Satisfaction, item.Image)
	if err != nil {
		return fmt.Errorf("upsert menu item: %w", err)
	}

	sessionIDs := make([]string, len(mappings))
	for i, m := range mappings {
		sessionIDs[i] = m.SessionID
	}
	_, err = tx.ExecContext(ctx, `
		DELETE FROM menu_item_sessions
		WHERE menu_item_id = $1 AND NOT (session_id = ANY($2))`,
		item.ID, pq.Array(sessionIDs))
	if err != nil {
		return fmt.Errorf("prune mappings: %w", err)
	}

	for _, m := range mappings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO menu_item_sessions (menu_item_id, session_id, available)
			VALUES ($1, $2, $3)
			ON CONFLICT (menu_item_id, session_id) DO NOTHING`,
			item.ID, m.SessionID, m.Available)
		if err != nil {
			return fmt.Errorf("insert mapping %s: %w", m.SessionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, menuItemID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_item_sessions WHERE menu_item_id = $1`, menuItemID); err != nil {
		return fmt.Errorf("delete mappings: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, menuItemID)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, menuItemID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SaveSession(ctx context.Context, s models.DiningSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dining_sessions (id, name, days, start_time, end_time, capacity, default_menu)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			days = EXCLUDED.days,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			capacity = EXCLUDED.capacity,
			default_menu = EXCLUDED.default_menu`,
		s.ID, s.Name, pq.Array(s.Days), s.StartTime, s.EndTime, s.Capacity, s.DefaultMenu)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
