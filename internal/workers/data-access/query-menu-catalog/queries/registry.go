// internal/workers/data-access/query-menu-catalog/queries/registry.go
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"franchise-ops/internal/models"
)

var (
	ErrMissingParam     = errors.New("missing required parameter")
	ErrUnknownQueryType = errors.New("unknown query type")
)

// Params carries the arguments a query may read. Each query checks for the
// ones it needs.
type Params struct {
	MenuItemID    string
	SessionID     string
	Category      string
	AvailableOnly bool
}

// QueryFunc returns: data, rowCount, executionTime (ms), error
type QueryFunc func(ctx context.Context, db *sql.DB, params Params) (interface{}, int, int64, error)

var Registry = map[models.QueryType]QueryFunc{
	models.QueryTypeMenuItems:      MenuItems,
	models.QueryTypeMenuItemByID:   MenuItemByID,
	models.QueryTypeDiningSessions: DiningSessions,
	models.QueryTypeSessionMenu:    SessionMenu,
}

func Execute(ctx context.Context, db *sql.DB, queryType models.QueryType, params Params) (interface{}, int, int64, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}
	return fn(ctx, db, params)
}
