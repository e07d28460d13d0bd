package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queryAll runs query and scans every row with scan. what names the entity in errors.
func queryAll[T any](ctx context.Context, q queryer, what, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", what, err)
	}

	return items, nil
}

// queryPage runs countQuery, then pageQuery with LIMIT/OFFSET arguments appended
// after args. pageQuery must reference them as the last two placeholders.
func queryPage[T any](
	ctx context.Context,
	q queryer,
	what, countQuery, pageQuery string,
	params models.PaginationParams,
	scan func(rowScanner) (T, error),
	args ...any,
) (*models.PaginationResponse[T], error) {
	var totalRows int
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&totalRows); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", what, err)
	}

	pageArgs := append(append([]any{}, args...), params.PageSize, params.Offset())
	items, err := queryAll(ctx, q, what, pageQuery, scan, pageArgs...)
	if err != nil {
		return nil, err
	}

	return models.NewPagedResponse(items, totalRows, params.PageSize), nil
}
