package service

import (
	"context"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// pagedSource is the read shape shared by every listing repository
type pagedSource[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[T], error)
}

// list returns every row when params is nil and one page otherwise.
// Both shapes carry totalRows and totalPages.
func list[T any](ctx context.Context, src pagedSource[T], params *models.PaginationParams) (*models.PaginationResponse[T], error) {
	if params == nil {
		items, err := src.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return models.NewUnpagedResponse(items), nil
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return src.GetPage(ctx, *params)
}
