package repository

import (
	"context"
	"time"

	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations. Sales are
// append-only: they are inserted by the invoice paid transition and never
// mutated, so there are no update or delete operations here.
type SaleRepository interface {
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// All returns every sale matching the filter, newest first, without
	// pagination (used by the export endpoints and the live listing)
	All(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, error)
	TotalAmount(ctx context.Context) (int64, error)
	// TotalAmountSince sums sales dated at or after the given instant
	TotalAmountSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	// Search matches the denormalized customer name, case-insensitively
	Search string
	Year   int
	Month  *int
}
