package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// Update performs a full replace of the mutable field set
	Update(ctx context.Context, product *entity.Product) error
	// Delete hard-deletes the product. Historical invoices keep their
	// denormalized name and price; no cascade check is performed.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// All returns every product ordered by name (the live listing snapshot)
	All(ctx context.Context) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
}
