package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/pkg/pagination"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	// All returns every expense matching the filter, newest first, without
	// pagination (used by the export endpoints)
	All(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, error)
	TotalAmount(ctx context.Context) (int64, error)
}

// ExpenseFilterParams contains filtering parameters for expense queries.
// Year selects a calendar year; Month narrows to a month within it (0-11,
// nil meaning the whole year); Category "" means all categories.
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	Year       int
	Month      *int
	Category   string
	Search     string
}

// ExpenseCategoryRepository defines the interface for the category
// suggestion list
type ExpenseCategoryRepository interface {
	Create(ctx context.Context, category *entity.ExpenseCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.ExpenseCategory, error)
	GetByName(ctx context.Context, name string) (*entity.ExpenseCategory, error)
}
