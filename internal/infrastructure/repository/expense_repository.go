package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	domainRepo "github.com/latia/admin-api/internal/domain/repository"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) filtered(ctx context.Context, params *domainRepo.ExpenseFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Expense{})

	if params.Year != 0 {
		start, end := dateRange(params.Year, params.Month)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		query = query.Where("LOWER(description) LIKE LOWER(?)", "%"+params.Search+"%")
	}

	return query
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.filtered(ctx, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) All(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := r.filtered(ctx, params).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) TotalAmount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

type expenseCategoryRepository struct {
	db *gorm.DB
}

// NewExpenseCategoryRepository creates a new expense category repository
func NewExpenseCategoryRepository(db *gorm.DB) domainRepo.ExpenseCategoryRepository {
	return &expenseCategoryRepository{db: db}
}

func (r *expenseCategoryRepository) Create(ctx context.Context, category *entity.ExpenseCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *expenseCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ExpenseCategory{}, "id = ?", id).Error
}

func (r *expenseCategoryRepository) List(ctx context.Context) ([]entity.ExpenseCategory, error) {
	var categories []entity.ExpenseCategory
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *expenseCategoryRepository) GetByName(ctx context.Context, name string) (*entity.ExpenseCategory, error) {
	var category entity.ExpenseCategory
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}
