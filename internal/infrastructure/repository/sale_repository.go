package repository

import (
	"context"
	"time"

	"github.com/latia/admin-api/internal/domain/entity"
	domainRepo "github.com/latia/admin-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// dateRange converts a year plus optional zero-based month into a half-open
// [start, end) interval. Computing the bounds in Go keeps the WHERE clause
// free of dialect-specific date functions.
func dateRange(year int, month *int) (time.Time, time.Time) {
	if month != nil {
		start := time.Date(year, time.Month(*month+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func (r *saleRepository) filtered(ctx context.Context, params *domainRepo.SaleFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("LOWER(customer_name) LIKE LOWER(?)", "%"+params.Search+"%")
	}

	if params.Year != 0 {
		start, end := dateRange(params.Year, params.Month)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	return query
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.filtered(ctx, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) All(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.filtered(ctx, params).
		Order("date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) TotalAmount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *saleRepository) TotalAmountSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date >= ?", since).
		Scan(&total).Error
	return total, err
}

func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).Count(&total).Error
	return total, err
}
