package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	domainRepo "github.com/latia/admin-api/internal/domain/repository"
	"gorm.io/gorm"
)

// errStaleTransition aborts a lifecycle transaction whose status guard
// matched zero rows. It never leaves this package.
var errStaleTransition = errors.New("stale invoice transition")

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Where("LOWER(customer_name) LIKE LOWER(?)", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) All(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.InvoiceItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Invoice{}, "id = ?", id).Error
	})
}

// ReplaceItems overwrites the invoice header and its item rows in one
// transaction. The editing path deliberately goes through here instead of
// the lifecycle methods, so it never touches stock or sales.
func (r *invoiceRepository) ReplaceItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.InvoiceItem{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}

		invoice.Items = nil
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		invoice.Items = items
		return nil
	})
}

// MarkPaid inserts the sale and flips the invoice to paid in one
// transaction. The WHERE clause keeps the transition single-shot: if another
// request already moved the invoice out of pending, zero rows match and the
// sale insert rolls back with it.
func (r *invoiceRepository) MarkPaid(ctx context.Context, invoice *entity.Invoice, sale *entity.Sale) (bool, error) {
	now := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.Invoice{}).
			Where("id = ? AND status = ?", invoice.ID, enum.InvoiceStatusPending).
			Updates(map[string]interface{}{
				"status":  enum.InvoiceStatusPaid,
				"paid_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStaleTransition
		}
		return nil
	})

	if errors.Is(err, errStaleTransition) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	invoice.Status = enum.InvoiceStatusPaid
	invoice.PaidAt = &now
	return true, nil
}

// MarkDelivered flips the invoice to delivered and deducts base units from
// each referenced product, all in one transaction. Deductions use a relative
// UPDATE and do not clamp at zero; products that were deleted since the
// invoice was written simply match no row and are skipped.
func (r *invoiceRepository) MarkDelivered(ctx context.Context, invoiceID uuid.UUID, deductions map[uuid.UUID]int64) (bool, error) {
	now := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Invoice{}).
			Where("id = ? AND status = ?", invoiceID, enum.InvoiceStatusPaid).
			Updates(map[string]interface{}{
				"status":       enum.InvoiceStatusDelivered,
				"delivered_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStaleTransition
		}

		for id, amount := range deductions {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Update("stock", gorm.Expr("stock - ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, errStaleTransition) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *invoiceRepository) CountByStatus(ctx context.Context, status enum.InvoiceStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}

func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).Count(&total).Error
	return total, err
}
