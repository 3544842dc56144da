package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Lifecycle transitions run as single transactions so side effects and the
// final status update commit or roll back together.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// All returns every invoice, newest first (the live listing snapshot)
	All(ctx context.Context) ([]entity.Invoice, error)
	// Delete removes the invoice together with its item rows
	Delete(ctx context.Context, id uuid.UUID) error
	// ReplaceItems overwrites the invoice header fields and its item rows.
	// This is the explicit-edit path: it never replays lifecycle side effects.
	ReplaceItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error
	// MarkPaid creates the sale and moves the invoice to paid in one
	// transaction. The status update is guarded by "status = pending" in the
	// WHERE clause; a stale transition reports updated=false and rolls the
	// sale back, so a duplicate Sale cannot be inserted.
	MarkPaid(ctx context.Context, invoice *entity.Invoice, sale *entity.Sale) (updated bool, err error)
	// MarkDelivered deducts base units from each referenced product and moves
	// the invoice to delivered in one transaction. Deductions do not clamp at
	// zero; a deduction against a product that no longer exists is skipped.
	// The status update is guarded by "status = paid".
	MarkDelivered(ctx context.Context, invoiceID uuid.UUID, deductions map[uuid.UUID]int64) (updated bool, err error)
	CountByStatus(ctx context.Context, status enum.InvoiceStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	// Search matches the denormalized customer name, case-insensitively
	Search string
	Status *enum.InvoiceStatus
}
