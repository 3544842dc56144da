package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/latia/admin-api/pkg/pagination"
)

// defaultCustomerName is recorded on a sale when the invoice has no
// customer name
const defaultCustomerName = "Cliente General"

// InvoiceService handles the invoice lifecycle: assembly, explicit edits and
// the pending -> paid -> delivered transitions with their side effects.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	hub         *watch.Hub
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	hub *watch.Hub,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		hub:         hub,
	}
}

// InvoiceLineInput is one requested invoice line
type InvoiceLineInput struct {
	ProductID uuid.UUID
	UnitType  enum.UnitType
	Quantity  int64
}

// InvoiceInput represents the create/update invoice input. Either ClientID
// or the free-form customer fields identify the buyer.
type InvoiceInput struct {
	ClientID        *uuid.UUID
	CustomerName    string
	CustomerEmail   *string
	CustomerPhone   *string
	CustomerAddress *string
	Lines           []InvoiceLineInput
}

// assemble runs the input through the builder, freezing prices and
// conversion factors from the current catalog
func (s *InvoiceService) assemble(ctx context.Context, input *InvoiceInput) (*entity.Invoice, error) {
	builder := NewInvoiceBuilder()

	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		builder.SetClient(client)
	} else {
		builder.SetCustomer(input.CustomerName, input.CustomerEmail, input.CustomerPhone, input.CustomerAddress)
	}

	ids := make([]uuid.UUID, 0, len(input.Lines))
	for _, line := range input.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, line := range input.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		if err := builder.AddItemN(product, line.UnitType, line.Quantity); err != nil {
			return nil, err
		}
	}

	return builder.Build()
}

// CreateInvoice assembles and persists a new pending invoice
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *InvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.assemble(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TopicInvoices)
	return invoice, nil
}

// UpdateInvoice replaces the invoice's customer fields and items. This is
// the explicit-edit path: it reprices lines from the current catalog and
// never replays lifecycle side effects, whatever the invoice status is.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *InvoiceInput) (*entity.Invoice, error) {
	existing, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	assembled, err := s.assemble(ctx, input)
	if err != nil {
		return nil, err
	}

	existing.ClientID = assembled.ClientID
	existing.CustomerName = assembled.CustomerName
	existing.CustomerEmail = assembled.CustomerEmail
	existing.CustomerPhone = assembled.CustomerPhone
	existing.CustomerAddress = assembled.CustomerAddress
	existing.Total = assembled.Total

	if err := s.invoiceRepo.ReplaceItems(ctx, existing, assembled.Items); err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TopicInvoices)
	return existing, nil
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// AllInvoices returns every invoice, newest first
func (s *InvoiceService) AllInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return s.invoiceRepo.All(ctx)
}

// DeleteInvoice removes an invoice and its items. Sales already recorded
// for it are kept: revenue history is append-only.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Notify(watch.TopicInvoices)
	return nil
}

// MarkPaid transitions a pending invoice to paid, creating exactly one Sale
// with the invoice total and an item snapshot. Re-invoking the transition on
// an invoice that already left pending fails with an illegal-transition
// error and leaves the sales history untouched.
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Status.CanTransitionTo(enum.InvoiceStatusPaid) {
		return nil, apperror.ErrInvalidTransition
	}

	customerName := invoice.CustomerName
	if customerName == "" {
		customerName = defaultCustomerName
	}

	sale := &entity.Sale{
		InvoiceID:    invoice.ID,
		CustomerName: customerName,
		Amount:       invoice.Total,
		Date:         time.Now(),
		Items:        entity.NewSaleItems(invoice.Items),
	}

	updated, err := s.invoiceRepo.MarkPaid(ctx, invoice, sale)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race: someone else moved the invoice out of pending first
		return nil, apperror.ErrInvalidTransition
	}

	s.hub.Notify(watch.TopicInvoices, watch.TopicSales)
	return invoice, nil
}

// MarkDelivered transitions a paid invoice to delivered and deducts
// quantity * conversion factor base units per line from the referenced
// products. Deductions are accumulated per product before applying, do not
// clamp at zero, and silently skip products that were deleted since the
// invoice was written.
func (s *InvoiceService) MarkDelivered(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Status.CanTransitionTo(enum.InvoiceStatusDelivered) {
		return nil, apperror.ErrInvalidTransition
	}

	deductions := make(map[uuid.UUID]int64, len(invoice.Items))
	for i := range invoice.Items {
		deductions[invoice.Items[i].ProductID] += invoice.Items[i].BaseUnits()
	}

	updated, err := s.invoiceRepo.MarkDelivered(ctx, id, deductions)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.ErrInvalidTransition
	}

	now := time.Now()
	invoice.Status = enum.InvoiceStatusDelivered
	invoice.DeliveredAt = &now

	s.hub.Notify(watch.TopicInvoices, watch.TopicProducts)
	return invoice, nil
}
