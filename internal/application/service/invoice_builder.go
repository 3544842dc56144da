package service

import (
	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/pkg/apperror"
)

// InvoiceBuilder accumulates invoice lines before they are committed.
// Prices and conversion factors are frozen the moment a line is added;
// catalog edits made while an invoice is being assembled do not leak in.
// Lines are merged on the (product, unit type) pair, so the same product can
// appear once per packaging level.
type InvoiceBuilder struct {
	customerName    string
	customerEmail   *string
	customerPhone   *string
	customerAddress *string
	clientID        *uuid.UUID
	items           []entity.InvoiceItem
}

// NewInvoiceBuilder creates an empty builder
func NewInvoiceBuilder() *InvoiceBuilder {
	return &InvoiceBuilder{}
}

// SetCustomer sets the free-form customer fields
func (b *InvoiceBuilder) SetCustomer(name string, email, phone, address *string) *InvoiceBuilder {
	b.customerName = name
	b.customerEmail = email
	b.customerPhone = phone
	b.customerAddress = address
	return b
}

// SetClient links the invoice to a saved client and copies its contact
// fields onto the invoice snapshot
func (b *InvoiceBuilder) SetClient(client *entity.Client) *InvoiceBuilder {
	b.clientID = &client.ID
	b.customerName = client.Name
	b.customerEmail = client.Email
	if client.Phone != "" {
		phone := client.Phone
		b.customerPhone = &phone
	}
	if client.Address != "" {
		address := client.Address
		b.customerAddress = &address
	}
	return b
}

// AddItem adds one of the product in the given unit type, merging into an
// existing line for the same (product, unit type) pair.
func (b *InvoiceBuilder) AddItem(product *entity.Product, unitType enum.UnitType) error {
	return b.AddItemN(product, unitType, 1)
}

// AddItemN adds quantity of the product in the given unit type
func (b *InvoiceBuilder) AddItemN(product *entity.Product, unitType enum.UnitType, quantity int64) error {
	if !unitType.Valid() {
		return apperror.NewInvalidUnitTypeError(unitType.String())
	}
	if !product.AllowsUnitType(unitType) {
		return apperror.NewInvalidUnitTypeError(unitType.String())
	}
	if quantity <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	for i := range b.items {
		if b.items[i].ProductID == product.ID && b.items[i].UnitType == unitType {
			b.items[i].Quantity += quantity
			b.items[i].Total = b.items[i].Quantity * b.items[i].UnitPrice
			return nil
		}
	}

	unitPrice := product.UnitPrice(unitType)
	b.items = append(b.items, entity.InvoiceItem{
		ProductID:        product.ID,
		Name:             product.Name,
		Quantity:         quantity,
		UnitType:         unitType,
		UnitPrice:        unitPrice,
		Total:            quantity * unitPrice,
		ConversionFactor: product.Packaging.Factor(unitType),
	})
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line.
func (b *InvoiceBuilder) UpdateQuantity(productID uuid.UUID, unitType enum.UnitType, quantity int64) {
	for i := range b.items {
		if b.items[i].ProductID == productID && b.items[i].UnitType == unitType {
			if quantity <= 0 {
				b.items = append(b.items[:i], b.items[i+1:]...)
				return
			}
			b.items[i].Quantity = quantity
			b.items[i].Total = quantity * b.items[i].UnitPrice
			return
		}
	}
}

// RemoveItem drops the line for the (product, unit type) pair
func (b *InvoiceBuilder) RemoveItem(productID uuid.UUID, unitType enum.UnitType) {
	b.UpdateQuantity(productID, unitType, 0)
}

// Items returns the accumulated lines
func (b *InvoiceBuilder) Items() []entity.InvoiceItem {
	return b.items
}

// Total returns the running total in cents
func (b *InvoiceBuilder) Total() int64 {
	var total int64
	for i := range b.items {
		total += b.items[i].Total
	}
	return total
}

// Build validates the accumulated state and produces the invoice ready to be
// persisted, always in the pending status.
func (b *InvoiceBuilder) Build() (*entity.Invoice, error) {
	var fieldErrors []apperror.FieldError
	if b.customerName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "Customer name is required"})
	}
	if len(b.items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "Invoice needs at least one item"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	return &entity.Invoice{
		ClientID:        b.clientID,
		CustomerName:    b.customerName,
		CustomerEmail:   b.customerEmail,
		CustomerPhone:   b.customerPhone,
		CustomerAddress: b.customerAddress,
		Total:           b.Total(),
		Status:          enum.InvoiceStatusPending,
		Items:           b.items,
	}, nil
}
