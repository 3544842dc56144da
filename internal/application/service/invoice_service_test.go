package service

import (
	"context"
	"testing"

	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/internal/infrastructure/repository"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type invoiceFixture struct {
	db         *gorm.DB
	invoiceSvc *InvoiceService
	productSvc *ProductService
	clientSvc  *ClientService
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	db := setupTestDB(t)
	hub := testHub()

	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	clientRepo := repository.NewClientRepository(db)

	return &invoiceFixture{
		db:         db,
		invoiceSvc: NewInvoiceService(invoiceRepo, productRepo, clientRepo, hub),
		productSvc: NewProductService(productRepo, hub),
		clientSvc:  NewClientService(clientRepo),
	}
}

// seedProduct creates the reference product: $2.00 per unit, packaged as
// 25 units/bag, 20 bags/box, 30 boxes/pallet, with 1000 units in stock.
func (f *invoiceFixture) seedProduct(t *testing.T) *entity.Product {
	t.Helper()
	product, err := f.productSvc.CreateProduct(context.Background(), &ProductInput{
		Name:          "Tostadas",
		Price:         2.00,
		Stock:         1000,
		StockUnitType: enum.UnitTypeUnit,
		MinStock:      100,
		Packaging:     &entity.PackagingConfig{UnitsPerBag: 25, BagsPerBox: 20, BoxesPerPallet: 30},
	})
	require.NoError(t, err)
	return product
}

func (f *invoiceFixture) createInvoice(t *testing.T, product *entity.Product, unitType enum.UnitType, quantity int64) *entity.Invoice {
	t.Helper()
	invoice, err := f.invoiceSvc.CreateInvoice(context.Background(), &InvoiceInput{
		CustomerName: "Doña Mary",
		Lines: []InvoiceLineInput{
			{ProductID: product.ID, UnitType: unitType, Quantity: quantity},
		},
	})
	require.NoError(t, err)
	return invoice
}

func (f *invoiceFixture) saleCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&entity.Sale{}).Count(&count).Error)
	return count
}

func TestCreateInvoiceFreezesBoxPrice(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)

	invoice := f.createInvoice(t, product, enum.UnitTypeBox, 1)

	// 1 box = 25 * 20 = 500 units at $2.00 each
	assert.Equal(t, int64(100000), invoice.Total)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, int64(100000), invoice.Items[0].UnitPrice)
	assert.Equal(t, int64(500), invoice.Items[0].ConversionFactor)
	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)

	// Catalog changes after creation must not touch the saved invoice
	_, err := f.productSvc.UpdateProduct(context.Background(), product.ID, &ProductInput{
		Name:          "Tostadas",
		Price:         9.99,
		Stock:         1000,
		StockUnitType: enum.UnitTypeUnit,
		MinStock:      100,
		Packaging:     product.Packaging,
	})
	require.NoError(t, err)

	saved, err := f.invoiceSvc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), saved.Total)
	assert.Equal(t, int64(100000), saved.Items[0].UnitPrice)
}

func TestCreateInvoiceRejectsUnknownProduct(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	require.NoError(t, f.productSvc.DeleteProduct(context.Background(), product.ID))

	_, err := f.invoiceSvc.CreateInvoice(context.Background(), &InvoiceInput{
		CustomerName: "Doña Mary",
		Lines:        []InvoiceLineInput{{ProductID: product.ID, UnitType: enum.UnitTypeUnit, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceFromSavedClient(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)

	client, err := f.clientSvc.CreateClient(context.Background(), &ClientInput{
		Name:    "Doña Mary",
		Phone:   "555-0100",
		Address: "Calle 5 #12",
	})
	require.NoError(t, err)

	invoice, err := f.invoiceSvc.CreateInvoice(context.Background(), &InvoiceInput{
		ClientID: &client.ID,
		Lines:    []InvoiceLineInput{{ProductID: product.ID, UnitType: enum.UnitTypeUnit, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NotNil(t, invoice.ClientID)
	assert.Equal(t, client.ID, *invoice.ClientID)
	assert.Equal(t, "Doña Mary", invoice.CustomerName)
	require.NotNil(t, invoice.CustomerPhone)
	assert.Equal(t, "555-0100", *invoice.CustomerPhone)
}

func TestUpdateInvoiceRepricesFromCatalog(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeBag, 2) // 2 * $50.00

	_, err := f.productSvc.UpdateProduct(context.Background(), product.ID, &ProductInput{
		Name:          "Tostadas",
		Price:         4.00,
		Stock:         1000,
		StockUnitType: enum.UnitTypeUnit,
		MinStock:      100,
		Packaging:     product.Packaging,
	})
	require.NoError(t, err)

	updated, err := f.invoiceSvc.UpdateInvoice(context.Background(), invoice.ID, &InvoiceInput{
		CustomerName: "Doña Mary",
		Lines:        []InvoiceLineInput{{ProductID: product.ID, UnitType: enum.UnitTypeBag, Quantity: 2}},
	})
	require.NoError(t, err)

	// The explicit edit path reprices from the current catalog
	assert.Equal(t, int64(20000), updated.Total)
}

func TestUpdateInvoiceNeverReplaysSideEffects(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeUnit, 10)

	_, err := f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), f.saleCount(t))

	// Editing a paid invoice is allowed but must not create another sale
	_, err = f.invoiceSvc.UpdateInvoice(context.Background(), invoice.ID, &InvoiceInput{
		CustomerName: "Doña Mary",
		Lines:        []InvoiceLineInput{{ProductID: product.ID, UnitType: enum.UnitTypeUnit, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.saleCount(t))
}

func TestMarkPaidCreatesExactlyOneSale(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeBox, 1)

	paid, err := f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	var sale entity.Sale
	require.NoError(t, f.db.First(&sale, "invoice_id = ?", invoice.ID).Error)
	assert.Equal(t, int64(100000), sale.Amount)
	assert.Equal(t, "Doña Mary", sale.CustomerName)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 1000.0, sale.Items[0].UnitPrice)

	// Paying again is an illegal transition and must not add a sale
	_, err = f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidTransition)
	assert.Equal(t, int64(1), f.saleCount(t))
}

func TestMarkPaidFallsBackToGenericCustomer(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)

	// An invoice persisted without a customer name (legacy rows) still
	// produces a readable sale record
	invoice := &entity.Invoice{
		CustomerName: "",
		Total:        5000,
		Status:       enum.InvoiceStatusPending,
		Items: []entity.InvoiceItem{
			{ProductID: product.ID, Name: product.Name, Quantity: 1, UnitType: enum.UnitTypeBag, UnitPrice: 5000, Total: 5000, ConversionFactor: 25},
		},
	}
	require.NoError(t, f.db.Create(invoice).Error)

	_, err := f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)

	var sale entity.Sale
	require.NoError(t, f.db.First(&sale, "invoice_id = ?", invoice.ID).Error)
	assert.Equal(t, "Cliente General", sale.CustomerName)
}

func TestMarkDeliveredDeductsStock(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeBox, 1)

	_, err := f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)

	delivered, err := f.invoiceSvc.MarkDelivered(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)

	// 1 box = 500 base units off the 1000 in stock
	refreshed, err := f.productSvc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), refreshed.Stock)
}

func TestMarkDeliveredDoesNotClampStock(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeBox, 3) // 1500 units > 1000 in stock

	_, err := f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)
	_, err = f.invoiceSvc.MarkDelivered(context.Background(), invoice.ID)
	require.NoError(t, err)

	refreshed, err := f.productSvc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-500), refreshed.Stock)
}

func TestMarkDeliveredSkipsDeletedProducts(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeBag, 2)

	_, err := f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)

	require.NoError(t, f.productSvc.DeleteProduct(context.Background(), product.ID))

	// Delivery still succeeds; the missing product is silently skipped
	delivered, err := f.invoiceSvc.MarkDelivered(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusDelivered, delivered.Status)
}

func TestMarkDeliveredRequiresPaid(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeUnit, 1)

	_, err := f.invoiceSvc.MarkDelivered(context.Background(), invoice.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidTransition)

	// Stock untouched by the failed transition
	refreshed, err := f.productSvc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), refreshed.Stock)
}

func TestDeleteInvoiceKeepsSales(t *testing.T) {
	f := newInvoiceFixture(t)
	product := f.seedProduct(t)
	invoice := f.createInvoice(t, product, enum.UnitTypeUnit, 3)

	_, err := f.invoiceSvc.MarkPaid(context.Background(), invoice.ID)
	require.NoError(t, err)

	require.NoError(t, f.invoiceSvc.DeleteInvoice(context.Background(), invoice.ID))

	_, err = f.invoiceSvc.GetInvoice(context.Background(), invoice.ID)
	require.Error(t, err)

	// Revenue history is append-only: the sale survives the invoice
	assert.Equal(t, int64(1), f.saleCount(t))

	var itemCount int64
	require.NoError(t, f.db.Model(&entity.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}
