package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(price int64) *entity.Product {
	return &entity.Product{
		ID:        uuid.New(),
		Name:      "Tostadas",
		Price:     price,
		Packaging: &entity.PackagingConfig{UnitsPerBag: 25, BagsPerBox: 20, BoxesPerPallet: 30},
	}
}

func TestBuilderMergesSameProductAndUnit(t *testing.T) {
	product := testProduct(200)
	builder := NewInvoiceBuilder()

	require.NoError(t, builder.AddItem(product, enum.UnitTypeBag))
	require.NoError(t, builder.AddItemN(product, enum.UnitTypeBag, 2))

	items := builder.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)
	assert.Equal(t, int64(15000), items[0].Total)
}

func TestBuilderSeparateLinesPerUnitType(t *testing.T) {
	product := testProduct(200)
	builder := NewInvoiceBuilder()

	require.NoError(t, builder.AddItem(product, enum.UnitTypeUnit))
	require.NoError(t, builder.AddItem(product, enum.UnitTypeBox))

	require.Len(t, builder.Items(), 2)
	assert.Equal(t, int64(200+100000), builder.Total())
}

func TestBuilderFreezesPriceAtAddTime(t *testing.T) {
	product := testProduct(200)
	builder := NewInvoiceBuilder()

	require.NoError(t, builder.AddItem(product, enum.UnitTypeBag))

	// Catalog change after the line was added must not leak into the invoice
	product.Price = 999

	items := builder.Items()
	assert.Equal(t, int64(5000), items[0].UnitPrice)
	assert.Equal(t, int64(5000), builder.Total())
}

func TestBuilderUpdateQuantityZeroRemovesLine(t *testing.T) {
	product := testProduct(200)
	builder := NewInvoiceBuilder()

	require.NoError(t, builder.AddItemN(product, enum.UnitTypeUnit, 5))
	builder.UpdateQuantity(product.ID, enum.UnitTypeUnit, 0)
	assert.Empty(t, builder.Items())

	require.NoError(t, builder.AddItemN(product, enum.UnitTypeUnit, 5))
	builder.UpdateQuantity(product.ID, enum.UnitTypeUnit, -3)
	assert.Empty(t, builder.Items())
}

func TestBuilderRemoveItemOnlyDropsMatchingUnit(t *testing.T) {
	product := testProduct(200)
	builder := NewInvoiceBuilder()

	require.NoError(t, builder.AddItem(product, enum.UnitTypeUnit))
	require.NoError(t, builder.AddItem(product, enum.UnitTypeBag))

	builder.RemoveItem(product.ID, enum.UnitTypeUnit)

	items := builder.Items()
	require.Len(t, items, 1)
	assert.Equal(t, enum.UnitTypeBag, items[0].UnitType)
}

func TestBuilderRejectsUnitTypeWithoutPackaging(t *testing.T) {
	plain := &entity.Product{ID: uuid.New(), Name: "Salsa", Price: 100}
	builder := NewInvoiceBuilder()

	require.NoError(t, builder.AddItem(plain, enum.UnitTypeUnit))

	err := builder.AddItem(plain, enum.UnitTypeBox)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestBuilderRejectsNonPositiveQuantity(t *testing.T) {
	product := testProduct(200)
	builder := NewInvoiceBuilder()

	assert.Error(t, builder.AddItemN(product, enum.UnitTypeUnit, 0))
	assert.Error(t, builder.AddItemN(product, enum.UnitTypeUnit, -1))
}

func TestBuilderBuildValidation(t *testing.T) {
	_, err := NewInvoiceBuilder().Build()
	require.Error(t, err)

	// Items but no customer name
	builder := NewInvoiceBuilder()
	require.NoError(t, builder.AddItem(testProduct(200), enum.UnitTypeUnit))
	_, err = builder.Build()
	require.Error(t, err)

	// Customer but no items
	_, err = NewInvoiceBuilder().SetCustomer("Doña Mary", nil, nil, nil).Build()
	require.Error(t, err)
}

func TestBuilderBuildProducesPendingInvoice(t *testing.T) {
	product := testProduct(200)
	builder := NewInvoiceBuilder().SetCustomer("Doña Mary", nil, nil, nil)
	require.NoError(t, builder.AddItemN(product, enum.UnitTypeBox, 2))

	invoice, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "Doña Mary", invoice.CustomerName)
	assert.Equal(t, int64(200000), invoice.Total)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, int64(500), invoice.Items[0].ConversionFactor)
}

func TestBuilderSetClientCopiesContact(t *testing.T) {
	email := "mary@example.com"
	client := &entity.Client{
		ID:      uuid.New(),
		Name:    "Doña Mary",
		Email:   &email,
		Phone:   "555-0100",
		Address: "Calle 5 #12",
	}

	builder := NewInvoiceBuilder().SetClient(client)
	require.NoError(t, builder.AddItem(testProduct(200), enum.UnitTypeUnit))

	invoice, err := builder.Build()
	require.NoError(t, err)

	require.NotNil(t, invoice.ClientID)
	assert.Equal(t, client.ID, *invoice.ClientID)
	assert.Equal(t, "Doña Mary", invoice.CustomerName)
	require.NotNil(t, invoice.CustomerPhone)
	assert.Equal(t, "555-0100", *invoice.CustomerPhone)
}
