package entity

import (
	"encoding/json"
	"testing"

	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackagingFactor(t *testing.T) {
	packaging := &PackagingConfig{UnitsPerBag: 25, BagsPerBox: 20, BoxesPerPallet: 30}

	assert.Equal(t, int64(1), packaging.Factor(enum.UnitTypeUnit))
	assert.Equal(t, int64(25), packaging.Factor(enum.UnitTypeBag))
	assert.Equal(t, int64(500), packaging.Factor(enum.UnitTypeBox))
	assert.Equal(t, int64(15000), packaging.Factor(enum.UnitTypePallet))

	// The pallet factor is the product of the whole multiplier chain
	assert.Equal(t,
		packaging.UnitsPerBag*packaging.BagsPerBox*packaging.BoxesPerPallet,
		packaging.Factor(enum.UnitTypePallet))
}

func TestPackagingFactorNilConfig(t *testing.T) {
	var packaging *PackagingConfig
	assert.Equal(t, int64(1), packaging.Factor(enum.UnitTypeUnit))
	assert.Equal(t, int64(1), packaging.Factor(enum.UnitTypePallet))
}

func TestProductUnitPrice(t *testing.T) {
	product := &Product{
		Price:     200, // $2.00 per base unit
		Packaging: &PackagingConfig{UnitsPerBag: 25, BagsPerBox: 20, BoxesPerPallet: 30},
	}

	assert.Equal(t, int64(200), product.UnitPrice(enum.UnitTypeUnit))
	assert.Equal(t, int64(5000), product.UnitPrice(enum.UnitTypeBag))
	assert.Equal(t, int64(100000), product.UnitPrice(enum.UnitTypeBox))
}

func TestProductAllowsUnitType(t *testing.T) {
	plain := &Product{}
	assert.True(t, plain.AllowsUnitType(enum.UnitTypeUnit))
	assert.False(t, plain.AllowsUnitType(enum.UnitTypeBag))

	packaged := &Product{Packaging: &PackagingConfig{UnitsPerBag: 10, BagsPerBox: 5, BoxesPerPallet: 2}}
	assert.True(t, packaged.AllowsUnitType(enum.UnitTypeUnit))
	assert.True(t, packaged.AllowsUnitType(enum.UnitTypePallet))
}

func TestProductToBaseUnits(t *testing.T) {
	product := &Product{Packaging: &PackagingConfig{UnitsPerBag: 12, BagsPerBox: 4, BoxesPerPallet: 8}}

	assert.Equal(t, int64(7), product.ToBaseUnits(7, enum.UnitTypeUnit))
	assert.Equal(t, int64(36), product.ToBaseUnits(3, enum.UnitTypeBag))
	assert.Equal(t, int64(96), product.ToBaseUnits(2, enum.UnitTypeBox))
}

func TestProductIsLowStock(t *testing.T) {
	// The threshold is inclusive: exactly at minimum counts as low
	assert.True(t, (&Product{Stock: 5, MinStock: 5}).IsLowStock())
	assert.True(t, (&Product{Stock: 0, MinStock: 5}).IsLowStock())
	assert.False(t, (&Product{Stock: 6, MinStock: 5}).IsLowStock())
}

func TestProductJSONPriceDecimal(t *testing.T) {
	product := Product{Name: "Tostadas", Price: 1550}

	data, err := json.Marshal(product)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 15.5, decoded["price"])
}

func TestSetPriceFromDecimalRoundsToNearestCent(t *testing.T) {
	// Inputs like 2.55 have no exact binary representation; truncating the
	// cents would store them one cent low
	cases := map[float64]int64{
		1.15:  115,
		2.55:  255,
		4.35:  435,
		8.35:  835,
		29.35: 2935,
		15.50: 1550,
	}

	for input, want := range cases {
		var product Product
		product.SetPriceFromDecimal(input)
		assert.Equal(t, want, product.Price, "price %v", input)
	}
}

func TestInvoiceItemBaseUnits(t *testing.T) {
	item := &InvoiceItem{Quantity: 3, ConversionFactor: 500}
	assert.Equal(t, int64(1500), item.BaseUnits())
}

func TestNewSaleItemsSnapshotsPrices(t *testing.T) {
	items := []InvoiceItem{
		{Name: "Tostadas", Quantity: 2, UnitType: enum.UnitTypeBox, UnitPrice: 100000, Total: 200000, ConversionFactor: 500},
	}

	snapshots := NewSaleItems(items)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "Tostadas", snapshots[0].Name)
	assert.Equal(t, 1000.0, snapshots[0].UnitPrice)
	assert.Equal(t, 2000.0, snapshots[0].Total)
	assert.Equal(t, int64(500), snapshots[0].ConversionFactor)
}
