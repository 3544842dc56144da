package service

import (
	"context"
	"testing"

	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/internal/domain/repository"
	infraRepo "github.com/latia/admin-api/internal/infrastructure/repository"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/latia/admin-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) *ProductService {
	t.Helper()
	db := setupTestDB(t)
	return NewProductService(infraRepo.NewProductRepository(db), testHub())
}

func TestCreateProductConvertsStockToBaseUnits(t *testing.T) {
	svc := newProductService(t)

	product, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name:          "Tostadas",
		Price:         2.50,
		Stock:         3,
		StockUnitType: enum.UnitTypeBox,
		MinStock:      100,
		Packaging:     &entity.PackagingConfig{UnitsPerBag: 25, BagsPerBox: 20, BoxesPerPallet: 30},
	})
	require.NoError(t, err)

	// 3 boxes = 3 * 25 * 20 base units
	assert.Equal(t, int64(1500), product.Stock)
	assert.Equal(t, int64(250), product.Price)
}

func TestCreateProductRejectsPackagedUnitWithoutPackaging(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name:          "Salsa",
		Price:         1.00,
		Stock:         2,
		StockUnitType: enum.UnitTypeBag,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name:  "",
		Price: -1,
		Stock: -5,
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 3)
}

func TestCreateProductRejectsZeroPackagingMultiplier(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name:      "Tostadas",
		Price:     1.00,
		Packaging: &entity.PackagingConfig{UnitsPerBag: 0, BagsPerBox: 20, BoxesPerPallet: 30},
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestUpdateProductReplacesAllFields(t *testing.T) {
	svc := newProductService(t)

	product, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name:          "Tostadas",
		Price:         2.00,
		Stock:         100,
		StockUnitType: enum.UnitTypeUnit,
		MinStock:      10,
		Packaging:     &entity.PackagingConfig{UnitsPerBag: 25, BagsPerBox: 20, BoxesPerPallet: 30},
	})
	require.NoError(t, err)

	// Full replace: omitting packaging drops it
	updated, err := svc.UpdateProduct(context.Background(), product.ID, &ProductInput{
		Name:          "Tostadas grandes",
		Price:         3.00,
		Stock:         50,
		StockUnitType: enum.UnitTypeUnit,
		MinStock:      20,
	})
	require.NoError(t, err)

	assert.Equal(t, "Tostadas grandes", updated.Name)
	assert.Equal(t, int64(300), updated.Price)
	assert.Equal(t, int64(50), updated.Stock)
	assert.Nil(t, updated.Packaging)
	assert.False(t, updated.AllowsUnitType(enum.UnitTypeBag))
}

func TestLowStockProducts(t *testing.T) {
	svc := newProductService(t)

	low, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name: "Al límite", Price: 1, Stock: 5, StockUnitType: enum.UnitTypeUnit, MinStock: 5,
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), &ProductInput{
		Name: "Sobrado", Price: 1, Stock: 6, StockUnitType: enum.UnitTypeUnit, MinStock: 5,
	})
	require.NoError(t, err)

	products, err := svc.GetLowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}

func TestListProductsFilters(t *testing.T) {
	svc := newProductService(t)
	cocina := "Cocina"

	_, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name: "Tostadas de maíz", Price: 1, Stock: 10, StockUnitType: enum.UnitTypeUnit, Category: &cocina,
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), &ProductInput{
		Name: "Salsa verde", Price: 1, Stock: 10, StockUnitType: enum.UnitTypeUnit,
	})
	require.NoError(t, err)

	result, err := svc.ListProducts(context.Background(), &repository.ProductFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     "tostadas",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Tostadas de maíz", result.Items[0].Name)

	result, err = svc.ListProducts(context.Background(), &repository.ProductFilterParams{
		Pagination: pagination.DefaultPagination(),
		Category:   "Cocina",
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Pagination.Total)
}
