package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/latia/admin-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	hub         *watch.Hub
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, hub *watch.Hub) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		hub:         hub,
	}
}

// ProductInput represents the create/update product input. Stock arrives as
// a count in StockUnitType and is converted to base units before persisting.
type ProductInput struct {
	Name          string
	Price         float64
	Stock         int64
	StockUnitType enum.UnitType
	MinStock      int64
	Category      *string
	Packaging     *entity.PackagingConfig
}

func (in *ProductInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if in.Price < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if in.Stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if in.MinStock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_stock", Message: "Minimum stock cannot be negative"})
	}
	if in.Packaging != nil {
		if in.Packaging.UnitsPerBag < 1 || in.Packaging.BagsPerBox < 1 || in.Packaging.BoxesPerPallet < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "packaging", Message: "Packaging multipliers must be at least 1"})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:      input.Name,
		MinStock:  input.MinStock,
		Category:  input.Category,
		Packaging: input.Packaging,
	}
	product.SetPriceFromDecimal(input.Price)

	if !product.AllowsUnitType(input.StockUnitType) {
		return nil, apperror.NewInvalidUnitTypeError(input.StockUnitType.String())
	}
	product.Stock = product.ToBaseUnits(input.Stock, input.StockUnitType)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TopicProducts)
	return product, nil
}

// UpdateProduct replaces the full mutable field set of a product. Historical
// invoices are untouched: they carry frozen names and prices.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	product.Name = input.Name
	product.MinStock = input.MinStock
	product.Category = input.Category
	product.Packaging = input.Packaging
	product.SetPriceFromDecimal(input.Price)

	if !product.AllowsUnitType(input.StockUnitType) {
		return nil, apperror.NewInvalidUnitTypeError(input.StockUnitType.String())
	}
	product.Stock = product.ToBaseUnits(input.Stock, input.StockUnitType)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TopicProducts)
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// AllProducts returns the full catalog snapshot ordered by name
func (s *ProductService) AllProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.All(ctx)
}

// GetLowStockProducts returns products at or below their minimum stock
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Notify(watch.TopicProducts)
	return nil
}
