package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/internal/presentation/http/dto/request"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
	"github.com/latia/admin-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	hub            *watch.Hub
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, hub *watch.Hub) *ProductHandler {
	return &ProductHandler{productService: productService, hub: hub}
}

func (h *ProductHandler) buildInput(c *gin.Context, req *request.ProductRequest) (*service.ProductInput, bool) {
	unitType, err := parseUnitType(req.StockUnitType)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	input := &service.ProductInput{
		Name:          req.Name,
		Price:         req.Price,
		Stock:         req.Stock,
		StockUnitType: unitType,
		MinStock:      req.MinStock,
		Category:      req.Category,
	}
	if req.Packaging != nil {
		input.Packaging = &entity.PackagingConfig{
			UnitsPerBag:    req.Packaging.UnitsPerBag,
			BagsPerBox:     req.Packaging.BagsPerBox,
			BoxesPerPallet: req.Packaging.BoxesPerPallet,
		}
	}
	return input, true
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.buildInput(c, &req)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product (full replace of the mutable field set)
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.buildInput(c, &req)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:   filter.Search,
		Category: filter.Category,
		LowStock: filter.LowStock,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// LowStock handles listing products at or below their minimum stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Watch streams the full catalog snapshot over server-sent events,
// refreshing after every catalog change
func (h *ProductHandler) Watch(c *gin.Context) {
	streamSnapshots(c, h.hub, watch.TopicProducts, func(ctx context.Context) (interface{}, error) {
		return h.productService.AllProducts(ctx)
	})
}
