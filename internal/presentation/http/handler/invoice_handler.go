package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/internal/presentation/http/dto/request"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
	"github.com/latia/admin-api/pkg/pagination"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	hub            *watch.Hub
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, hub *watch.Hub) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, hub: hub}
}

func (h *InvoiceHandler) buildInput(c *gin.Context, req *request.InvoiceRequest) (*service.InvoiceInput, bool) {
	input := &service.InvoiceInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
	}

	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			response.BadRequest(c, "Invalid client ID format")
			return nil, false
		}
		input.ClientID = &clientID
	}

	for _, line := range req.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID format")
			return nil, false
		}
		unitType, err := parseUnitType(line.UnitType)
		if err != nil {
			response.Error(c, err)
			return nil, false
		}
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		input.Lines = append(input.Lines, service.InvoiceLineInput{
			ProductID: productID,
			UnitType:  unitType,
			Quantity:  quantity,
		})
	}

	return input, true
}

// Create handles creating an invoice (always pending)
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.buildInput(c, &req)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Update handles the explicit invoice edit (no lifecycle side effects)
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req request.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.buildInput(c, &req)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Get handles retrieving a single invoice with its items
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.Status != "" {
		status, ok := enum.ParseInvoiceStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Invalid status filter: "+filter.Status)
			return
		}
		params.Status = &status
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// MarkPaid handles the pending -> paid transition
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as paid", invoice)
}

// MarkDelivered handles the paid -> delivered transition
func (h *InvoiceHandler) MarkDelivered(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as delivered", invoice)
}

// Watch streams the full invoice snapshot over server-sent events
func (h *InvoiceHandler) Watch(c *gin.Context) {
	streamSnapshots(c, h.hub, watch.TopicInvoices, func(ctx context.Context) (interface{}, error) {
		return h.invoiceService.AllInvoices(ctx)
	})
}
