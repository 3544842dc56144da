package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/config"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/internal/presentation/http/dto/request"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
	"github.com/latia/admin-api/pkg/pagination"
	"github.com/latia/admin-api/pkg/report"
)

// SaleHandler handles sales history HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
	hub         *watch.Hub
	company     report.CompanyInfo
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, hub *watch.Hub, cfg *config.CompanyConfig) *SaleHandler {
	return &SaleHandler{saleService: saleService, hub: hub, company: companyInfo(cfg)}
}

func saleFilterParams(filter *request.SaleFilterRequest) *repository.SaleFilterParams {
	return &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
		Year:   filter.Year,
		Month:  filter.Month,
	}
}

// List handles listing sales with customer search and year/month filters
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), saleFilterParams(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

func saleFilterLine(filter *request.SaleFilterRequest) string {
	var parts []string
	if filter.Year != 0 {
		parts = append(parts, fmt.Sprintf("Año: %d", filter.Year))
	}
	if filter.Month != nil {
		parts = append(parts, "Mes: "+report.MonthName(*filter.Month))
	}
	if filter.Search != "" {
		parts = append(parts, "Búsqueda: "+filter.Search)
	}
	if len(parts) == 0 {
		return "Todos los registros"
	}
	return strings.Join(parts, ", ")
}

// Export handles downloading the filtered sales history as an Excel workbook
// or a printable PDF report
func (h *SaleHandler) Export(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		buf, err := h.saleService.ExportSales(c.Request.Context(), saleFilterParams(&filter))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="ventas.xlsx"`)
		c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	case "pdf":
		sales, err := h.saleService.AllSales(c.Request.Context(), saleFilterParams(&filter))
		if err != nil {
			response.Error(c, err)
			return
		}
		buf, err := report.SalesReportPDF(h.company, saleFilterLine(&filter), sales)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="ventas.pdf"`)
		c.Data(200, "application/pdf", buf.Bytes())
	default:
		response.BadRequest(c, "Unsupported export format")
	}
}

// Watch streams the full sales snapshot over server-sent events
func (h *SaleHandler) Watch(c *gin.Context) {
	streamSnapshots(c, h.hub, watch.TopicSales, func(ctx context.Context) (interface{}, error) {
		return h.saleService.AllSales(ctx, &repository.SaleFilterParams{})
	})
}
