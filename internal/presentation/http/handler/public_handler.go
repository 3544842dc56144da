package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/config"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
	"github.com/latia/admin-api/pkg/report"
)

// PublicHandler serves the unauthenticated invoice views shared with
// customers: the JSON detail and the printable PDF.
type PublicHandler struct {
	invoiceService *service.InvoiceService
	company        report.CompanyInfo
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(invoiceService *service.InvoiceService, cfg *config.CompanyConfig) *PublicHandler {
	return &PublicHandler{invoiceService: invoiceService, company: companyInfo(cfg)}
}

// Invoice handles the shared invoice detail view
func (h *PublicHandler) Invoice(c *gin.Context) {
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

// InvoicePDF handles downloading the printable invoice document
func (h *PublicHandler) InvoicePDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := report.InvoicePDF(h.company, invoice)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="factura-%s.pdf"`, invoice.ID))
	c.Data(200, "application/pdf", buf.Bytes())
}
