package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

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

// expenseDateLayout is the wire format for expense dates
const expenseDateLayout = "2006-01-02"

// ExpenseHandler handles expense HTTP requests. Create and update accept
// multipart form data so a receipt file can ride along.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	hub            *watch.Hub
	company        report.CompanyInfo
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService, hub *watch.Hub, cfg *config.CompanyConfig) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, hub: hub, company: companyInfo(cfg)}
}

func (h *ExpenseHandler) bindInput(c *gin.Context) (*service.ExpenseInput, bool) {
	var form request.ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid form data: "+err.Error())
		return nil, false
	}

	date, err := time.Parse(expenseDateLayout, form.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return nil, false
	}

	input := &service.ExpenseInput{
		Date:        date,
		Category:    form.Category,
		Amount:      form.Amount,
		Description: form.Description,
	}

	// The receipt is optional
	if file, err := c.FormFile("receipt"); err == nil {
		input.Receipt = file
	}

	return input, true
}

// Create handles recording an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// Update handles updating an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Get handles retrieving a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

func expenseFilterParams(filter *request.ExpenseFilterRequest) *repository.ExpenseFilterParams {
	return &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Year:     filter.Year,
		Month:    filter.Month,
		Category: filter.Category,
		Search:   filter.Search,
	}
}

// List handles listing expenses with year/month/category filters
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), expenseFilterParams(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Delete handles deleting an expense and its receipt
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func expenseFilterLine(filter *request.ExpenseFilterRequest) string {
	var parts []string
	if filter.Year != 0 {
		parts = append(parts, fmt.Sprintf("Año: %d", filter.Year))
	}
	if filter.Month != nil {
		parts = append(parts, "Mes: "+report.MonthName(*filter.Month))
	}
	if filter.Category != "" {
		parts = append(parts, "Categoría: "+filter.Category)
	}
	if filter.Search != "" {
		parts = append(parts, "Búsqueda: "+filter.Search)
	}
	if len(parts) == 0 {
		return "Todos los registros"
	}
	return strings.Join(parts, ", ")
}

// Export handles downloading the filtered expense history as an Excel
// workbook or a printable PDF report
func (h *ExpenseHandler) Export(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		buf, err := h.expenseService.ExportExpenses(c.Request.Context(), expenseFilterParams(&filter))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="gastos.xlsx"`)
		c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	case "pdf":
		expenses, err := h.expenseService.AllExpenses(c.Request.Context(), expenseFilterParams(&filter))
		if err != nil {
			response.Error(c, err)
			return
		}
		buf, err := report.ExpensesReportPDF(h.company, expenseFilterLine(&filter), expenses)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="gastos.pdf"`)
		c.Data(200, "application/pdf", buf.Bytes())
	default:
		response.BadRequest(c, "Unsupported export format")
	}
}

// ListCategories handles listing the category suggestion list
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	categories, err := h.expenseService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// AddCategory handles adding a category suggestion
func (h *ExpenseHandler) AddCategory(c *gin.Context) {
	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.expenseService.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category added successfully", category)
}

// RemoveCategory handles deleting a category suggestion
func (h *ExpenseHandler) RemoveCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.expenseService.RemoveCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Watch streams the full expense snapshot over server-sent events
func (h *ExpenseHandler) Watch(c *gin.Context) {
	streamSnapshots(c, h.hub, watch.TopicExpenses, func(ctx context.Context) (interface{}, error) {
		return h.expenseService.AllExpenses(ctx, &repository.ExpenseFilterParams{})
	})
}
