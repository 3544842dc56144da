package service

import (
	"context"
	"time"

	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/internal/domain/repository"
)

// DashboardService aggregates the headline numbers for the admin home view
type DashboardService struct {
	saleRepo    repository.SaleRepository
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	expenseRepo repository.ExpenseRepository
	clientRepo  repository.ClientRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	expenseRepo repository.ExpenseRepository,
	clientRepo repository.ClientRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:    saleRepo,
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		expenseRepo: expenseRepo,
		clientRepo:  clientRepo,
	}
}

// DashboardStats holds the aggregated headline numbers. Monetary figures
// are in final display currency.
type DashboardStats struct {
	TotalSales      float64 `json:"total_sales"`
	SalesThisMonth  float64 `json:"sales_this_month"`
	TotalExpenses   float64 `json:"total_expenses"`
	PendingInvoices int64   `json:"pending_invoices"`
	TotalInvoices   int64   `json:"total_invoices"`
	TotalProducts   int64   `json:"total_products"`
	LowStockCount   int64   `json:"low_stock_count"`
	TotalClients    int64   `json:"total_clients"`
	TotalSalesCount int64   `json:"total_sales_count"`
}

// GetStats computes the dashboard aggregates
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	totalSales, err := s.saleRepo.TotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalSales = float64(totalSales) / 100

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthSales, err := s.saleRepo.TotalAmountSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	stats.SalesThisMonth = float64(monthSales) / 100

	totalExpenses, err := s.expenseRepo.TotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalExpenses = float64(totalExpenses) / 100

	if stats.PendingInvoices, err = s.invoiceRepo.CountByStatus(ctx, enum.InvoiceStatusPending); err != nil {
		return nil, err
	}
	if stats.TotalInvoices, err = s.invoiceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountLowStock(ctx); err != nil {
		return nil, err
	}
	if stats.TotalClients, err = s.clientRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSalesCount, err = s.saleRepo.Count(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
