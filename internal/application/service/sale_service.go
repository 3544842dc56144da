package service

import (
	"bytes"
	"context"

	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/pkg/pagination"
	"github.com/latia/admin-api/pkg/report"
)

// SaleService exposes the append-only sales history and its Excel export
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// AllSales returns every sale matching the filter, newest first
func (s *SaleService) AllSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, error) {
	return s.saleRepo.All(ctx, params)
}

// ExportSales renders the filtered sales history as an Excel workbook
func (s *SaleService) ExportSales(ctx context.Context, params *repository.SaleFilterParams) (*bytes.Buffer, error) {
	sales, err := s.saleRepo.All(ctx, params)
	if err != nil {
		return nil, err
	}
	return report.SalesWorkbook(sales)
}
