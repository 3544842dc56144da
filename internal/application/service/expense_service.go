package service

import (
	"bytes"
	"context"
	"math"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/infrastructure/storage"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/latia/admin-api/pkg/pagination"
	"github.com/latia/admin-api/pkg/report"
)

// ExpenseService handles expense tracking, receipt files and the category
// suggestion list
type ExpenseService struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.ExpenseCategoryRepository
	receipts     storage.ReceiptStore
	hub          *watch.Hub
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	categoryRepo repository.ExpenseCategoryRepository,
	receipts storage.ReceiptStore,
	hub *watch.Hub,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		receipts:     receipts,
		hub:          hub,
	}
}

// ExpenseInput represents the create/update expense input. Category is free
// text: the suggestion list is a convenience, not a foreign key.
type ExpenseInput struct {
	Date        time.Time
	Category    string
	Amount      float64
	Description string
	Receipt     *multipart.FileHeader
}

func (in *ExpenseInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "Date is required"})
	}
	if in.Category == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if in.Amount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "Amount must be positive"})
	}
	if in.Description == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "description", Message: "Description is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateExpense records a new expense, storing the receipt file if provided
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense := &entity.Expense{
		Date:        input.Date,
		Category:    input.Category,
		Description: input.Description,
		Amount:      int64(math.Round(input.Amount * 100)),
	}

	if input.Receipt != nil {
		url, name, err := s.receipts.Save(input.Receipt)
		if err != nil {
			return nil, err
		}
		expense.ReceiptURL = &url
		expense.ReceiptName = &name
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TopicExpenses)
	return expense, nil
}

// UpdateExpense replaces the expense fields. A newly uploaded receipt
// replaces the stored file; without one the existing receipt is kept.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	expense.Date = input.Date
	expense.Category = input.Category
	expense.Description = input.Description
	expense.Amount = int64(math.Round(input.Amount * 100))

	if input.Receipt != nil {
		url, name, err := s.receipts.Save(input.Receipt)
		if err != nil {
			return nil, err
		}
		if expense.ReceiptURL != nil {
			// Best effort: a dangling file is preferable to a failed update
			_ = s.receipts.Remove(*expense.ReceiptURL)
		}
		expense.ReceiptURL = &url
		expense.ReceiptName = &name
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TopicExpenses)
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// AllExpenses returns every expense matching the filter, newest first
func (s *ExpenseService) AllExpenses(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, error) {
	return s.expenseRepo.All(ctx, params)
}

// DeleteExpense removes an expense and its stored receipt
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	if expense.ReceiptURL != nil {
		_ = s.receipts.Remove(*expense.ReceiptURL)
	}

	s.hub.Notify(watch.TopicExpenses)
	return nil
}

// ExportExpenses renders the filtered expense history as an Excel workbook
func (s *ExpenseService) ExportExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*bytes.Buffer, error) {
	expenses, err := s.expenseRepo.All(ctx, params)
	if err != nil {
		return nil, err
	}
	return report.ExpensesWorkbook(expenses)
}

// ListCategories returns the category suggestion list
func (s *ExpenseService) ListCategories(ctx context.Context) ([]entity.ExpenseCategory, error) {
	return s.categoryRepo.List(ctx)
}

// AddCategory adds a category suggestion, rejecting duplicates by name
func (s *ExpenseService) AddCategory(ctx context.Context, name string) (*entity.ExpenseCategory, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.ExpenseCategory{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RemoveCategory deletes a category suggestion. Expenses already recorded
// under it keep their free-text category value.
func (s *ExpenseService) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}
