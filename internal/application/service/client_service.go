package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/pkg/apperror"
	"github.com/latia/admin-api/pkg/pagination"
)

// ClientService handles the saved-client directory
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// ClientInput represents the create/update client input
type ClientInput struct {
	Name    string
	Phone   string
	Address string
	Email   *string
}

func (in *ClientInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if in.Phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "Phone is required"})
	}
	if in.Address == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "address", Message: "Address is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *ClientInput) (*entity.Client, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	client := &entity.Client{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Email:   input.Email,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClient replaces the client's fields. Invoices that reference the
// client keep their denormalized snapshot.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input *ClientInput) (*entity.Client, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	client.Name = input.Name
	client.Phone = input.Phone
	client.Address = input.Address
	client.Email = input.Email

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients, searching name and phone case-insensitively
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// DeleteClient removes a client. Invoices keep their denormalized customer
// fields, so history stays readable.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	return s.clientRepo.Delete(ctx, id)
}
