package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List filters with a case-insensitive substring match over name and
	// phone, ordered by name
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
	Count(ctx context.Context) (int64, error)
}
