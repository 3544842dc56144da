package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
)

// UserRepository defines the interface for authentication accounts
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// AdminRepository defines the interface for the admin allow-list, which is
// keyed by email like the original admins collection
type AdminRepository interface {
	// Upsert inserts or replaces the entry for admin.Email
	Upsert(ctx context.Context, admin *entity.Admin) error
	Delete(ctx context.Context, email string) error
	Exists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]entity.Admin, error)
}
