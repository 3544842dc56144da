package service

import (
	"context"
	"strings"

	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/pkg/apperror"
)

// AdminService manages the email allow-list that gates access to the panel.
// The configured super admin is always an admin and cannot be removed.
type AdminService struct {
	adminRepo       repository.AdminRepository
	superAdminEmail string
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repository.AdminRepository, superAdminEmail string) *AdminService {
	return &AdminService{
		adminRepo:       adminRepo,
		superAdminEmail: strings.ToLower(superAdminEmail),
	}
}

// IsAdmin reports whether the email may use the panel
func (s *AdminService) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(email)
	if s.superAdminEmail != "" && email == s.superAdminEmail {
		return true, nil
	}
	return s.adminRepo.Exists(ctx, email)
}

// IsSuperAdmin reports whether the email is the configured super admin
func (s *AdminService) IsSuperAdmin(email string) bool {
	return s.superAdminEmail != "" && strings.ToLower(email) == s.superAdminEmail
}

// ListAdmins returns the allow-list
func (s *AdminService) ListAdmins(ctx context.Context) ([]entity.Admin, error) {
	return s.adminRepo.List(ctx)
}

// AddAdmin grants panel access to an email
func (s *AdminService) AddAdmin(ctx context.Context, email, name string) (*entity.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "email", Message: "Email is required"},
		})
	}

	admin := &entity.Admin{Email: email, Name: name}
	if err := s.adminRepo.Upsert(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// RemoveAdmin revokes panel access. The super admin entry is protected.
func (s *AdminService) RemoveAdmin(ctx context.Context, email string) error {
	email = strings.ToLower(email)
	if s.IsSuperAdmin(email) {
		return apperror.NewBadRequestError("Cannot remove the super admin")
	}
	return s.adminRepo.Delete(ctx, email)
}
