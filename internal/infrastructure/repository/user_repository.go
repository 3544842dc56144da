package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/entity"
	domainRepo "github.com/latia/admin-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin allow-list repository
func NewAdminRepository(db *gorm.DB) domainRepo.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Upsert(ctx context.Context, admin *entity.Admin) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).
		Create(admin).Error
}

func (r *adminRepository) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&entity.Admin{}, "email = ?", email).Error
}

func (r *adminRepository) Exists(ctx context.Context, email string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Admin{}).
		Where("email = ?", email).
		Count(&total).Error
	return total > 0, err
}

func (r *adminRepository) List(ctx context.Context) ([]entity.Admin, error) {
	var admins []entity.Admin
	err := r.db.WithContext(ctx).
		Order("email ASC").
		Find(&admins).Error
	return admins, err
}
