package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
)

type UserRepository interface {
	List(ctx context.Context, role *model.UserRole) ([]model.UserProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error)
	Create(ctx context.Context, user *model.UserProfile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context, role *model.UserRole) ([]model.UserProfile, error) {
	q := r.db.WithContext(ctx)
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	var users []model.UserProfile
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.UserProfile) error {
	return r.db.WithContext(ctx).Create(user).Error
}
