package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

type CreateUserParams struct {
	Name    string
	Role    *model.UserRole
	Contact *string
}

type UserService interface {
	List(ctx context.Context, role *model.UserRole) ([]model.UserProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*model.UserProfile, error)
	Create(ctx context.Context, params CreateUserParams) (*model.UserProfile, error)
}

type userService struct {
	users repository.UserRepository
	audit AuditRecorder
}

func NewUserService(users repository.UserRepository, audit AuditRecorder) UserService {
	return &userService{users: users, audit: audit}
}

func (s *userService) List(ctx context.Context, role *model.UserRole) ([]model.UserProfile, error) {
	return s.users.List(ctx, role)
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "user profile", id)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, params CreateUserParams) (*model.UserProfile, error) {
	user := &model.UserProfile{
		Name: params.Name,
		Role: model.UserRoleOperator,
	}
	if params.Role != nil {
		user.Role = *params.Role
	}
	if params.Contact != nil {
		user.Contact = *params.Contact
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "create", "user_profile", user.ID, map[string]interface{}{"role": string(user.Role)})
	return user, nil
}
