package service

import (
	"context"

	"github.com/google/uuid"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			u := users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "required"}
	}
	if password == "" {
		return nil, &domain.ValidationError{Field: "password", Reason: "required"}
	}

	// Registration never grants admin.
	user := &domain.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
