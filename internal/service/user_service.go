package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/repository"
	"github.com/sefazor/meetapp-backend/pkg/bcrypt"
	"github.com/sefazor/meetapp-backend/pkg/utils"
)

type UserService struct {
	users     UserStore
	validator *utils.Validator
}

func NewUserService(users UserStore, validator *utils.Validator) *UserService {
	return &UserService{
		users:     users,
		validator: validator,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// Update changes the profile. A new password needs the old one and a matching confirmation.
func (s *UserService) Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error) {
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.Password != nil {
		if req.OldPassword == nil {
			return nil, validationError(errors.New("oldPassword is required to change the password"))
		}
		if req.ConfirmPassword == nil || *req.ConfirmPassword != *req.Password {
			return nil, validationError(errors.New("confirmPassword does not match password"))
		}
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.users.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			return nil, ErrUserExists
		}
		user.Email = *req.Email
	}

	if req.OldPassword != nil {
		if err := bcrypt.ComparePassword(user.PasswordHash, *req.OldPassword); err != nil {
			return nil, ErrPasswordMismatch
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hashed, err := bcrypt.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
