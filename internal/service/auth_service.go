package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sefazor/meetapp-backend/internal/jobs"
	"github.com/sefazor/meetapp-backend/internal/models"
	"github.com/sefazor/meetapp-backend/internal/repository"
	"github.com/sefazor/meetapp-backend/pkg/bcrypt"
	"github.com/sefazor/meetapp-backend/pkg/utils"
	"go.uber.org/zap"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(userID uint, email string) (string, error)
}

type AuthService struct {
	users      UserStore
	tokens     TokenIssuer
	dispatcher Dispatcher
	validator  *utils.Validator
	log        *zap.Logger
}

func NewAuthService(users UserStore, tokens TokenIssuer, dispatcher Dispatcher, validator *utils.Validator, log *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		validator:  validator,
		log:        log.Named("auth"),
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	welcome := jobs.WelcomeMailPayload{Name: user.Name, Email: user.Email}
	if err := s.dispatcher.Enqueue(ctx, jobs.TypeWelcomeMail, welcome); err != nil {
		s.log.Warn("failed to enqueue welcome mail", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// CreateSession checks the credentials and issues a bearer token.
func (s *AuthService) CreateSession(ctx context.Context, req models.SessionRequest) (*models.SessionResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrPasswordMismatch
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &models.SessionResponse{
		Token: token,
		User:  *user,
	}, nil
}
