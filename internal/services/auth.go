package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrEmptyPassword   = errors.New("password is required")
	ErrMissingToken    = errors.New("login response has no token")
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters")
)

type AuthAPI interface {
	Login(ctx context.Context, in models.LoginRequest) (*models.User, error)
	SignUp(ctx context.Context, in models.SignUpRequest) error
}

type AuthService struct {
	api AuthAPI
}

func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Login проверяет учётные данные у бэкенда и возвращает запись пользователя
// вместе с токеном.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	logger.WithCtx(ctx).Info("Логин пользователя (service)", zap.String("email", email))
	u, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		logger.WithCtx(ctx).Warn("Логин отклонён бэкендом", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	if u.Token == "" {
		return nil, ErrMissingToken
	}
	if u.Email == "" {
		u.Email = email
	}
	return u, nil
}

func (s *AuthService) SignUp(ctx context.Context, in models.SignUpRequest) error {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return err
	}
	in.Email = email
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrEmptyName
	}
	if len(in.Password) < 6 {
		return ErrPasswordTooWeak
	}
	if in.Role = strings.TrimSpace(in.Role); in.Role == "" {
		in.Role = "admin"
	}

	logger.WithCtx(ctx).Info("Регистрация пользователя (service)", zap.String("email", email), zap.String("role", in.Role))
	if err := s.api.SignUp(ctx, in); err != nil {
		logger.WithCtx(ctx).Warn("Регистрация отклонена бэкендом", zap.String("email", email), zap.Error(err))
		return err
	}
	return nil
}
