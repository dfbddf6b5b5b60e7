package auth

import (
	"context"
	"errors"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"go.uber.org/zap"
)

// Service handles registration and login against the users store.
type Service struct {
	tokens *TokenService
	users  domain.UsersRepository
}

func NewService(tokens *TokenService, users domain.UsersRepository) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
	}
}

// Register creates the user with an empty portfolio and returns a
// token for immediate authentication.
func (s *Service) Register(ctx context.Context, name, password string) (string, error) {
	if name == "" {
		return "", apperrs.ErrInvalidCredentials
	}

	if !IsPasswordValid(password) {
		return "", apperrs.ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := s.users.CreateUserWithPortfolio(ctx, &domain.User{
		Name:           name,
		HashedPassword: hashed,
	})
	if err != nil {
		return "", err
	}

	log.Info("user registered", zap.Int64("userID", user.ID), zap.String("name", name))

	return s.tokens.Issue(user.ID)
}

// Login verifies the credentials and returns a token and the user ID.
// Unknown names and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, name, password string) (string, int64, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrs.ErrUserNotFound) {
			return "", 0, apperrs.ErrInvalidCredentials
		}

		return "", 0, err
	}

	if !CheckPassword(password, user.HashedPassword) {
		return "", 0, apperrs.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", 0, err
	}

	return token, user.ID, nil
}
