package service

import (
	"context"
	"errors"

	"gameportal-backend/internal/domains/user"
	"gameportal-backend/pkg/jwt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Service is the business logic contract for back-office users.
type Service interface {
	Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error)
	List(ctx context.Context) ([]user.User, error)
}

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) Service {
	return &userService{repo: repo, jwtManager: jwtManager}
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Same error as a wrong password so emails cannot be probed.
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("User logged in")

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u,
	}, nil
}

func (s *userService) List(ctx context.Context) ([]user.User, error) {
	return s.repo.List(ctx)
}
