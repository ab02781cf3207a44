package service

import (
	"context"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/brightpost/auth-service/internal/auth/dto"
	"github.com/brightpost/auth-service/internal/auth/hash"
	"github.com/brightpost/auth-service/internal/auth/model"
	"github.com/brightpost/auth-service/internal/auth/token"
	"github.com/brightpost/auth-service/internal/config"
	"github.com/brightpost/auth-service/internal/repo"
)

// AuthService orchestrates signup, signin, logout, token refresh and password
// change. It owns the rotation invariant: every successful signin or refresh
// overwrites the stored refresh-token digest, invalidating the previous one.
type AuthService interface {
	Signup(ctx context.Context, in dto.SignupDTO) (model.PublicUser, error)
	Signin(ctx context.Context, in dto.SigninDTO) (model.TokenPair, error)
	RefreshTokens(ctx context.Context, userID uuid.UUID, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) (bool, error)
	ChangePassword(ctx context.Context, in dto.ChangePasswordDTO, userID uuid.UUID) error
}

func NewAuthService(userRepo repo.UserRepo, hasher hash.Hasher, issuer token.Issuer, cfg *config.Config, v *validate.Validate) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		cfg:      cfg,
		v:        v,
	}
}
