package service

import (
	"context"
	"errors"
	"time"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/brightpost/auth-service/internal/auth/dto"
	customErrors "github.com/brightpost/auth-service/internal/auth/errors"
	"github.com/brightpost/auth-service/internal/auth/hash"
	"github.com/brightpost/auth-service/internal/auth/model"
	"github.com/brightpost/auth-service/internal/auth/token"
	"github.com/brightpost/auth-service/internal/config"
	"github.com/brightpost/auth-service/internal/repo"
)

type authService struct {
	userRepo repo.UserRepo
	hasher   hash.Hasher
	issuer   token.Issuer
	cfg      *config.Config
	v        *validate.Validate
}

func (a *authService) Signup(ctx context.Context, in dto.SignupDTO) (model.PublicUser, error) {
	if err := a.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(in.Password + a.cfg.PasswordPepper)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Signup")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: passwordHash,
		Role:         model.DefaultRole,
		Active:       true,
	}

	created, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.PublicUser{}, customErrors.ErrCredentialsTaken
		}
		return model.PublicUser{}, err
	}

	return created.Public(), nil
}

func (a *authService) Signin(ctx context.Context, in dto.SigninDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.validateUser(ctx, in.Email, in.Password)
	if err != nil {
		return model.TokenPair{}, err
	}

	return a.issueTokens(ctx, user)
}

func (a *authService) RefreshTokens(ctx context.Context, userID uuid.UUID, refreshToken string) (model.TokenPair, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.TokenPair{}, customErrors.ErrAccessDenied
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if user.RefreshTokenHash == nil {
		return model.TokenPair{}, customErrors.ErrAccessDenied
	}

	// A rotated refresh token must not be exchangeable twice: the presented
	// token has to match the digest stored by the signin or refresh that
	// issued it.
	if !a.hasher.Verify(*user.RefreshTokenHash, refreshToken) {
		return model.TokenPair{}, customErrors.ErrAccessDenied
	}

	return a.issueTokens(ctx, user)
}

func (a *authService) Logout(ctx context.Context, userID uuid.UUID) (bool, error) {
	if err := a.userRepo.ClearRefreshTokenHash(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}

func (a *authService) ChangePassword(ctx context.Context, in dto.ChangePasswordDTO, userID uuid.UUID) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrCredentialsIncorrect
	}
	if err != nil {
		return err
	}

	// Same credential check as signin, so a wrong current password surfaces
	// the same kind.
	if _, err := a.validateUser(ctx, user.Email, in.Password); err != nil {
		return err
	}

	newHash, err := a.hasher.Hash(in.NewPassword + a.cfg.PasswordPepper)
	if err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}

	// Deliberately leaves the refresh-token digest untouched: existing
	// sessions survive a password change.
	return a.userRepo.UpdatePasswordHash(ctx, userID, newHash)
}

// validateUser resolves email to a user and verifies the password. A missing
// user and a wrong password are indistinguishable to the caller.
func (a *authService) validateUser(ctx context.Context, email, password string) (model.User, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.User{}, customErrors.ErrCredentialsIncorrect
	}
	if err != nil {
		return model.User{}, err
	}

	if !a.hasher.Verify(user.PasswordHash, password+a.cfg.PasswordPepper) {
		return model.User{}, customErrors.ErrCredentialsIncorrect
	}
	return user, nil
}

// issueTokens mints a fresh pair and commits the rotation: the digest of the
// new refresh token overwrites whatever was stored before.
func (a *authService) issueTokens(ctx context.Context, user model.User) (model.TokenPair, error) {
	accessToken, atExp, err := a.issuer.IssueAccessToken(user)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueAccessToken")
	}

	refreshToken, rtExp, err := a.issuer.IssueRefreshToken(user)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueRefreshToken")
	}

	digest, err := a.hasher.Hash(refreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "HashRefreshToken")
	}
	if err := a.userRepo.UpdateRefreshTokenHash(ctx, user.ID, &digest); err != nil {
		return model.TokenPair{}, err
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       user.ID,
	}, nil
}
