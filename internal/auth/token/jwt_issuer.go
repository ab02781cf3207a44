package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	customErrors "github.com/brightpost/auth-service/internal/auth/errors"
	"github.com/brightpost/auth-service/internal/auth/model"
	"github.com/brightpost/auth-service/internal/config"
)

type jwtIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	audience      string
}

func NewJWTIssuer(cfg *config.Config) (Issuer, error) {
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, errors.New("token: signing secret not configured")
	}
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		return nil, errors.New("token: access and refresh secrets must differ")
	}
	return &jwtIssuer{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.JWTIssuer,
		audience:      cfg.JWTAudience,
	}, nil
}

func (j *jwtIssuer) IssueAccessToken(u model.User) (string, time.Time, error) {
	return j.issue(u, j.accessSecret, j.accessTTL)
}

func (j *jwtIssuer) IssueRefreshToken(u model.User) (string, time.Time, error) {
	return j.issue(u, j.refreshSecret, j.refreshTTL)
}

func (j *jwtIssuer) issue(u model.User, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
		},
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign token")
	}
	return signed, claims.ExpiresAt.Time, nil
}

func (j *jwtIssuer) VerifyAccessToken(raw string) (Claims, error) {
	return j.verify(raw, j.accessSecret)
}

func (j *jwtIssuer) VerifyRefreshToken(raw string) (Claims, error) {
	return j.verify(raw, j.refreshSecret)
}

func (j *jwtIssuer) verify(raw string, secret []byte) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	if !parsed.Valid {
		return Claims{}, customErrors.ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return Claims{}, customErrors.ErrTokenMalformed
	}
	return *claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return customErrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return customErrors.ErrTokenSignature
	default:
		return customErrors.ErrTokenMalformed
	}
}
