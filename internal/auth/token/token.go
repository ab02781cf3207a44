package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brightpost/auth-service/internal/auth/model"
)

// Claims is the identity payload embedded in both token kinds. No role or
// permission data is carried; authorization happens elsewhere.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Issuer signs access/refresh token pairs over the same claims shape but with
// distinct secrets and distinct expiry windows. Signing only fails on
// misconfiguration, which the constructor rejects up front.
type Issuer interface {
	IssueAccessToken(u model.User) (token string, exp time.Time, err error)
	IssueRefreshToken(u model.User) (token string, exp time.Time, err error)
	VerifyAccessToken(raw string) (Claims, error)
	VerifyRefreshToken(raw string) (Claims, error)
}
