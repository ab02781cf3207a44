package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightpost/auth-service/internal/auth/token"
)

const (
	ContextUserID       = "userID"
	ContextRefreshToken = "refreshToken"
)

// RequireRefreshToken authenticates the bearer token as a refresh token
// (signature and expiry) and passes the resulting user id and raw token to
// the handler as ordinary context values. The stored-digest match happens in
// the service, not here.
func RequireRefreshToken(issuer token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		claims, err := issuer.VerifyRefreshToken(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		uid, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, uid)
		c.Set(ContextRefreshToken, raw)
		c.Next()
	}
}

// RequireAccessToken authenticates the bearer token as an access token and
// exposes the subject id.
func RequireAccessToken(issuer token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		claims, err := issuer.VerifyAccessToken(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		uid, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, uid)
		c.Next()
	}
}

func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	uid, ok := v.(uuid.UUID)
	return uid, ok
}

func RefreshToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextRefreshToken)
	if !ok {
		return "", false
	}
	raw, ok := v.(string)
	return raw, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
}
