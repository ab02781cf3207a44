package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brightpost/auth-service/internal/auth/dto"
	customErrors "github.com/brightpost/auth-service/internal/auth/errors"
	"github.com/brightpost/auth-service/internal/auth/model"
	"github.com/brightpost/auth-service/internal/auth/service"
	"github.com/brightpost/auth-service/internal/auth/token"
	"github.com/brightpost/auth-service/internal/transport/http/middleware"
)

type Handler struct {
	svc    service.AuthService
	issuer token.Issuer
	log    *zap.Logger
}

func NewHandler(svc service.AuthService, issuer token.Issuer, log *zap.Logger) *Handler {
	return &Handler{svc: svc, issuer: issuer, log: log}
}

func (h *Handler) Register(r *gin.Engine) {
	auth := r.Group("/auth")
	auth.POST("/signup", h.signup)
	auth.POST("/signin", h.signin)
	auth.POST("/logout", middleware.RequireRefreshToken(h.issuer), h.logout)
	auth.POST("/refresh", middleware.RequireRefreshToken(h.issuer), h.refresh)
	auth.POST("/password", middleware.RequireAccessToken(h.issuer), h.changePassword)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
}

func (h *Handler) signup(c *gin.Context) {
	var body dto.SignupDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) signin(c *gin.Context) {
	var body dto.SigninDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Signin(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeTokenPair(c, pair)
}

func (h *Handler) refresh(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	raw, ok2 := middleware.RefreshToken(c)
	if !ok || !ok2 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	pair, err := h.svc.RefreshTokens(c.Request.Context(), uid, raw)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeTokenPair(c, pair)
}

func (h *Handler) logout(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	success, err := h.svc.Logout(c.Request.Context(), uid)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": success})
}

func (h *Handler) changePassword(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var body dto.ChangePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), body, uid); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password has been successfully changed"})
}

func writeTokenPair(c *gin.Context, pair model.TokenPair) {
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int(pair.AccessTTL.Seconds()),
		"userId":       pair.UserID.String(),
	})
}

// handleError maps service error kinds onto stable status codes and messages.
// Internal detail never crosses this boundary.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsCredentialsTaken(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "credentials taken"})
	case customErrors.IsCredentialsIncorrect(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "credentials incorrect"})
	case customErrors.IsAccessDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case customErrors.IsTokenError(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	default:
		h.log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
