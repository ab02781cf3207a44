package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpost/auth-service/internal/auth/dto"
	authErrors "github.com/brightpost/auth-service/internal/auth/errors"
	"github.com/brightpost/auth-service/internal/auth/model"
	"github.com/brightpost/auth-service/internal/auth/token"
	"github.com/brightpost/auth-service/internal/config"
)

type serviceStub struct {
	signinErr  error
	refreshUID uuid.UUID
	refreshRT  string
	changed    bool
}

func (s *serviceStub) Signup(ctx context.Context, in dto.SignupDTO) (model.PublicUser, error) {
	return model.PublicUser{
		ID: uuid.New(), Email: in.Email, Username: in.Username,
		FirstName: in.FirstName, LastName: in.LastName,
		Role: model.DefaultRole, Active: true,
	}, nil
}

func (s *serviceStub) Signin(ctx context.Context, in dto.SigninDTO) (model.TokenPair, error) {
	if s.signinErr != nil {
		return model.TokenPair{}, s.signinErr
	}
	return model.TokenPair{AccessToken: "at", RefreshToken: "rt", AccessTTL: time.Minute, RefreshTTL: time.Hour}, nil
}

func (s *serviceStub) RefreshTokens(ctx context.Context, userID uuid.UUID, refreshToken string) (model.TokenPair, error) {
	s.refreshUID = userID
	s.refreshRT = refreshToken
	return model.TokenPair{AccessToken: "at2", RefreshToken: "rt2", UserID: userID}, nil
}

func (s *serviceStub) Logout(ctx context.Context, userID uuid.UUID) (bool, error) {
	return true, nil
}

func (s *serviceStub) ChangePassword(ctx context.Context, in dto.ChangePasswordDTO, userID uuid.UUID) error {
	s.changed = true
	return nil
}

func testIssuer(t *testing.T) token.Issuer {
	t.Helper()
	issuer, err := token.NewJWTIssuer(&config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
		JWTIssuer:        "t",
		JWTAudience:      "t",
	})
	require.NoError(t, err)
	return issuer
}

func newRouter(t *testing.T, svc *serviceStub) (*gin.Engine, token.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	issuer := testIssuer(t)
	r := gin.New()
	NewHandler(svc, issuer, zap.NewNop()).Register(r)
	return r, issuer
}

func doJSON(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupRoute(t *testing.T) {
	r, _ := newRouter(t, &serviceStub{})

	w := doJSON(r, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","password":"Passw0rd","username":"alice","firstName":"A","lastName":"Li"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// No digest field ever appears in the response.
	body := strings.ToLower(w.Body.String())
	require.NotContains(t, body, "hash")
	require.Contains(t, body, `"email":"a@x.com"`)

	w = doJSON(r, http.MethodPost, "/auth/signup", `not-json`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSigninRoute_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{authErrors.ErrCredentialsIncorrect, http.StatusForbidden},
		{authErrors.NewInvalidArgument("email"), http.StatusBadRequest},
		{authErrors.WrapStore(context.DeadlineExceeded, "GetUserByEmail"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		r, _ := newRouter(t, &serviceStub{signinErr: c.err})
		w := doJSON(r, http.MethodPost, "/auth/signin", `{"email":"a@x.com","password":"pw"}`, "")
		require.Equal(t, c.code, w.Code, "error %v", c.err)
	}
}

func TestRefreshRoute_Guard(t *testing.T) {
	svc := &serviceStub{}
	r, issuer := newRouter(t, svc)

	// No token, garbage token, and an access token where a refresh token is
	// required all fail before the service is reached.
	require.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/auth/refresh", `{}`, "").Code)
	require.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/auth/refresh", `{}`, "garbage").Code)

	uid := uuid.New()
	at, _, err := issuer.IssueAccessToken(model.User{ID: uid})
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/auth/refresh", `{}`, at).Code)
	require.Equal(t, uuid.Nil, svc.refreshUID)

	rt, _, err := issuer.IssueRefreshToken(model.User{ID: uid})
	require.NoError(t, err)
	w := doJSON(r, http.MethodPost, "/auth/refresh", `{}`, rt)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, uid, svc.refreshUID)
	require.Equal(t, rt, svc.refreshRT)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "at2", resp["accessToken"])
	require.Equal(t, "rt2", resp["refreshToken"])
}

func TestLogoutRoute(t *testing.T) {
	r, issuer := newRouter(t, &serviceStub{})

	rt, _, err := issuer.IssueRefreshToken(model.User{ID: uuid.New()})
	require.NoError(t, err)
	w := doJSON(r, http.MethodPost, "/auth/logout", `{}`, rt)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)
}

func TestChangePasswordRoute(t *testing.T) {
	svc := &serviceStub{}
	r, issuer := newRouter(t, svc)

	// Requires an access token, not a refresh token.
	rt, _, err := issuer.IssueRefreshToken(model.User{ID: uuid.New()})
	require.NoError(t, err)
	w := doJSON(r, http.MethodPost, "/auth/password", `{"password":"a","newPassword":"b"}`, rt)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, svc.changed)

	at, _, err := issuer.IssueAccessToken(model.User{ID: uuid.New()})
	require.NoError(t, err)
	w = doJSON(r, http.MethodPost, "/auth/password", `{"password":"a","newPassword":"b"}`, at)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, svc.changed)
}

func TestHealthRoute(t *testing.T) {
	r, _ := newRouter(t, &serviceStub{})
	w := doJSON(r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}
