package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phillip/lbd-events-go/config"
	"github.com/phillip/lbd-events-go/httperr"
	"github.com/phillip/lbd-events-go/models"
)

type adminRepoStub struct {
	admin *models.AdminUser
	err   error
}

func (s *adminRepoStub) Create(ctx context.Context, admin *models.AdminUser) error { return nil }

func (s *adminRepoStub) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return s.admin, s.err
}

func (s *adminRepoStub) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	return s.admin, s.err
}

func (s *adminRepoStub) List(ctx context.Context) ([]models.AdminUser, error) { return nil, nil }

func (s *adminRepoStub) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return nil
}

const testSecret = "test-secret"

func signToken(t *testing.T, adminID primitive.ObjectID, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   adminID.Hex(),
		"email": "jo@lbd.events",
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authRouter(repo *adminRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}
	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg, repo, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := authRouter(&adminRepoStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	adminID := primitive.NewObjectID()
	router := authRouter(&adminRepoStub{admin: &models.AdminUser{ID: adminID, IsActive: true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, adminID, -time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddlewareRejectsDeactivatedAdmin(t *testing.T) {
	// A deactivated admin still holds a cryptographically valid token; the
	// gate must refuse the session anyway.
	adminID := primitive.NewObjectID()
	router := authRouter(&adminRepoStub{admin: &models.AdminUser{ID: adminID, IsActive: false}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, adminID, time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "deactivated")
}

func TestAuthMiddlewareTransportErrorIsNotAuthRejection(t *testing.T) {
	// A database outage must surface as an internal error, not force-sign-out
	// every client holding a valid token.
	adminID := primitive.NewObjectID()
	lookupErr := httperr.Wrap(fmt.Errorf("dial tcp: connection refused"),
		httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not fetch admin")
	router := authRouter(&adminRepoStub{err: lookupErr})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, adminID, time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "no longer exists")
	require.Contains(t, w.Body.String(), "could not fetch admin")
}

func TestAuthMiddlewareRejectsDeletedAdmin(t *testing.T) {
	adminID := primitive.NewObjectID()
	router := authRouter(&adminRepoStub{err: httperr.Clone(httperr.ErrNotFound, "admin not found")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, adminID, time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAllowsActiveAdmin(t *testing.T) {
	adminID := primitive.NewObjectID()
	router := authRouter(&adminRepoStub{admin: &models.AdminUser{ID: adminID, IsActive: true, Role: "admin"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, adminID, time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), adminID.Hex())
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	router := authRouter(&adminRepoStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
