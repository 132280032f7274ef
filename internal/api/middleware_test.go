package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shishlyannikovvv/project-planner/internal/service"
	"github.com/Shishlyannikovvv/project-planner/internal/storage"
)

const testSecret = "test-secret"

func newIdentityRouter(t *testing.T) (*gin.Engine, *service.Users) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	users := service.NewUsers(storage.NewRepository(db))

	router := gin.New()
	router.Use(IdentityMiddleware(testSecret, users))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": requesterID(c)})
	})
	return router, users
}

func signToken(t *testing.T, secret, subject, email, name string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, identityClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestIdentityMiddlewareProvisionsUser(t *testing.T) {
	router, users := newIdentityRouter(t)

	token := signToken(t, testSecret, "auth0|first-login", "nick@example.com", "Nick Fury")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// Пользователь создан при первом обращении
	user, err := users.GetBySubject(req.Context(), "auth0|first-login")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Nick Fury", user.Name)

	// Повторный запрос не плодит дубликатов
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	all, err := users.List(req.Context())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIdentityMiddlewareRejectsMissingToken(t *testing.T) {
	router, _ := newIdentityRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddlewareRejectsForgedToken(t *testing.T) {
	router, _ := newIdentityRouter(t)

	token := signToken(t, "wrong-secret", "auth0|forged", "x@example.com", "Forger")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddlewareRejectsEmptySubject(t *testing.T) {
	router, _ := newIdentityRouter(t)

	token := signToken(t, testSecret, "", "x@example.com", "Nobody")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
