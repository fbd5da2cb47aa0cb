package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"contacthub-backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(service *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.NewMiddleware(service).RequireAuth())
	router.GET("/probe", func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)
		email, _ := auth.GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	return router
}

func TestRequireAuth_ValidToken(t *testing.T) {
	service := auth.NewService("test-secret")
	userID := uuid.New()

	token, err := service.GenerateToken(userID, "jane@example.com", "Jane Smith")
	require.NoError(t, err)

	router := setupAuthRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "jane@example.com")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := setupAuthRouter(auth.NewService("test-secret"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_NonBearerHeader(t *testing.T) {
	router := setupAuthRouter(auth.NewService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_TokenSignedWithOtherSecret(t *testing.T) {
	other := auth.NewService("other-secret")
	token, err := other.GenerateToken(uuid.New(), "jane@example.com", "Jane Smith")
	require.NoError(t, err)

	router := setupAuthRouter(auth.NewService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
