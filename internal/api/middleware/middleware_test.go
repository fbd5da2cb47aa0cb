package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"contacthub-backend/internal/api/middleware"
	"contacthub-backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	header := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, header)
	assert.Equal(t, header, w.Body.String())

	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Request-ID", "trace-1234")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "trace-1234", w.Header().Get("X-Request-ID"))
}

func TestCORS_AllowedOriginGetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AllowedOrigins: []string{"https://app.example.com"}}

	router := gin.New()
	router.Use(middleware.CORS(cfg))
	router.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOriginGetsNoHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AllowedOrigins: []string{"https://app.example.com"}}

	router := gin.New()
	router.Use(middleware.CORS(cfg))
	router.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardAllowsAnyOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AllowedOrigins: []string{"*"}}

	router := gin.New()
	router.Use(middleware.CORS(cfg))
	router.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://anywhere.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AllowedOrigins: []string{"*"}}

	handled := false
	router := gin.New()
	router.Use(middleware.CORS(cfg))
	router.OPTIONS("/probe", func(c *gin.Context) {
		handled = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/probe", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, handled)
}
