package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fuelprice/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testApp() *App {
	cfg := config.Default()
	cfg.Server.GinMode = gin.TestMode
	cfg.Auth.JWTSecret = "app-test-secret"
	// repositories only hold the handle; nothing below reaches the database
	return New(cfg, zap.NewNop(), &gorm.DB{})
}

func TestRouter_InfraRoutes(t *testing.T) {
	r := testApp().Router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fuelprice_http_requests_total")
}

func TestRouter_APIRequiresToken(t *testing.T) {
	r := testApp().Router()

	for _, path := range []string{"/api/operators", "/api/tax-rates", "/api/dashboard", "/api/email-logs", "/me"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
