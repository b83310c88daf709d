package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// setGinTestMode ensures Gin does not write noisy logs during tests
func setGinTestMode() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"email":   "admin@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func adminRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret), AdminMiddleware())
	r.GET("/admin/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	setGinTestMode()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsMalformedHeader(t *testing.T) {
	setGinTestMode()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsBadSignature(t *testing.T) {
	setGinTestMode()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "Admin"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MissingSecretIsServerError(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.Use(AuthMiddleware(""))
	r.GET("/secure", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	setGinTestMode()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "Admin"))
	w := httptest.NewRecorder()
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware_RejectsNonAdmin(t *testing.T) {
	setGinTestMode()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "Agent"))
	w := httptest.NewRecorder()
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
