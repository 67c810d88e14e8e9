package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-ticketing-backend/internal/config"
	"event-ticketing-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func authRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(middleware.UserIDKey),
			"email":   c.GetString(middleware.OperatorEmailKey),
		})
	})
	return router
}

func doAuth(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	w := doAuth(authRouter(&config.Config{SupabaseJWTSecret: testSecret}), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authRouter(&config.Config{SupabaseJWTSecret: testSecret})

	assert.Equal(t, http.StatusUnauthorized, doAuth(router, "Bearer invalid-token").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuth(router, "Token abc").Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "user-123"})
	w := doAuth(authRouter(&config.Config{SupabaseJWTSecret: "another-secret"}), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "signature is invalid")
}

func TestAuthMiddleware_Expired(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "user-123", "exp": time.Now().Add(-time.Hour).Unix()})
	w := doAuth(authRouter(&config.Config{SupabaseJWTSecret: testSecret}), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token has expired")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "user-123", "email": "ops@example.com"})
	w := doAuth(authRouter(&config.Config{SupabaseJWTSecret: testSecret}), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-123"`)
	assert.Contains(t, w.Body.String(), `"email":"ops@example.com"`)
}

func TestAuthMiddleware_OperatorAllowList(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: testSecret, OperatorEmails: []string{"Ops@Example.com"}}
	router := authRouter(cfg)

	allowed := signToken(t, jwt.MapClaims{"sub": "user-1", "email": "ops@example.com"})
	assert.Equal(t, http.StatusOK, doAuth(router, "Bearer "+allowed).Code)

	customer := signToken(t, jwt.MapClaims{"sub": "user-2", "email": "fan@example.com"})
	assert.Equal(t, http.StatusForbidden, doAuth(router, "Bearer "+customer).Code)
}
