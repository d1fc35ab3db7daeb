package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAuthRouter(tokens *services.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/private", middleware.Authenticate(tokens), func(c *gin.Context) {
		p, _ := middleware.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	r.GET("/seller-only",
		middleware.Authenticate(tokens),
		middleware.RequireRole(models.RoleSeller, models.RoleAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/maybe", middleware.OptionalAuth(tokens), func(c *gin.Context) {
		if p, err := middleware.GetPrincipal(c); err == nil {
			c.JSON(http.StatusOK, gin.H{"userId": p.UserID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": 0})
	})
	return r
}

func TestAuthenticate_MissingToken(t *testing.T) {
	r := setupAuthRouter(services.NewTokenService("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization token required")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	r := setupAuthRouter(services.NewTokenService("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := setupAuthRouter(tokens)
	token, _ := tokens.GenerateToken(42, "a@b.co", models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
}

func TestRequireRole_BuyerBlocked(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := setupAuthRouter(tokens)
	token, _ := tokens.GenerateToken(42, "a@b.co", models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/seller-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_SellerAllowed(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := setupAuthRouter(tokens)
	token, _ := tokens.GenerateToken(42, "s@b.co", models.RoleSeller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/seller-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	r := setupAuthRouter(services.NewTokenService("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":0`)
}

func TestOptionalAuth_BadTokenStillPasses(t *testing.T) {
	r := setupAuthRouter(services.NewTokenService("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":0`)
}
