package middleware

import (
	"errors"
	"strings"

	apperrors "bookstore-api/common/errors"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

const PrincipalContextKey = "principal"

// Principal is the authenticated caller extracted from the bearer token. It is
// passed explicitly into every service call; nothing reads it from globals.
type Principal struct {
	UserID uint
	Email  string
	Role   string
}

// Authenticate requires a valid bearer token and stores the Principal in the
// request context.
func Authenticate(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			apperrors.AbortWith(c, apperrors.ErrMissingToken)
			return
		}

		principal, err := principalFromToken(tokens, tokenStr)
		if err != nil {
			apperrors.AbortWith(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// OptionalAuth stores the Principal if a valid bearer token is present and
// passes the request through either way.
func OptionalAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := extractBearerToken(c.GetHeader("Authorization")); tokenStr != "" {
			if principal, err := principalFromToken(tokens, tokenStr); err == nil {
				c.Set(PrincipalContextKey, principal)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route group on the caller's role. Must run after
// Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		principal, err := GetPrincipal(c)
		if err != nil || !allowed[principal.Role] {
			apperrors.AbortWith(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller from the gin context.
func GetPrincipal(c *gin.Context) (Principal, error) {
	if val, ok := c.Get(PrincipalContextKey); ok {
		if p, ok := val.(Principal); ok && p.UserID != 0 {
			return p, nil
		}
	}
	return Principal{}, errors.New("principal not found in context")
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func principalFromToken(tokens *services.TokenService, tokenStr string) (Principal, error) {
	claims, err := tokens.ValidateToken(tokenStr)
	if err != nil {
		return Principal{}, err
	}

	userID, ok := claims["sub"].(float64)
	if !ok || userID <= 0 {
		return Principal{}, errors.New("missing sub claim")
	}
	email, _ := claims["email"].(string)
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		role = models.RoleUser
	}

	return Principal{UserID: uint(userID), Email: email, Role: role}, nil
}
