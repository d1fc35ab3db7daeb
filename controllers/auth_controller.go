package controllers

import (
	"net/http"

	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// AuthController handles HTTP requests for accounts and sessions.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{authService: svc}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	result, svcErr := ac.authService.Register(c.Request.Context(), &req)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	result, svcErr := ac.authService.Login(c.Request.Context(), &req)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, svcErr := ac.authService.GetProfile(c.Request.Context(), p.UserID)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile handles PUT /api/auth/profile
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	user, svcErr := ac.authService.UpdateProfile(c.Request.Context(), p.UserID, &req)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
