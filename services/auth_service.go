package services

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"bookstore-api/models"
	"bookstore-api/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload for self-profile edits.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl"`
}

// AuthResult bundles a token with the authenticated user.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService implements registration, login and profile management.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, logger: logger}
}

// Register creates a new account and issues a token.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, *ServiceError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewServiceError(http.StatusBadRequest, "Invalid email format")
	}
	if len(req.Password) < 8 {
		return nil, NewServiceError(http.StatusBadRequest, "Password must be at least 8 characters")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, NewServiceError(http.StatusBadRequest, "Role must be user or seller")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, NewServiceError(http.StatusConflict, "User already exists with this email")
	} else if err != gorm.ErrRecordNotFound {
		s.logger.Error("Register: email lookup failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Registration failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: password hashing failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Registration failed")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Register: user insert failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Registration failed")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("Register: token generation failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Registration failed")
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, *ServiceError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, NewServiceError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewServiceError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("Login: token generation failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Login failed")
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetProfile returns the caller's account.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewServiceError(http.StatusNotFound, "User not found")
		}
		s.logger.Error("GetProfile failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to get user profile")
	}
	return user, nil
}

// UpdateProfile applies a partial self-profile edit.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewServiceError(http.StatusNotFound, "User not found")
		}
		s.logger.Error("UpdateProfile: lookup failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to update profile")
	}

	updated := false
	if v := strings.TrimSpace(req.FirstName); v != "" {
		user.FirstName = v
		updated = true
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		user.LastName = v
		updated = true
	}
	if v := strings.TrimSpace(req.AvatarURL); v != "" {
		user.AvatarURL = v
		updated = true
	}
	if !updated {
		return nil, NewServiceError(http.StatusBadRequest, "No valid fields to update")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("UpdateProfile: save failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to update profile")
	}
	return user, nil
}
