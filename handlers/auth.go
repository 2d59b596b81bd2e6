package handlers

import (
	"errors"
	"net/http"

	"lexdraft/models"
	"lexdraft/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the signup/login endpoints.
type AuthHandler struct {
	Svc user.UserService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// SignupHandler handles POST /api/signup (and its /api/register alias).
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required!"})
		return
	}

	_, err := h.Svc.Register(req)
	switch {
	case errors.Is(err, user.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required!"})
	case errors.Is(err, user.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"message": "A user with this email already exists!"})
	case err != nil:
		logger.Error("User registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving user to database!"})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
	}
}

// LoginHandler handles POST /api/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required!"})
		return
	}

	resp, err := h.Svc.Authenticate(req.Email, req.Password)
	switch {
	case errors.Is(err, user.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required!"})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password!"})
	case err != nil:
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login!"})
	default:
		c.JSON(http.StatusOK, resp)
	}
}

// LogoutHandler revokes the caller's cached auth token.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Insufficient authorization"})
		return
	}
	if err := h.Svc.RevokeAuthToken(userID); err != nil {
		getLogger(c).Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
