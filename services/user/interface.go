package user

import (
	userRepo "lexdraft/database/repository/user"
	"lexdraft/models"
)

// UserService handles account registration and authentication.
type UserService interface {
	// Register creates a new account from a signup request.
	Register(req models.SignupRequest) (*models.User, error)
	// Authenticate verifies credentials and returns a signed auth token.
	Authenticate(email, password string) (*models.AuthResponse, error)
	// RevokeAuthToken invalidates the cached token of a user.
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
