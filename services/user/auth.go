package user

import (
	"context"
	"fmt"
	"time"

	"lexdraft/models"
	"lexdraft/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 24 * time.Hour

// Register validates the signup payload, checks for duplicates, hashes the
// password, and persists the new account.
func (s *DefaultUserService) Register(req models.SignupRequest) (*models.User, error) {
	if req.Name == "" || req.Phone == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.Repo.Create(&userObj); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	utils.GetLogger().Info("Register: user registered", zap.String("email", userObj.Email))
	return &userObj, nil
}

// Authenticate verifies the email/password pair, signs a JWT, and caches its
// hash so the token can be revoked server-side.
func (s *DefaultUserService) Authenticate(email, password string) (*models.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, authTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	// Cache the token hash; the auth middleware compares against it and
	// RevokeAuthToken deletes it.
	sessionClient := utils.GetAuthCacheClient()
	ctx := context.Background()
	if err := sessionClient.Set(ctx, authTokenKey(userRec.ID), utils.HashToken(token), authTokenTTL).Err(); err != nil {
		utils.GetLogger().Error("Authenticate: failed to cache token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &models.AuthResponse{
		Message:  "Login successful!",
		UserID:   userRec.ID,
		Username: userRec.Name,
		Token:    token,
	}, nil
}

// RevokeAuthToken removes the cached token hash for a user.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	sessionClient := utils.GetAuthCacheClient()
	if err := sessionClient.Del(context.Background(), authTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke auth token for %s: %w", userID, err)
	}
	return nil
}

func authTokenKey(userID string) string {
	return "auth:token:" + userID
}
