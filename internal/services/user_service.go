package services

import (
	"errors"
	"fmt"

	"todo-api/internal/models"
	"todo-api/internal/repositories"
)

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password, so callers cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService handles registration and authentication.
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register hashes the password and stores a new active user. The role
// defaults to "user" when the request does not set one.
func (s *UserService) Register(req models.UserRegisterRequest) (*models.User, error) {
	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	newUser := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
		IsActive:     true,
		Role:         role,
	}
	return s.userRepo.Create(newUser)
}

// Authenticate verifies a username/password pair and returns the user.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	foundUser, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := repositories.VerifyPassword(foundUser.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return foundUser, nil
}
