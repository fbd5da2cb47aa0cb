package service

import (
	"errors"
	"fmt"

	"contacthub-backend/internal/auth"
	"contacthub-backend/internal/database/models"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for users. Identity verification happens
// at the SSO layer in front of this service; registration and login only need
// a verified email.
type UserService struct {
	repo      repository.UserRepositoryInterface
	auth      *auth.Service
	validator *validator.Validate
}

// Ensure UserService implements UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, authService *auth.Service, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		auth:      authService,
		validator: validator,
	}
}

// RegisterUserRequest represents the request to register a user
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"required,max=200"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// AuthResponse carries the user and a fresh access token
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// Register creates a user and issues an access token
func (s *UserService) Register(req *RegisterUserRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	user := &models.User{
		Email:    req.Email,
		FullName: req.FullName,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.toAuthResponse(user)
}

// Login issues an access token for an existing user
func (s *UserService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("email", err.Error())
	}

	user, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.toAuthResponse(user)
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &UserResponse{ID: user.ID, Email: user.Email, FullName: user.FullName}, nil
}

func (s *UserService) toAuthResponse(user *models.User) (*AuthResponse, error) {
	token, err := s.auth.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        UserResponse{ID: user.ID, Email: user.Email, FullName: user.FullName},
	}, nil
}
