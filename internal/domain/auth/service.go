package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
	}
}

// Service provides authentication logic.
type Service struct {
	users      UserRepository
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(users UserRepository, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		users:      users,
		jwtService: jwtService,
		config:     config,
	}
}

// Register creates a staff account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.users.Exists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("username already taken").
			WithDetail("username", req.Username)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Username, string(passwordHash), req.FullName, req.Role, req.BranchID)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues an access token. Failed attempts
// are counted and lock the account after the configured limit.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			logger.Error(ctx, "record failed login", "error", updateErr)
		}
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	user.RecordSuccessfulLogin()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	branchID := ""
	if !id.IsNil(user.BranchID) {
		branchID = user.BranchID.String()
	}
	token, expiresAt, err := s.jwtService.GenerateAccessToken(
		user.ID.String(), branchID, user.FullName, user.Role,
	)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetByID loads a user profile.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.users.GetByID(ctx, userID)
}
