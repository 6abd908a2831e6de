package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/config"
	"github.com/joinboard/api/internal/infrastructure/logger"
	"github.com/joinboard/api/internal/ports"
)

// AuthService handles registration, credential verification, token issuance
// and token resolution.
type AuthService struct {
	userRepo  ports.UserRepository
	tokenRepo ports.TokenRepository
	authCfg   config.AuthConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, tokenRepo ports.TokenRepository, authCfg config.AuthConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		authCfg:   authCfg,
		logger:    logger,
	}
}

// RegisterRequest carries the registration payload
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=100"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=1"`
}

// LoginRequest carries the credential pair
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the login success body
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Register creates a new user account. The plaintext password is discarded
// after hashing.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*entities.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("User registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies the credential pair and returns the user's bearer token.
// Unknown email and wrong password are deliberately indistinguishable: both
// surface ErrInvalidCredentials with no further detail.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entities.ErrInvalidCredentials
	}

	candidate, err := generateTokenValue()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	// Atomic per-user get-or-create: if a token already exists the candidate
	// is discarded and the stored value comes back, so repeated and
	// concurrent logins all yield the same live token.
	token, err := s.tokenRepo.GetOrCreate(ctx, user.ID, candidate)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Infow("User logged in", "user_id", user.ID)

	return &LoginResponse{
		Token:  token.Token,
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}

// Authenticate resolves a presented bearer token to its bound user.
func (s *AuthService) Authenticate(ctx context.Context, tokenValue string) (*entities.User, error) {
	token, err := s.tokenRepo.GetByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, entities.ErrTokenNotFound) {
			return nil, entities.ErrTokenNotFound
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve token user: %w", err)
	}

	return user, nil
}

// Logout deletes the user's token. The old value can never again authorize
// a request; the next login mints a fresh one.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.logger.Infow("User logged out", "user_id", userID)
	return nil
}

func (s *AuthService) bcryptCost() int {
	if s.authCfg.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.authCfg.BcryptCost
}

// generateTokenValue returns 40 hex chars from a CSPRNG, the same shape as
// the tokens this API's existing clients store.
func generateTokenValue() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
