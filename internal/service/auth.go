package service

import (
	"context"
	"errors"
	"time"

	"github.com/ideahub/ideahub-api/internal/crypto"
	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrEmailTaken         = errors.New("a user with that email already exists")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthConfig carries the secrets and parameters the auth service needs,
// threaded in explicitly at construction.
type AuthConfig struct {
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int
}

// AuthService handles registration, authentication and profile edits.
type AuthService struct {
	users *repository.UserRepository
	cfg   AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates a new user account and returns a signed token payload.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (model.UserToken, error) {
	hash, err := crypto.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return model.UserToken{}, err
	}

	user := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserToken{}, ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateUsername):
			return model.UserToken{}, ErrUsernameTaken
		}
		return model.UserToken{}, err
	}

	return s.issueToken(user)
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password both return ErrInvalidCredentials; callers cannot tell
// which one failed.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.UserToken, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserToken{}, ErrInvalidCredentials
		}
		return model.UserToken{}, err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return model.UserToken{}, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetUser retrieves a user by id and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

// EditProfile updates username, email and password, each independently
// optional, after verifying the current password. The updated record is
// re-read and a fresh token issued from it.
func (s *AuthService) EditProfile(ctx context.Context, userID string, req model.EditProfileRequest) (model.UserToken, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserToken{}, ErrInvalidPassword
		}
		return model.UserToken{}, err
	}

	if !crypto.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return model.UserToken{}, ErrInvalidPassword
	}

	if req.NewUsername != "" {
		if err := s.users.UpdateUsername(ctx, userID, req.NewUsername); err != nil {
			if errors.Is(err, repository.ErrDuplicateUsername) {
				return model.UserToken{}, ErrUsernameTaken
			}
			return model.UserToken{}, err
		}
	}

	if req.NewEmail != "" {
		if err := s.users.UpdateEmail(ctx, userID, req.NewEmail); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return model.UserToken{}, ErrEmailTaken
			}
			return model.UserToken{}, err
		}
	}

	if req.NewPassword != "" {
		hash, err := crypto.HashPassword(req.NewPassword, s.cfg.BcryptCost)
		if err != nil {
			return model.UserToken{}, err
		}
		if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
			return model.UserToken{}, err
		}
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.UserToken{}, err
	}

	return s.issueToken(updated)
}

func (s *AuthService) issueToken(user *model.User) (model.UserToken, error) {
	token, err := crypto.GenerateToken(user.ID, user.Email, user.Username, s.cfg.JWTSecret, s.cfg.JWTExpiry)
	if err != nil {
		return model.UserToken{}, err
	}

	return model.UserToken{
		UserID:   user.ID,
		Sub:      user.ID,
		Email:    user.Email,
		Username: user.Username,
		Exp:      time.Now().Add(s.cfg.JWTExpiry).Unix(),
		Token:    token,
	}, nil
}
