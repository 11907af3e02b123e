package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vscreens/internal/auth"
	apperrors "vscreens/internal/errors"
	"vscreens/internal/logging"
	"vscreens/internal/model"
	"vscreens/internal/repository"
)

const (
	bcryptCost = 10
	// maxPasswordBytes is the longest input bcrypt hashes without truncation.
	maxPasswordBytes = 72
)

// AuthService handles account and credential operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (uint, error)
	Login(ctx context.Context, username, password string) (string, error)
	ValidateCredential(ctx context.Context, token string) (uint, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	issuer   auth.CredentialIssuer
	log      logging.Logger

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, issuer auth.CredentialIssuer, log logging.Logger) AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	return &authService{
		userRepo:  userRepo,
		issuer:    issuer,
		log:       log.With("component", "auth"),
		dummyHash: dummy,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperrors.ErrValidation
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.ErrPasswordTooLong
	}

	// Check if username already exists
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateUsername
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(ctx, s.log, "users.find_by_username", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, storeError(ctx, s.log, "users.create", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate returns the user id for a matching username and password.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, username, password string) (uint, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return 0, apperrors.ErrInvalidCredentials
		}
		return 0, storeError(ctx, s.log, "users.find_by_username", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, apperrors.ErrInvalidCredentials
	}
	return user.ID, nil
}

// Login authenticates and issues a bearer credential.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	userID, err := s.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.log.Warn(ctx, "login failed", "username", username)
		}
		return "", err
	}

	token, err := s.issuer.Issue(ctx, userID)
	if err != nil {
		return "", storeError(ctx, s.log, "credentials.issue", err, "user_id", userID)
	}

	s.log.Info(ctx, "user logged in", "user_id", userID)
	return token, nil
}

// ValidateCredential resolves a bearer credential to a user id.
func (s *authService) ValidateCredential(ctx context.Context, token string) (uint, error) {
	userID, err := s.issuer.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return 0, err
		}
		return 0, storeError(ctx, s.log, "credentials.validate", err)
	}
	return userID, nil
}

// Logout revokes the credential. Stateless credentials stay valid until expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.issuer.Revoke(ctx, token); err != nil {
		return storeError(ctx, s.log, "credentials.revoke", err)
	}
	return nil
}
