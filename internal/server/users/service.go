// Package users implements the account lifecycle: signup, login, and profile
// updates, backed by the user store and the media host.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avlasov/chatauth/internal/common"
	"github.com/avlasov/chatauth/internal/server/auth"
	"github.com/avlasov/chatauth/internal/server/config"
	"github.com/avlasov/chatauth/internal/server/media"
)

const minPasswordLength = 6

type Service struct {
	repo                  Repository
	uploader              media.Uploader
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, uploader media.Uploader, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		uploader:              uploader,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup creates a new account and returns it together with a freshly issued
// session token.
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (*User, string, error) {

	if fullName == "" || email == "" || password == "" {
		return nil, "", common.ErrorFieldsRequired
	}
	if len(password) < minPasswordLength {
		return nil, "", common.ErrorPasswordTooShort
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", common.ErrorEmailExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", fmt.Errorf("looking up email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		// The store's UNIQUE(email) constraint may fire even though the
		// lookup above found nothing.
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, "", common.ErrorEmailExists
		}
		return nil, "", common.ErrorInvalidUserData
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the account with a new session
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {

	if email == "" || password == "" {
		return nil, "", common.ErrorFieldsRequired
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", fmt.Errorf("looking up email: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session token: %w", err)
	}

	return user, token, nil
}

// UpdateProfilePic uploads the picture to the media host and stores the
// resulting URL. Nothing is uploaded or written when the picture is missing.
func (s *Service) UpdateProfilePic(ctx context.Context, userID, profilePic string) (*User, error) {

	if profilePic == "" {
		return nil, common.ErrorProfilePicRequired
	}

	url, err := s.uploader.Upload(ctx, userID, profilePic)
	if err != nil {
		return nil, fmt.Errorf("uploading profile picture: %w", err)
	}

	user, err := s.repo.UpdateProfilePic(ctx, userID, url)
	if err != nil {
		return nil, fmt.Errorf("updating profile picture: %w", err)
	}

	return user, nil
}

// GetByID resolves a stored user; used by the auth middleware when turning a
// verified token into a request identity.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// VerifyToken validates a session token and returns the user id it carries.
func (s *Service) VerifyToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
