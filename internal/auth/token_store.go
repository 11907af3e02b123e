package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vscreens/internal/cache"
	apperrors "vscreens/internal/errors"
	"vscreens/internal/logging"
	"vscreens/internal/model"
	"vscreens/internal/repository"
)

const (
	// SessionExpiry is the fixed lifetime of a persisted session.
	SessionExpiry = 24 * time.Hour

	revokedKeyPrefix = "blacklist:session:"
)

// SessionStore issues opaque tokens persisted in the sessions table. The row
// is the only proof of a live session; redis, when configured, holds markers
// for revoked tokens so replays are rejected without a database lookup.
type SessionStore struct {
	repo  repository.SessionRepository
	cache *cache.Client
	log   logging.Logger
	now   func() time.Time
}

var _ CredentialIssuer = (*SessionStore)(nil)

// NewSessionStore creates a new session store. cache may be nil.
func NewSessionStore(repo repository.SessionRepository, cache *cache.Client, log logging.Logger) *SessionStore {
	return &SessionStore{
		repo:  repo,
		cache: cache,
		log:   log.With("component", "sessions"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Issue persists a new random token for userID and purges the user's expired
// sessions. A failed purge is logged and does not fail the login.
func (s *SessionStore) Issue(ctx context.Context, userID uint) (string, error) {
	now := s.now()
	session := &model.Session{
		UserID:       userID,
		SessionToken: uuid.NewString(),
		ExpiresAt:    now.Add(SessionExpiry),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if _, err := s.repo.DeleteExpired(ctx, userID, now); err != nil {
		s.log.Warn(ctx, "purge expired sessions failed",
			"user_id", userID,
			"error", apperrors.Redact(err),
		)
	}
	return session.SessionToken, nil
}

// Validate resolves token to its user if the session exists and has not expired.
func (s *SessionStore) Validate(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, apperrors.ErrInvalidToken
	}
	if s.isRevoked(ctx, token) {
		return 0, apperrors.ErrInvalidToken
	}

	session, err := s.repo.FindActive(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrInvalidToken
		}
		return 0, fmt.Errorf("find session: %w", err)
	}
	return session.UserID, nil
}

// Revoke deletes the session row, then marks the token revoked in redis.
// Once the row is gone the token no longer validates, so a marker that
// cannot be written only costs later replays a database lookup.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.repo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	_ = s.cache.Set(ctx, revokedKey(token), []byte("1"), SessionExpiry)
	return nil
}

func (s *SessionStore) isRevoked(ctx context.Context, token string) bool {
	data, _ := s.cache.Get(ctx, revokedKey(token))
	return data != nil
}

// revokedKey hashes the token so raw credentials never appear in redis keys.
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}
