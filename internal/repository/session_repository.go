package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vscreens/internal/model"
)

// SessionRepository persists stateful bearer credentials.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	FindActive(ctx context.Context, token string, now time.Time) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, userID uint, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindActive returns the session for token if it expires after now.
func (r *sessionRepository) FindActive(ctx context.Context, token string, now time.Time) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).
		Where("session_token = ? AND expires_at > ?", token, now).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("session_token = ?", token).
		Delete(&model.Session{}).Error
}

// DeleteExpired purges the user's sessions that expired at or before now.
func (r *sessionRepository) DeleteExpired(ctx context.Context, userID uint, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at <= ?", userID, now).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
