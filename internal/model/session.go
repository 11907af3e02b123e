package model

import "time"

// Session is a persisted bearer credential used when credentials are stateful.
type Session struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	SessionToken string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null;index"`
}

// TableName returns the database table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}
