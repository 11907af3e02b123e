package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScreenURLPrefix is prepended to the random path segment of every screen url.
const ScreenURLPrefix = "/screens/"

// Screen is a named, user-owned text content record.
type Screen struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	URL       string    `json:"url" gorm:"column:url;uniqueIndex;size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Screen model.
func (Screen) TableName() string {
	return "virtual_screens"
}

// BeforeCreate assigns an opaque url before creating the record.
func (s *Screen) BeforeCreate(tx *gorm.DB) error {
	if s.URL == "" {
		s.URL = ScreenURLPrefix + uuid.NewString()
	}
	return nil
}

// ScreenSummary is the list-view projection of a screen; content is excluded.
type ScreenSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ScreenPatch describes a partial update. Only present slots are written.
type ScreenPatch struct {
	Name    Optional[string]
	Content Optional[string]
}

// IsEmpty reports whether the patch would change nothing.
func (p ScreenPatch) IsEmpty() bool {
	return !p.Name.Present() && !p.Content.Present()
}

// Columns returns the column assignments for the present slots.
func (p ScreenPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 2)
	if name, ok := p.Name.Get(); ok {
		cols["name"] = name
	}
	if content, ok := p.Content.Get(); ok {
		cols["content"] = content
	}
	return cols
}
