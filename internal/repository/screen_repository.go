package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vscreens/internal/model"
)

// ScreenRepository defines screen persistence operations. Every method that
// touches an existing row is scoped by (id, user_id).
type ScreenRepository interface {
	Create(ctx context.Context, screen *model.Screen) error
	ListByUser(ctx context.Context, userID uint) ([]model.ScreenSummary, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Screen, error)
	FindContent(ctx context.Context, id, userID uint) (string, error)
	Update(ctx context.Context, id, userID uint, patch model.ScreenPatch) error
	Delete(ctx context.Context, id, userID uint) error
	DeleteAllByUser(ctx context.Context, userID uint) (int64, error)
}

type screenRepository struct {
	db *gorm.DB
}

// NewScreenRepository creates a new screen repository.
func NewScreenRepository(db *gorm.DB) ScreenRepository {
	return &screenRepository{db: db}
}

// Create inserts a screen; id, url and timestamps are filled in on the passed value.
func (r *screenRepository) Create(ctx context.Context, screen *model.Screen) error {
	return r.db.WithContext(ctx).Create(screen).Error
}

// ListByUser returns summaries of the user's screens in creation order.
func (r *screenRepository) ListByUser(ctx context.Context, userID uint) ([]model.ScreenSummary, error) {
	summaries := make([]model.ScreenSummary, 0)
	if err := r.db.WithContext(ctx).Model(&model.Screen{}).
		Select("id", "name", "url").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// FindByIDAndUser returns gorm.ErrRecordNotFound when the screen is missing or owned by someone else.
func (r *screenRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Screen, error) {
	var screen model.Screen
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&screen).Error; err != nil {
		return nil, err
	}
	return &screen, nil
}

// FindContent reads only the content column.
func (r *screenRepository) FindContent(ctx context.Context, id, userID uint) (string, error) {
	var screen model.Screen
	if err := r.db.WithContext(ctx).
		Select("content").
		Where("id = ? AND user_id = ?", id, userID).
		First(&screen).Error; err != nil {
		return "", err
	}
	return screen.Content, nil
}

// Update writes the present slots of patch and refreshes updated_at.
// Updating a row the user does not own is a silent no-op.
func (r *screenRepository) Update(ctx context.Context, id, userID uint, patch model.ScreenPatch) error {
	cols := patch.Columns()
	cols["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.Screen{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(cols).Error
}

// Delete removes the screen if the user owns it; a missing row is not an error.
func (r *screenRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Screen{}).Error
}

// DeleteAllByUser removes every screen owned by the user.
func (r *screenRepository) DeleteAllByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Screen{})
	return res.RowsAffected, res.Error
}
