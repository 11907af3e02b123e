package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "vscreens/internal/errors"
	"vscreens/internal/logging"
	"vscreens/internal/model"
	"vscreens/internal/repository"
)

// ScreenService exposes ownership-scoped screen operations. A screen owned by
// another user is reported exactly like a missing one.
type ScreenService interface {
	Create(ctx context.Context, userID uint, name, content string) (*model.Screen, error)
	List(ctx context.Context, userID uint) ([]model.ScreenSummary, error)
	Get(ctx context.Context, id, userID uint) (*model.Screen, error)
	GetContent(ctx context.Context, id, userID uint) (string, error)
	Update(ctx context.Context, id, userID uint, patch model.ScreenPatch) (*model.Screen, error)
	UpdateContent(ctx context.Context, id, userID uint, content string) (*model.Screen, error)
	Delete(ctx context.Context, id, userID uint) error
	Clear(ctx context.Context, userID uint) (int64, error)
}

type screenService struct {
	repo repository.ScreenRepository
	log  logging.Logger
}

// NewScreenService creates a new screen service.
func NewScreenService(repo repository.ScreenRepository, log logging.Logger) ScreenService {
	return &screenService{
		repo: repo,
		log:  log.With("component", "screens"),
	}
}

func (s *screenService) Create(ctx context.Context, userID uint, name, content string) (*model.Screen, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ErrValidation
	}
	screen := &model.Screen{
		UserID:  userID,
		Name:    name,
		Content: content,
	}
	if err := s.repo.Create(ctx, screen); err != nil {
		return nil, storeError(ctx, s.log, "screens.create", err, "user_id", userID)
	}
	s.log.Info(ctx, "screen created", "user_id", userID, "screen_id", screen.ID)
	return screen, nil
}

func (s *screenService) List(ctx context.Context, userID uint) ([]model.ScreenSummary, error) {
	screens, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(ctx, s.log, "screens.list", err, "user_id", userID)
	}
	return screens, nil
}

func (s *screenService) Get(ctx context.Context, id, userID uint) (*model.Screen, error) {
	screen, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScreenNotFound
		}
		return nil, storeError(ctx, s.log, "screens.get", err, "user_id", userID, "screen_id", id)
	}
	return screen, nil
}

func (s *screenService) GetContent(ctx context.Context, id, userID uint) (string, error) {
	content, err := s.repo.FindContent(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrScreenNotFound
		}
		return "", storeError(ctx, s.log, "screens.get_content", err, "user_id", userID, "screen_id", id)
	}
	return content, nil
}

// Update applies the present slots of patch and returns the refreshed screen.
// An empty patch only reads the screen.
func (s *screenService) Update(ctx context.Context, id, userID uint, patch model.ScreenPatch) (*model.Screen, error) {
	if name, ok := patch.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return nil, apperrors.ErrValidation
	}
	if !patch.IsEmpty() {
		if err := s.repo.Update(ctx, id, userID, patch); err != nil {
			return nil, storeError(ctx, s.log, "screens.update", err, "user_id", userID, "screen_id", id)
		}
	}
	return s.Get(ctx, id, userID)
}

func (s *screenService) UpdateContent(ctx context.Context, id, userID uint, content string) (*model.Screen, error) {
	return s.Update(ctx, id, userID, model.ScreenPatch{Content: model.Some(content)})
}

// Delete is idempotent; deleting a missing or foreign screen succeeds silently.
func (s *screenService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return storeError(ctx, s.log, "screens.delete", err, "user_id", userID, "screen_id", id)
	}
	s.log.Info(ctx, "screen deleted", "user_id", userID, "screen_id", id)
	return nil
}

func (s *screenService) Clear(ctx context.Context, userID uint) (int64, error) {
	n, err := s.repo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, storeError(ctx, s.log, "screens.clear", err, "user_id", userID)
	}
	s.log.Info(ctx, "screens cleared", "user_id", userID, "deleted", n)
	return n, nil
}
