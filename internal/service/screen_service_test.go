package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "vscreens/internal/errors"
	"vscreens/internal/logging"
	"vscreens/internal/model"
	"vscreens/internal/repository"
)

// MockScreenRepository is a mock implementation of ScreenRepository.
type MockScreenRepository struct {
	mock.Mock
}

func (m *MockScreenRepository) Create(ctx context.Context, screen *model.Screen) error {
	return m.Called(ctx, screen).Error(0)
}

func (m *MockScreenRepository) ListByUser(ctx context.Context, userID uint) ([]model.ScreenSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScreenSummary), args.Error(1)
}

func (m *MockScreenRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Screen, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Screen), args.Error(1)
}

func (m *MockScreenRepository) FindContent(ctx context.Context, id, userID uint) (string, error) {
	args := m.Called(ctx, id, userID)
	return args.String(0), args.Error(1)
}

func (m *MockScreenRepository) Update(ctx context.Context, id, userID uint, patch model.ScreenPatch) error {
	return m.Called(ctx, id, userID, patch).Error(0)
}

func (m *MockScreenRepository) Delete(ctx context.Context, id, userID uint) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockScreenRepository) DeleteAllByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type screenFixture struct {
	svc   ScreenService
	alice uint
	bob   uint
}

func newScreenFixture(t *testing.T) screenFixture {
	t.Helper()
	gdb := newTestDB(t)
	users := repository.NewUserRepository(gdb)
	alice := &model.User{Username: "alice", PasswordHash: "x"}
	bob := &model.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), alice))
	require.NoError(t, users.Create(context.Background(), bob))
	return screenFixture{
		svc:   NewScreenService(repository.NewScreenRepository(gdb), logging.Nop()),
		alice: alice.ID,
		bob:   bob.ID,
	}
}

func TestScreenService_RoundTrip(t *testing.T) {
	f := newScreenFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, "A", "")
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID, f.alice)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "", got.Content)

	updated, err := f.svc.Update(ctx, created.ID, f.alice, model.ScreenPatch{Content: model.Some("x")})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, "x", updated.Content)

	got, err = f.svc.Get(ctx, created.ID, f.alice)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Content)
	assert.Equal(t, "A", got.Name)

	renamed, err := f.svc.Update(ctx, created.ID, f.alice, model.ScreenPatch{Name: model.Some("B")})
	require.NoError(t, err)
	assert.Equal(t, "B", renamed.Name)
	assert.Equal(t, "x", renamed.Content)

	content, err := f.svc.GetContent(ctx, created.ID, f.alice)
	require.NoError(t, err)
	assert.Equal(t, "x", content)

	viaContent, err := f.svc.UpdateContent(ctx, created.ID, f.alice, "y")
	require.NoError(t, err)
	assert.Equal(t, "y", viaContent.Content)

	require.NoError(t, f.svc.Delete(ctx, created.ID, f.alice))
	_, err = f.svc.Get(ctx, created.ID, f.alice)
	assert.ErrorIs(t, err, apperrors.ErrScreenNotFound)
}

func TestScreenService_OwnershipIsolation(t *testing.T) {
	f := newScreenFixture(t)
	ctx := context.Background()

	screen, err := f.svc.Create(ctx, f.alice, "private", "secret")
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, screen.ID, f.bob)
	assert.ErrorIs(t, err, apperrors.ErrScreenNotFound)

	_, err = f.svc.GetContent(ctx, screen.ID, f.bob)
	assert.ErrorIs(t, err, apperrors.ErrScreenNotFound)

	_, err = f.svc.Update(ctx, screen.ID, f.bob, model.ScreenPatch{Content: model.Some("defaced")})
	assert.ErrorIs(t, err, apperrors.ErrScreenNotFound)

	assert.NoError(t, f.svc.Delete(ctx, screen.ID, f.bob))

	got, err := f.svc.Get(ctx, screen.ID, f.alice)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Content)
}

func TestScreenService_Clear(t *testing.T) {
	f := newScreenFixture(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := f.svc.Create(ctx, f.alice, name, "")
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, f.bob, "bob's", "")
	require.NoError(t, err)

	n, err := f.svc.Clear(ctx, f.alice)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	list, err := f.svc.List(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err = f.svc.Clear(ctx, f.alice)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err = f.svc.List(ctx, f.bob)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestScreenService_Validation(t *testing.T) {
	repo := new(MockScreenRepository)
	svc := NewScreenService(repo, logging.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, " ", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Update(ctx, 1, 1, model.ScreenPatch{Name: model.Some("")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// validation happens before any store call
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScreenService_EmptyPatchOnlyReads(t *testing.T) {
	repo := new(MockScreenRepository)
	repo.On("FindByIDAndUser", mock.Anything, uint(3), uint(1)).Return(&model.Screen{ID: 3, Name: "A"}, nil)
	svc := NewScreenService(repo, logging.Nop())

	got, err := svc.Update(context.Background(), 3, 1, model.ScreenPatch{})
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestScreenService_StoreErrorsAreGeneric(t *testing.T) {
	driverErr := errors.New("Error 1040: Too many connections")
	repo := new(MockScreenRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(driverErr)
	repo.On("ListByUser", mock.Anything, uint(1)).Return(nil, driverErr)
	repo.On("FindByIDAndUser", mock.Anything, uint(2), uint(1)).Return(nil, driverErr)
	repo.On("FindContent", mock.Anything, uint(2), uint(1)).Return("", driverErr)
	repo.On("Update", mock.Anything, uint(2), uint(1), mock.Anything).Return(driverErr)
	repo.On("Delete", mock.Anything, uint(2), uint(1)).Return(driverErr)
	repo.On("DeleteAllByUser", mock.Anything, uint(1)).Return(int64(0), driverErr)

	svc := NewScreenService(repo, logging.Nop())
	ctx := context.Background()

	calls := map[string]func() error{
		"create": func() error { _, err := svc.Create(ctx, 1, "A", ""); return err },
		"list":   func() error { _, err := svc.List(ctx, 1); return err },
		"get":    func() error { _, err := svc.Get(ctx, 2, 1); return err },
		"content": func() error {
			_, err := svc.GetContent(ctx, 2, 1)
			return err
		},
		"update": func() error {
			_, err := svc.Update(ctx, 2, 1, model.ScreenPatch{Name: model.Some("B")})
			return err
		},
		"delete": func() error { return svc.Delete(ctx, 2, 1) },
		"clear":  func() error { _, err := svc.Clear(ctx, 1); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			assert.ErrorIs(t, err, apperrors.ErrStore)
			assert.NotErrorIs(t, err, driverErr)
		})
	}
}

func TestScreenService_StoreErrorLogIsRedacted(t *testing.T) {
	const secretName = "quarterly-plan-7f3a"
	driverErr := &mysqldriver.MySQLError{
		Number:  1062,
		Message: "Duplicate entry '" + secretName + "' for key 'virtual_screens.idx_virtual_screens_url'",
	}
	repo := new(MockScreenRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(driverErr)

	var buf bytes.Buffer
	svc := NewScreenService(repo, logging.New(&buf, "debug"))

	_, err := svc.Create(context.Background(), 1, secretName, "")
	require.ErrorIs(t, err, apperrors.ErrStore)

	out := buf.String()
	assert.Contains(t, out, "store operation failed")
	assert.Contains(t, out, "mysql error 1062")
	assert.Contains(t, out, "screens.create")
	assert.NotContains(t, out, secretName)
}
