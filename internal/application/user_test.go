package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/infrastructure/storage"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	repo, err := storage.NewMemoryUserRepository(16)
	require.NoError(t, err)
	return NewUserService(repo)
}

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestUserService_SetMode(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.SetMode(ctx, 3, 30, 5)
	require.NoError(t, err)
	require.Equal(t, entity.FiveBands, user.Mode)
	require.Len(t, user.Colors, 5)

	_, err = svc.SetMode(ctx, 3, 30, 2)
	require.ErrorIs(t, err, entity.ErrInvalidBandMode)

	user, err = svc.Get(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.FiveBands, user.Mode)
}

func TestUserService_SetLanguage(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.SetLanguage(context.Background(), 4, 40, "pl")
	require.NoError(t, err)
	require.Equal(t, "pl", user.Language)
}

type countingRepo struct {
	*storage.MemoryUserRepository
	updates int
}

func (r *countingRepo) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.updates++
	return r.MemoryUserRepository.UpdateState(ctx, userID, state)
}

func TestUserService_SetStateGoesThroughRepository(t *testing.T) {
	mem, err := storage.NewMemoryUserRepository(16)
	require.NoError(t, err)
	repo := &countingRepo{MemoryUserRepository: mem}
	svc := NewUserService(repo)

	user, err := svc.SetState(context.Background(), 5, 50, entity.StateAwaitingPhoto)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
	require.Equal(t, 1, repo.updates)
}
