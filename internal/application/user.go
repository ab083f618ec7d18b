package app

import (
	"context"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState меняет состояние через хранилище; пользователь создаётся, если его ещё нет.
func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	if _, err := s.repo.Get(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateState(ctx, userID, state); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, chatID)
}

// BeginCheck переводит пользователя в ожидание фотографии резистора.
func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetMode меняет число полос; цвета сбрасываются на значения по умолчанию.
func (s *UserService) SetMode(ctx context.Context, userID, chatID int64, bands int) (*entity.User, error) {
	mode, err := entity.ParseBandMode(bands)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, userID, chatID, func(u *entity.User) error {
		u.SetMode(mode)
		return nil
	})
}

// SetLanguage запоминает код языка клиента.
func (s *UserService) SetLanguage(ctx context.Context, userID, chatID int64, lang string) (*entity.User, error) {
	return s.update(ctx, userID, chatID, func(u *entity.User) error {
		u.Language = lang
		return nil
	})
}

// SetColors сохраняет последнюю последовательность цветов пользователя.
func (s *UserService) SetColors(ctx context.Context, userID, chatID int64, colors []entity.Color, mode entity.BandMode) (*entity.User, error) {
	return s.update(ctx, userID, chatID, func(u *entity.User) error {
		u.SetColors(colors, mode)
		return nil
	})
}

func (s *UserService) update(ctx context.Context, userID, chatID int64, apply func(*entity.User) error) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if err := apply(user); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
