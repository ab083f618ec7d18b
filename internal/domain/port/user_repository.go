package port

import (
	"context"

	"resistor-vision/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// UpdateState обновляет состояние пользователя
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}

// HistoryRepository интерфейс хранилища истории измерений
type HistoryRepository interface {
	// Add добавляет запись в начало истории пользователя
	Add(ctx context.Context, userID int64, entry entity.HistoryEntry) error

	// List возвращает историю пользователя, новые записи первыми
	List(ctx context.Context, userID int64) ([]entity.HistoryEntry, error)

	// Clear очищает историю пользователя
	Clear(ctx context.Context, userID int64) error
}
