package storage

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей.
// Хранит не больше maxUsers записей, давно неактивные вытесняются.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users *lru.Cache[int64, *entity.User]
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository(maxUsers int) (*MemoryUserRepository, error) {
	users, err := lru.New[int64, *entity.User](maxUsers)
	if err != nil {
		return nil, fmt.Errorf("create user cache: %w", err)
	}
	return &MemoryUserRepository{users: users}, nil
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users.Get(userID); ok {
		return user, nil
	}

	// Создаём нового пользователя
	newUser := entity.NewUser(userID, chatID)
	r.users.Add(userID, newUser)

	return newUser, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users.Add(user.ID, user)
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние пользователя
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users.Get(userID); exists {
		user.SetState(state)
	}

	return nil
}

// Len возвращает число хранимых пользователей
func (r *MemoryUserRepository) Len() int {
	return r.users.Len()
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
