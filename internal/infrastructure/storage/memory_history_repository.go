package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
)

// MemoryHistoryRepository in-memory история измерений.
// На пользователя хранится не больше limit записей, новые первыми.
type MemoryHistoryRepository struct {
	mu      sync.Mutex
	limit   int
	entries *lru.Cache[int64, []entity.HistoryEntry]
}

// NewMemoryHistoryRepository создаёт историю на maxUsers пользователей по limit записей
func NewMemoryHistoryRepository(maxUsers, limit int) (*MemoryHistoryRepository, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("history limit must be positive, got %d", limit)
	}
	entries, err := lru.New[int64, []entity.HistoryEntry](maxUsers)
	if err != nil {
		return nil, fmt.Errorf("create history cache: %w", err)
	}
	return &MemoryHistoryRepository{limit: limit, entries: entries}, nil
}

// Add добавляет запись в начало истории пользователя
func (r *MemoryHistoryRepository) Add(ctx context.Context, userID int64, entry entity.HistoryEntry) error {
	entry.Colors = slices.Clone(entry.Colors)

	r.mu.Lock()
	defer r.mu.Unlock()

	current, _ := r.entries.Get(userID)
	next := make([]entity.HistoryEntry, 0, min(len(current)+1, r.limit))
	next = append(next, entry)
	for _, e := range current {
		if len(next) == r.limit {
			break
		}
		next = append(next, e)
	}
	r.entries.Add(userID, next)

	return nil
}

// List возвращает копию истории пользователя
func (r *MemoryHistoryRepository) List(ctx context.Context, userID int64) ([]entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.entries.Get(userID)
	if !ok {
		return nil, nil
	}
	return slices.Clone(current), nil
}

// Clear очищает историю пользователя
func (r *MemoryHistoryRepository) Clear(ctx context.Context, userID int64) error {
	r.mu.Lock()
	r.entries.Remove(userID)
	r.mu.Unlock()

	return nil
}

var _ port.HistoryRepository = (*MemoryHistoryRepository)(nil)
