package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultSize ограничивает кэш в памяти, если размер не задан
const DefaultSize = 10000

// Cache хранит сериализованные результаты расчетов
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// MemoryCache is an in-process Cache used when no Redis address is configured.
// It holds at most size entries and drops expired ones in the background.
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

// NewMemoryCache создает кэш в памяти; size <= 0 означает DefaultSize, ttl <= 0 означает без истечения
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

// Get возвращает значение по ключу, если оно есть и не просрочено
func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

// Set сохраняет значение; при переполнении вытесняется самая старая запись
func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.lru.Add(key, value)
	return nil
}

// Len возвращает количество записей
func (m *MemoryCache) Len() int {
	return m.lru.Len()
}
