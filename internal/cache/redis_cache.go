package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "deposit-calc:"

// RedisCache хранит результаты в Redis с TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewRedisCache создает клиент Redis; соединение устанавливается при первом запросе
func NewRedisCache(addr string, ttl time.Duration, log *logrus.Logger) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
		log:    log,
	}
}

// Get возвращает значение; ошибки Redis логируются и считаются промахом
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WithError(err).Warn("redis get failed")
		}
		return "", false
	}
	return val, true
}

// Set сохраняет значение с TTL кэша
func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping проверяет доступность Redis
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close закрывает клиент Redis
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// New returns a RedisCache when addr is set, otherwise a MemoryCache bounded by size.
func New(addr string, size int, ttl time.Duration, log *logrus.Logger) Cache {
	if addr == "" {
		return NewMemoryCache(size, ttl)
	}
	return NewRedisCache(addr, ttl, log)
}
