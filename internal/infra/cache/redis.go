package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache реализация кэша поверх Redis за тем же интерфейсом, что и MemoryCache
//
// Точка расширения для горизонтально масштабируемого развёртывания:
// несколько экземпляров сервиса разделяют один кэш, проблема расходящихся
// процессно-локальных кэшей снимается
//
// TTL и вытеснение по памяти обеспечивает сам Redis, поэтому фоновая
// очистка и ёмкостное вытеснение здесь не нужны
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	logger     Logger
}

// NewRedisCache создает кэш поверх Redis
func NewRedisCache(client *redis.Client, defaultTTL time.Duration, logger Logger) *RedisCache {
	return &RedisCache{
		client:     client,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// Get возвращает значение по ключу
// Ошибки Redis трактуются как промах: кэш - оптимизация,
// его недоступность не должна ломать вычисление ответа
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("RedisCache: Get %s failed, treating as miss: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set сохраняет значение по ключу; ttl <= 0 означает TTL по умолчанию
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("RedisCache: Set %s failed: %v", key, err)
	}
}

// Delete удаляет запись по ключу
func (c *RedisCache) Delete(ctx context.Context, key string) bool {
	removed, err := c.client.Del(ctx, key).Result()
	if err != nil {
		c.logger.Warn("RedisCache: Del %s failed: %v", key, err)
		return false
	}
	return removed > 0
}

// DeletePattern удаляет все записи по шаблону с '*'
// Синтаксис шаблона совпадает с MATCH у SCAN
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	removed := 0
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}

	return removed, nil
}

// Has проверяет наличие записи
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Warn("RedisCache: Exists %s failed: %v", key, err)
		return false
	}
	return exists > 0
}

// Clear удаляет все записи доступности
// Чистит только собственные ключи сервиса, а не всю базу Redis
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	return c.DeletePattern(ctx, AllPattern())
}

// Stats возвращает снимок состояния кэша
// Redis не хранит время записи, поэтому возраст записей вычисляется
// как defaultTTL минус оставшийся TTL и для переопределённых TTL приблизителен
func (c *RedisCache) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Backend: "redis"}

	iter := c.client.Scan(ctx, 0, AllPattern(), 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		remaining, err := c.client.TTL(ctx, key).Result()
		if err != nil {
			return stats, err
		}

		age := c.defaultTTL - remaining
		if age < 0 {
			age = 0
		}

		stats.Entries = append(stats.Entries, EntryStat{
			Key:        key,
			AgeSeconds: int64(age.Seconds()),
			TTLSeconds: int64(remaining.Seconds()),
		})
	}
	if err := iter.Err(); err != nil {
		return stats, err
	}

	stats.Size = len(stats.Entries)
	return stats, nil
}
