package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rajivgeraev/dealer-api/internal/config"
)

// ErrMiss возвращается, когда ключа нет в кэше
var ErrMiss = errors.New("cache miss")

// Cache хранит JSON-представления значений с ограниченным временем жизни
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// RedisCache реализация Cache поверх Redis
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создает кэш поверх клиента Redis. Все ключи получают prefix.
func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix}
}

// Connect подключается к Redis по конфигурации.
// При пустом адресе возвращает nil: кэш отключен.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		log.Println("⚠️ REDIS_ADDR не задан, кэш справочников отключен")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	log.Println("✅ Успешное подключение к Redis")
	return rdb, nil
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// GetJSON читает значение и раскодирует его в dst
func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) error {
	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON сохраняет значение в виде JSON
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, c.key(key), data, ttl).Err()
}
