// Package cache оборачивает подключение к redis.
// Сервис использует redis для счётчиков ограничения частоты запросов:
// счётчики общие для всех реплик, окно фиксированное.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/auth-service/internal/config"
)

// Cache инкапсулирует клиент redis.
type Cache struct {
	Db *redis.Client
}

// InitServer создает клиент redis по настройкам из конфига и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// IncrWindow увеличивает счётчик ключа и возвращает его значение в текущем
// окне. TTL выставляется только при первом инкременте, так что ключ
// истекает ровно через window после начала окна.
func (c *Cache) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	const op = "cache.IncrWindow"

	pipe := c.Db.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return incr.Val(), nil
}

// Close закрывает подключение к redis.
func (c *Cache) Close() error {
	return c.Db.Close()
}
