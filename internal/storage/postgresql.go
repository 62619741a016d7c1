// Package storage реализует хранилище учетных записей на основе PostgreSQL.
// Предоставляет методы создания и чтения пользователей, смены роли,
// а также проверку доступности базы для /health.
package storage

import (
	"context"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// Ошибки уровня хранилища. Верхние слои проверяют их через errors.Is
// и переводят в ответы API.
var (
	// ErrUserNotFound возвращается, когда пользователь с таким email или uid отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken возвращается при нарушении уникальности email.
	// Уникальный индекс в базе — окончательный арбитр при параллельных регистрациях.
	ErrEmailTaken = errors.New("email already in use")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping проверяет готовность базы данных. Используется обработчиком /health.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	var one int
	if err := s.DB.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает пул соединений с базой.
func (s *Storage) Close() error {
	return s.DB.Close()
}
