package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/auth-service/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает созданную запись.
//
// Email должен быть нормализован вызывающим (trim + lowercase).
// Нарушение уникального индекса по LOWER(email) переводится в ErrEmailTaken:
// предварительная проверка в сервисе — лишь оптимизация, гонку
// параллельных регистраций разрешает база.
func (s *Storage) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	const op = "storage.CreateUser"

	u := &models.User{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}
	query := `INSERT INTO users (uid, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		u.UID, u.Email, u.PasswordHash, u.Role).Scan(&u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email без учёта регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT uid, email, password_hash, role, created_at
			  FROM users
			  WHERE LOWER(email) = LOWER(TRIM($1))`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUID возвращает пользователя по его uid.
// Используется менеджером сессий для повторной проверки личности на каждый запрос.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"

	query := `SELECT uid, email, password_hash, role, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей в порядке создания.
// Используется административной конечной точкой.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"

	query := `SELECT uid, email, password_hash, role, created_at
			  FROM users
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SetUserRole обновляет роль пользователя. Используется утилитой set-admin.
func (s *Storage) SetUserRole(ctx context.Context, userUID, role string) error {
	const op = "storage.SetUserRole"

	query := `UPDATE users
			  SET role = $1
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, role, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
