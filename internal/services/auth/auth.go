// Package auth содержит логику бизнес-уровня для регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/auth-service/internal/lib/password"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// Ошибки бизнес-уровня. Обработчики переводят их в коды ответов:
// ErrEmailTaken в 400, ErrInvalidCredentials в 401.
var (
	// ErrEmailTaken возвращается при попытке регистрации на занятый email.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials возвращается при неверном email или пароле.
	// Причина (нет пользователя или не совпал пароль) не раскрывается.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя с ролью USER и возвращает запись.
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email без учёта регистра
	// или storage.ErrUserNotFound, если такого нет.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за регистрацию и проверку учетных данных.
type Service struct {
	users UserRepository
}

// New создает новый экземпляр Service.
func New(users UserRepository) *Service {
	return &Service{users: users}
}

// NormalizeEmail приводит email к каноническому виду для поиска и хранения.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает нового пользователя с хэшированием пароля и ролью USER.
//
// Предварительная проверка занятости email — оптимизация: при гонке
// параллельных регистраций уникальный индекс базы вернет ту же ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "services.auth.Register"

	email = NormalizeEmail(email)

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Login проверяет пароль пользователя и возвращает его запись.
//
// Неизвестный email и неверный пароль дают одну и ту же ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	return user, nil
}
