// Package session реализует жизненный цикл сессии на основе cookie.
//
// Токен сессии выдается клиенту в HTTP-only cookie и не хранится на сервере:
// валидность определяется подписью и сроком действия. Разрешение личности
// текущего запроса всегда перечитывает пользователя из хранилища, чтобы смена
// роли или удаление учетной записи действовали без ожидания истечения токена.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	jwtlib "github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

// CookieName имя cookie с токеном сессии.
const CookieName = "auth_token"

// UserProvider описывает контракт чтения пользователя из хранилища по uid.
type UserProvider interface {
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
}

// Manager управляет cookie сессии: установка, очистка и разрешение
// личности текущего запроса.
type Manager struct {
	jwtMaker jwtlib.Maker
	users    UserProvider
	tokenTTL time.Duration
	secure   bool
	log      *slog.Logger
}

// NewManager создает менеджер сессий.
// Флаг secure включается в боевом окружении и требует HTTPS для cookie.
func NewManager(jwtMaker jwtlib.Maker, users UserProvider, tokenTTL time.Duration, secure bool, log *slog.Logger) *Manager {
	return &Manager{
		jwtMaker: jwtMaker,
		users:    users,
		tokenTTL: tokenTTL,
		secure:   secure,
		log:      log,
	}
}

// Establish подписывает токен для пользователя и записывает его в cookie ответа.
// MaxAge cookie совпадает со сроком жизни токена. Возвращает значение токена.
func (m *Manager) Establish(w http.ResponseWriter, user *models.User) (string, error) {
	const op = "session.Establish"

	token, err := m.jwtMaker.GenerateToken(user.UID, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.tokenTTL.Seconds()),
	})
	return token, nil
}

// Clear удаляет cookie сессии. Идемпотентна: безопасна и без активной сессии.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ResolveUser возвращает личность текущего запроса или nil,
// если валидной сессии нет.
//
// Любой сбой (нет cookie, плохая подпись, истекший токен, пользователь
// удален, ошибка хранилища) дает nil: отсутствие сессии — обычное
// состояние запроса, а не ошибка, и наружу она не поднимается.
func (m *Manager) ResolveUser(r *http.Request) *models.AuthUser {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := m.jwtMaker.ParseToken(cookie.Value)
	if err != nil {
		m.log.Debug("failed to parse session token", sl.Err(err))
		return nil
	}

	user, err := m.users.GetUserByUID(r.Context(), claims.UserUID)
	if err != nil {
		m.log.Debug("failed to load session user", sl.Err(err))
		return nil
	}

	authUser := user.PublicView()
	return &authUser
}
