// Package mware содержит middleware для HTTP-сервера.
// Здесь реализованы проверки аутентификации и роли перед защищенными
// обработчиками, ограничение частоты запросов и сбор метрик.
package mware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

type ctxKey string

// authUserKey ключ контекста с разрешённой личностью запроса.
const authUserKey ctxKey = "auth_user"

// UserResolver описывает контракт разрешения личности текущего запроса.
// Возвращает nil, если валидной сессии нет.
type UserResolver interface {
	ResolveUser(r *http.Request) *models.AuthUser
}

// AuthUserFromContext возвращает личность запроса, положенную RequireAuth
// или RequireAdmin.
func AuthUserFromContext(ctx context.Context) (*models.AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(*models.AuthUser)
	return user, ok
}

// RequireAuth возвращает middleware, которое пропускает запрос дальше только
// при наличии валидной сессии. Анонимный запрос получает 401,
// разрешённая личность кладётся в контекст запроса.
func RequireAuth(sessions UserResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.RequireAuth"

			user := sessions.ResolveUser(r)
			if user == nil {
				log.Debug("anonymous request to protected endpoint",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin возвращает middleware, которое требует валидную сессию
// с ролью ADMIN.
//
// Порядок проверок фиксирован: сначала аутентификация, потом роль.
// Анонимный запрос всегда получает 401, и только известный пользователь
// с недостаточной ролью получает 403.
func RequireAdmin(sessions UserResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.RequireAdmin"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user := sessions.ResolveUser(r)
			if user == nil {
				log.Debug("anonymous request to admin endpoint", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if user.Role != models.RoleAdmin {
				log.Warn("forbidden admin access attempt",
					slog.String("user_uid", user.UID),
					slog.String("role", user.Role),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
