// Package me реализует обработчик запроса текущей сессии.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http-server/mware"
	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
)

// New
// @Summary Текущий пользователь сессии
// @Tags auth
// @Produce json
// @Success 200 {object} response.UserResponse "Публичное представление пользователя"
// @Failure 401 {object} response.ErrorResponse "Нет валидной сессии"
// @Router /auth/me [get]
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.me.New"

		// личность кладет в контекст RequireAuth, маршрут без него не собирается
		user, ok := mware.AuthUserFromContext(r.Context())
		if !ok {
			log.Error("auth user missing in context",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		render.JSON(w, r, response.User(*user))
	}
}
