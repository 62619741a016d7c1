// Package logout реализует обработчик завершения сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
)

// SessionClearer описывает контракт очистки cookie сессии.
type SessionClearer interface {
	Clear(w http.ResponseWriter)
}

// New
// @Summary Выход из сессии
// @Tags auth
// @Produce json
// @Success 200 {object} response.SuccessResponse "Сессия завершена"
// @Router /auth/logout [post]
func New(log *slog.Logger, sessions SessionClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		// очистка идемпотентна: запрос без сессии тоже получает success
		sessions.Clear(w)

		log.Debug("session cleared",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.JSON(w, r, response.Success())
	}
}
