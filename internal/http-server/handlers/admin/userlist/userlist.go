// Package userlist реализует административный список пользователей.
package userlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

// UserLister описывает контракт чтения всех пользователей из хранилища.
type UserLister interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// New
// @Summary Список пользователей (только для администраторов)
// @Tags admin
// @Produce json
// @Success 200 {object} response.UserListResponse "Публичные представления всех пользователей"
// @Failure 401 {object} response.ErrorResponse "Нет валидной сессии"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users [get]
func New(log *slog.Logger, users UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.userlist.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		all, err := users.ListUsers(r.Context())
		if err != nil {
			log.Error("failed to list users", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}

		views := make([]models.AuthUser, 0, len(all))
		for _, u := range all {
			views = append(views, u.PublicView())
		}
		render.JSON(w, r, response.Users(views))
	}
}
