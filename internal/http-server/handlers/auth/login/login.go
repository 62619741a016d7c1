// Package login реализует обработчик входа по email и паролю.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	authservice "github.com/magabrotheeeer/auth-service/internal/services/auth"
)

// Request тело запроса входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Authenticator описывает контракт сервиса проверки учетных данных.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// SessionEstablisher описывает контракт установки сессии в ответ.
type SessionEstablisher interface {
	Establish(w http.ResponseWriter, user *models.User) (string, error)
}

// New
// @Summary Вход по email и паролю
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Учетные данные (email, password)"
// @Success 200 {object} response.UserResponse "Сессия установлена"
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func New(log *slog.Logger, authenticator Authenticator, sessions SessionEstablisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
			log.Error("failed to validate request", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}

		user, err := authenticator.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				// одинаковый ответ для неизвестного email и неверного пароля
				log.Info("login rejected")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid email or password"))
				return
			}
			log.Error("failed to login user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}

		if _, err := sessions.Establish(w, user); err != nil {
			log.Error("failed to establish session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}

		log.Info("user logged in", slog.String("user_uid", user.UID))
		render.JSON(w, r, response.User(user.PublicView()))
	}
}
