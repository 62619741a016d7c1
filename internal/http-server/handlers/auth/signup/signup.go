// Package signup реализует обработчик регистрации нового пользователя.
package signup

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

// Request тело запроса регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registrator описывает контракт сервиса регистрации.
type Registrator interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
}

// SessionEstablisher описывает контракт установки сессии в ответ.
type SessionEstablisher interface {
	Establish(w http.ResponseWriter, user *models.User) (string, error)
}

// New
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Данные для регистрации (email, password)"
// @Success 200 {object} response.UserResponse "Пользователь создан, сессия установлена"
// @Failure 400 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/signup [post]
func New(log *slog.Logger, registrator Registrator, sessions SessionEstablisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.signup.New"

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

		user, err := registrator.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, authservice.ErrEmailTaken) {
				log.Info("signup rejected, email already in use")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Email already in use"))
				return
			}
			log.Error("failed to register new user", sl.Err(err))
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

		log.Info("created new user", slog.String("user_uid", user.UID))
		render.JSON(w, r, response.User(user.PublicView()))
	}
}
