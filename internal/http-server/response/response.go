// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов HTTP-обработчиков. Формат тела соответствует контракту API:
// успешные ответы несут полезные данные, ошибки приходят как {"error": "..."}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auth-service/internal/models"
)

// ErrorResponse описывает тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid email or password"`
}

// UserResponse описывает тело успешного ответа с публичным представлением пользователя.
type UserResponse struct {
	User models.AuthUser `json:"user"`
}

// UserListResponse описывает тело ответа административного списка пользователей.
type UserListResponse struct {
	Users []models.AuthUser `json:"users"`
}

// SuccessResponse описывает тело ответа операций без полезных данных (logout).
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// User возвращает UserResponse с публичным представлением пользователя.
func User(user models.AuthUser) UserResponse {
	return UserResponse{User: user}
}

// Users возвращает UserListResponse со списком публичных представлений.
func Users(users []models.AuthUser) UserListResponse {
	return UserListResponse{Users: users}
}

// Success возвращает SuccessResponse.
func Success() SuccessResponse {
	return SuccessResponse{Success: true}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение переводится в человеко-читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters long", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
