// Package health реализует проверку состояния сервиса и базы данных.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

// Pinger описывает контракт проверки доступности базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DBStatus описывает результат проверки базы.
type DBStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Response тело ответа /health. Ответ всегда приходит с кодом 200,
// деградация видна по полю status.
type Response struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Status  string   `json:"status"`
	DB      DBStatus `json:"db"`
}

// Handler отвечает на запросы /health.
type Handler struct {
	log     *slog.Logger
	db      Pinger
	name    string
	version string
}

// New создает обработчик /health с именем и версией сервиса из конфига.
func New(log *slog.Logger, db Pinger, name, version string) *Handler {
	return &Handler{
		log:     log,
		db:      db,
		name:    name,
		version: version,
	}
}

// ServeHTTP
// @Summary Состояние сервиса и базы данных
// @Tags health
// @Produce json
// @Success 200 {object} Response "status ok либо degraded с текстом ошибки базы"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	resp := Response{
		Name:    h.name,
		Version: h.version,
		Status:  "ok",
		DB:      DBStatus{OK: true},
	}

	if err := h.db.Ping(r.Context()); err != nil {
		h.log.Error("database health check failed", slog.String("op", op), sl.Err(err))
		resp.Status = "degraded"
		resp.DB = DBStatus{OK: false, Error: err.Error()}
	}

	render.JSON(w, r, resp)
}
