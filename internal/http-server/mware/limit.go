package mware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/auth-service/internal/http-server/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

const rateLimitMessage = "Rate limit exceeded. Please try again later."

// RateLimitMiddleware возвращает middleware с общим ограничением частоты
// запросов: limit запросов в минуту на весь сервис.
func RateLimitMiddleware(limit int, log *slog.Logger) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(limit)), limit)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("global rate limit exceeded", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error(rateLimitMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WindowCounter описывает контракт счётчика с фиксированным окном.
// Возвращает номер запроса в текущем окне для данного ключа.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// StrictRateLimitMiddleware возвращает middleware с жёстким пер-IP
// ограничением: limit запросов в минуту на адрес и путь. Применяется к
// конечным точкам с подбором учетных данных (signup, login).
//
// Счётчики живут в redis, поэтому лимит общий для всех реплик сервиса.
// При недоступности redis запрос пропускается: доступность логина важнее
// строгости лимита.
func StrictRateLimitMiddleware(counter WindowCounter, limit int, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.StrictRateLimit"

			key := "ratelimit:" + clientIP(r) + ":" + r.URL.Path
			count, err := counter.IncrWindow(r.Context(), key, time.Minute)
			if err != nil {
				log.Error("rate limit counter unavailable", slog.String("op", op), sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(limit) {
				log.Warn("strict rate limit exceeded",
					slog.String("op", op),
					slog.String("ip", clientIP(r)),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error(rateLimitMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP возвращает адрес клиента без порта.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
