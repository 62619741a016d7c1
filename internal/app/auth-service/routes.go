package authservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/admin/userlist"
	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/auth/login"
	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/auth/logout"
	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/auth/me"
	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/auth/signup"
	"github.com/magabrotheeeer/auth-service/internal/http-server/handlers/health"
	"github.com/magabrotheeeer/auth-service/internal/http-server/mware"
	"github.com/magabrotheeeer/auth-service/internal/http-server/session"
	authservice "github.com/magabrotheeeer/auth-service/internal/services/auth"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

const (
	// Общий лимит запросов в минуту на процесс.
	globalRateLimit = 100
	// Жёсткий лимит на IP для конечных точек с подбором пароля.
	authRateLimit = 10
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authSvc *authservice.Service, sessions *session.Manager, db *storage.Storage, counter mware.WindowCounter, appName, appVersion string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mware.MetricsMiddleware(),
		mware.RateLimitMiddleware(globalRateLimit, logger),
	)

	r.Route("/auth", func(r chi.Router) {
		// Открытые конечные точки с дополнительным лимитом на IP
		r.Group(func(r chi.Router) {
			r.Use(mware.StrictRateLimitMiddleware(counter, authRateLimit, logger))
			r.Post("/signup", signup.New(logger, authSvc, sessions))
			r.Post("/login", login.New(logger, authSvc, sessions))
		})

		r.Group(func(r chi.Router) {
			r.Use(mware.RequireAuth(sessions, logger))
			r.Get("/me", me.New(logger))
		})

		r.Post("/logout", logout.New(logger, sessions))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(mware.RequireAdmin(sessions, logger))
		r.Get("/users", userlist.New(logger, db))
	})

	r.Get("/health", health.New(logger, db, appName, appVersion).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
