// Команда set-admin назначает пользователю роль ADMIN по его email.
//
// Использование:
//
//	CONFIG_PATH=config/local.yaml set-admin user@example.com
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/auth-service/internal/config"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: set-admin <email>")
		os.Exit(2)
	}
	email := os.Args[1]

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	user, err := db.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Error("user not found", slog.String("email", email))
			os.Exit(1)
		}
		logger.Error("failed to find user", sl.Err(err))
		os.Exit(1)
	}

	if user.Role == models.RoleAdmin {
		logger.Info("user is already an admin", slog.String("email", user.Email))
		return
	}

	if err := db.SetUserRole(ctx, user.UID, models.RoleAdmin); err != nil {
		logger.Error("failed to update role", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("user promoted to admin",
		slog.String("email", user.Email),
		slog.String("uid", user.UID))
}
