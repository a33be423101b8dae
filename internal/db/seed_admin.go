package db

import (
	"context"
	"log/slog"

	"github.com/geocoder89/vallas-api/internal/config"
)

type AdminCreator interface {
	EnsureAdmin(ctx context.Context, email, password, username string) (bool, error)
}

// EnsureAdminUser creates the bootstrap admin from ADMIN_EMAIL/ADMIN_PASSWORD
// when both are set. Running it again is a no-op.
func EnsureAdminUser(ctx context.Context, users AdminCreator, cfg config.Config, log *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	username := cfg.AdminUsername
	if username == "" {
		username = "admin"
	}

	created, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, username)
	if err != nil {
		return err
	}

	if created {
		log.Info("admin user created", "email", cfg.AdminEmail)
	}

	return nil
}
