// Package bootstrap initializes the process-wide runtime dependencies.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"itinfo/internal/cache"
	"itinfo/internal/config"
	"itinfo/internal/database"
	"itinfo/internal/middleware"
	"itinfo/internal/models"
	"itinfo/internal/storage"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUserID is the account the bootstrap keeps as administrator.
const AdminUserID uint = 1

// InitRuntime connects to DB and Redis and ensures the admin account exists.
// The Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.InitRedis(cfg.RedisURL)

	if err := EnsureAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	return db, r, nil
}

// InitStorage returns the image uploader, or nil when MinIO is not configured
// or unreachable.
func InitStorage(ctx context.Context, cfg *config.Config) storage.Uploader {
	up, err := storage.NewMinio(ctx, storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			middleware.Logger.Warn("object storage unavailable, uploads disabled", slog.String("error", err.Error()))
		}
		return nil
	}
	return up
}

// EnsureAdmin makes user AdminUserID an administrator, creating it from the
// ADMIN_* settings when it does not exist. Without ADMIN_PASSWORD an existing
// user 1 is still promoted but no account is created.
func EnsureAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	name := strings.TrimSpace(cfg.AdminName)
	password := cfg.AdminPassword

	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.First(&admin, AdminUserID).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if password == "" || email == "" {
				middleware.Logger.Info("admin bootstrap skipped: ADMIN_EMAIL/ADMIN_PASSWORD not set")
				return nil
			}
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			admin = models.User{
				ID:       AdminUserID,
				Name:     name,
				Email:    email,
				Password: string(hashedPassword),
				IsAdmin:  true,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		case admin.IsAdmin:
			return nil
		default:
			if err := tx.Model(&models.User{}).Where("user_id = ?", AdminUserID).Update("is_admin", true).Error; err != nil {
				return err
			}
		}

		// Keep the users ID sequence ahead of the explicit ID insert.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('it_info_users', 'user_id'),
					GREATEST((SELECT COALESCE(MAX(user_id), 1) FROM it_info_users), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset users sequence: %w", err)
			}
		}

		middleware.Logger.Info("admin account ensured", slog.Uint64("user_id", uint64(AdminUserID)), slog.String("email", admin.Email))
		return nil
	})
}
