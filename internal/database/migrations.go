package database

import (
	"fmt"

	"github.com/tasknest/tasknest-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates or updates the users table. Tasks and subtasks live in the
// users.tasks document column and need no tables of their own.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations completed")
	return nil
}
