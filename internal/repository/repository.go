package repository

import (
	"context"

	"github.com/tasknest/tasknest-api/internal/models"
)

// UserRepository defines the interface for user data access. A user row
// carries the user's whole task tree, so it is also the task store.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// SaveTasks writes user.Tasks back in a single transactional update
	SaveTasks(ctx context.Context, user *models.User) error
}
