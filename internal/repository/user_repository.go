package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasknest/tasknest-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrSaveTasks is returned when the task document could not be written.
	ErrSaveTasks = errors.New("user repository: save tasks failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Tasks == nil {
		user.Tasks = models.TaskList{}
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by exact email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveTasks replaces the stored task document of user. The row must exist.
func (r *GormUserRepository) SaveTasks(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("tasks", user.Tasks)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrSaveTasks, result.Error)
		}
		if result.RowsAffected > 0 {
			return nil
		}

		// Some drivers count changed rows only, so an identical document
		// reports zero rows affected.
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrSaveTasks, err)
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
