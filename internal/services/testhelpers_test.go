package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest-api/internal/auth"
	"github.com/tasknest/tasknest-api/internal/models"
	"github.com/tasknest/tasknest-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	tokens      *auth.TokenManager
	authService *AuthService
	taskService *TaskService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every new connection to :memory: would see an empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}))

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	return serviceTestEnv{
		db:          db,
		userRepo:    userRepo,
		tokens:      tokens,
		authService: NewAuthService(userRepo, tokens),
		taskService: NewTaskService(userRepo, nil),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, email string, tasks ...models.Task) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Tasks:        models.TaskList(tasks),
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env serviceTestEnv) reload(t *testing.T, id uint64) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, env.db.First(&user, id).Error)
	return &user
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
