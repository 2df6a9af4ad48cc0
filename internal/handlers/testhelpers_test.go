package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest-api/internal/auth"
	"github.com/tasknest/tasknest-api/internal/models"
	"github.com/tasknest/tasknest-api/internal/repository"
	"github.com/tasknest/tasknest-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type handlerTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *auth.TokenManager
	authService *services.AuthService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	return setupHandlerTestEnvWithAI(t, nil)
}

func setupHandlerTestEnvWithAI(t *testing.T, aiService *services.AIService) handlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}))

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(userRepo, aiService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r,
		NewAuthHandler(authService, zap.NewNop()),
		NewTaskHandler(taskService, zap.NewNop()),
	)

	return handlerTestEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		authService: authService,
	}
}

// createUser stores a user directly and returns it with a valid token.
func (env handlerTestEnv) createUser(t *testing.T, email string, tasks ...models.Task) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Tasks:        models.TaskList(tasks),
	}
	require.NoError(t, env.db.Create(user).Error)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (env handlerTestEnv) reload(t *testing.T, id uint64) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, env.db.First(&user, id).Error)
	return &user
}

func (env handlerTestEnv) do(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
