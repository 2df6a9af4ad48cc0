package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/tasknest-api/internal/middleware"
)

// RegisterRoutes mounts the public auth routes and the token-protected task
// routes on r.
func RegisterRoutes(r *gin.Engine, authHandler *AuthHandler, taskHandler *TaskHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Manager API is running",
		})
	})

	requireAuth := middleware.RequireAuth(authHandler.authService)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
	}

	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:taskId", taskHandler.GetTask)
		tasks.PUT("/:taskId", taskHandler.UpdateTask)
		tasks.DELETE("/:taskId", taskHandler.DeleteTask)

		tasks.GET("/:taskId/subtasks", taskHandler.ListSubtasks)
		tasks.POST("/:taskId/subtasks", taskHandler.AddSubtasks)
		tasks.PUT("/:taskId/subtasks", taskHandler.SyncSubtasks)
		tasks.POST("/:taskId/subtasks/suggest", taskHandler.SuggestSubtasks)
	}
}
