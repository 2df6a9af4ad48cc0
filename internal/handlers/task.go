package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/tasknest-api/internal/dto"
	apierrors "github.com/tasknest/tasknest-api/internal/errors"
	"github.com/tasknest/tasknest-api/internal/middleware"
	"github.com/tasknest/tasknest-api/internal/services"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *services.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService *services.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns the caller's active tasks with their active subtasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns one active task
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), userID, c.Param("taskId"))
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	input, err := parseCreateTask(body)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask patches the fields present in the request body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	input, err := parseUpdateTask(body)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, c.Param("taskId"), input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, c.Param("taskId")); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted"})
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoValidSubtasks):
		h.logger.Warn("AI returned no usable subtasks", zap.String("task_id", c.Param("taskId")))
		apierrors.BadGateway(c, "AI service returned no valid subtasks")
	default:
		h.logger.Error("task request failed",
			zap.String("path", c.FullPath()),
			zap.String("task_id", c.Param("taskId")),
			zap.Error(err),
		)
		apierrors.InternalError(c, "Internal server error")
	}
}
