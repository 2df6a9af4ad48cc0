package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/tasknest-api/internal/dto"
	apierrors "github.com/tasknest/tasknest-api/internal/errors"
	"github.com/tasknest/tasknest-api/internal/middleware"
)

// ListSubtasks returns the active subtasks of a task
func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	subtasks, err := h.taskService.ListSubtasks(c.Request.Context(), userID, c.Param("taskId"))
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTOs(subtasks))
}

// AddSubtasks appends the submitted subtasks
func (h *TaskHandler) AddSubtasks(c *gin.Context) {
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
	descriptors, err := parseSubtaskDescriptors(body)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	subtasks, err := h.taskService.AddSubtasks(c.Request.Context(), userID, c.Param("taskId"), descriptors)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubtaskDTOs(subtasks))
}

// SyncSubtasks reconciles the stored subtasks against the submitted list.
// Stored entries missing from the list are soft-deleted.
func (h *TaskHandler) SyncSubtasks(c *gin.Context) {
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
	descriptors, err := parseSubtaskDescriptors(body)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	subtasks, err := h.taskService.SyncSubtasks(c.Request.Context(), userID, c.Param("taskId"), descriptors)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTOs(subtasks))
}

// SuggestSubtasks proposes subtasks for a task using the AI service
func (h *TaskHandler) SuggestSubtasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	suggestions, err := h.taskService.SuggestSubtasks(c.Request.Context(), userID, c.Param("taskId"))
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subtasks": suggestions,
	})
}
