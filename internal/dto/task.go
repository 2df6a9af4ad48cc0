package dto

import (
	"time"

	"github.com/tasknest/tasknest-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubtaskDTO represents a subtask in API responses
type SubtaskDTO struct {
	ID       string     `json:"id"`
	Subject  string     `json:"subject"`
	Deadline *time.Time `json:"deadline"`
	Status   string     `json:"status"`
	Deleted  bool       `json:"deleted"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID       string       `json:"id"`
	Subject  string       `json:"subject"`
	Deadline *time.Time   `json:"deadline"`
	Status   string       `json:"status"`
	Deleted  bool         `json:"deleted"`
	Subtasks []SubtaskDTO `json:"subtasks"`
}

// MessageResponse is the body of responses that carry no entity
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToSubtaskDTO converts a Subtask model to SubtaskDTO
func ToSubtaskDTO(subtask models.Subtask) SubtaskDTO {
	return SubtaskDTO{
		ID:       subtask.ID,
		Subject:  subtask.Subject,
		Deadline: subtask.Deadline,
		Status:   subtask.Status,
		Deleted:  subtask.Deleted,
	}
}

// ToSubtaskDTOs converts subtasks, always producing a non-nil slice
func ToSubtaskDTOs(subtasks []models.Subtask) []SubtaskDTO {
	out := make([]SubtaskDTO, len(subtasks))
	for i, s := range subtasks {
		out[i] = ToSubtaskDTO(s)
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO. Callers pass the active view;
// no filtering happens here.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:       task.ID,
		Subject:  task.Subject,
		Deadline: task.Deadline,
		Status:   task.Status,
		Deleted:  task.Deleted,
		Subtasks: ToSubtaskDTOs(task.Subtasks),
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
