package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/constants"
	"github.com/tasknest/tasknest-api/internal/models"
	"github.com/tasknest/tasknest-api/internal/reconcile"
	"github.com/tasknest/tasknest-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoValidSubtasks      = errors.New("no valid subtasks could be suggested")
)

// TaskService handles task and subtask business logic. Every operation loads
// the owning user, edits the task tree in memory and saves it back whole.
type TaskService struct {
	userRepo  repository.UserRepository
	aiService *AIService
	newID     func() string
}

// NewTaskService creates a new TaskService
func NewTaskService(userRepo repository.UserRepository, aiService *AIService) *TaskService {
	return &TaskService{
		userRepo:  userRepo,
		aiService: aiService,
		newID:     uuid.NewString,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Subject  string
	Deadline *time.Time
	Status   *string
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Subject       *string
	Deadline      *time.Time
	ClearDeadline bool
	Status        *string
}

// ListTasks returns the active tasks of a user, each with its active subtasks
func (s *TaskService) ListTasks(ctx context.Context, userID uint64) ([]models.Task, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.ActiveTasks(user.Tasks), nil
}

// GetTask returns the active view of a single task
func (s *TaskService) GetTask(ctx context.Context, userID uint64, taskID string) (*models.Task, error) {
	_, task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	active := task.Active()
	return &active, nil
}

// CreateTask appends a new task to the user's task list
func (s *TaskService) CreateTask(ctx context.Context, userID uint64, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrValidation)
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:       s.newID(),
		Subject:  input.Subject,
		Deadline: input.Deadline,
		Status:   models.TaskStatusPending,
		Subtasks: []models.Subtask{},
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	user.Tasks = append(user.Tasks, task)
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask patches the fields present in input
func (s *TaskService) UpdateTask(ctx context.Context, userID uint64, taskID string, input UpdateTaskInput) (*models.Task, error) {
	if input.Subject != nil && strings.TrimSpace(*input.Subject) == "" {
		return nil, fmt.Errorf("%w: subject cannot be empty", ErrValidation)
	}

	user, task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Subject != nil {
		task.Subject = *input.Subject
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	active := task.Active()
	return &active, nil
}

// DeleteTask soft-deletes a task. Deleting it again reports ErrTaskNotFound.
func (s *TaskService) DeleteTask(ctx context.Context, userID uint64, taskID string) error {
	user, task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	task.Deleted = true
	return s.save(ctx, user)
}

// ListSubtasks returns the active subtasks of a task
func (s *TaskService) ListSubtasks(ctx context.Context, userID uint64, taskID string) ([]models.Subtask, error) {
	_, task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return models.ActiveSubtasks(task.Subtasks), nil
}

// AddSubtasks appends new subtasks and returns the task's active subtasks
func (s *TaskService) AddSubtasks(ctx context.Context, userID uint64, taskID string, input []reconcile.Descriptor) ([]models.Subtask, error) {
	return s.mutateSubtasks(ctx, userID, taskID, func(stored []models.Subtask) ([]models.Subtask, error) {
		return reconcile.Append(stored, input, s.newID)
	})
}

// SyncSubtasks reconciles the task's subtasks against input and returns the
// resulting active subtasks
func (s *TaskService) SyncSubtasks(ctx context.Context, userID uint64, taskID string, input []reconcile.Descriptor) ([]models.Subtask, error) {
	return s.mutateSubtasks(ctx, userID, taskID, func(stored []models.Subtask) ([]models.Subtask, error) {
		return reconcile.Sync(stored, input, s.newID)
	})
}

// SuggestSubtasks asks the AI service to break a task down. Nothing is saved.
func (s *TaskService) SuggestSubtasks(ctx context.Context, userID uint64, taskID string) ([]SuggestedSubtask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	_, task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.aiService.SuggestSubtasks(ctx, task.Active())
	if err != nil {
		return nil, fmt.Errorf("failed to suggest subtasks: %w", err)
	}

	valid := make([]SuggestedSubtask, 0, len(suggestions))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, suggestion := range suggestions {
		if strings.TrimSpace(suggestion.Subject) == "" {
			continue
		}
		if suggestion.Deadline != nil && suggestion.Deadline.Before(cutoff) {
			suggestion.Deadline = nil
		}
		valid = append(valid, suggestion)
		if len(valid) == constants.MaxSuggestedSubtasks {
			break
		}
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidSubtasks
	}
	return valid, nil
}

func (s *TaskService) mutateSubtasks(ctx context.Context, userID uint64, taskID string, apply func([]models.Subtask) ([]models.Subtask, error)) ([]models.Subtask, error) {
	user, task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	updated, err := apply(task.Subtasks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	task.Subtasks = updated
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	return models.ActiveSubtasks(task.Subtasks), nil
}

func (s *TaskService) loadUser(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// loadTask returns the user and a pointer into user.Tasks for taskID.
// Soft-deleted tasks are reported as ErrTaskNotFound.
func (s *TaskService) loadTask(ctx context.Context, userID uint64, taskID string) (*models.User, *models.Task, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	task := user.FindTask(taskID)
	if task == nil {
		return nil, nil, ErrTaskNotFound
	}
	return user, task, nil
}

func (s *TaskService) save(ctx context.Context, user *models.User) error {
	if err := s.userRepo.SaveTasks(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
