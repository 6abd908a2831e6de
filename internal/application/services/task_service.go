package services

import (
	"context"

	"github.com/lib/pq"

	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/logger"
	"github.com/joinboard/api/internal/ports"
)

// TaskService handles task operations and owner scoping.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// TaskRequest carries the full task payload. Update uses the same shape as
// create: fields not supplied fail validation rather than merge.
type TaskRequest struct {
	Title       string                 `json:"title" validate:"required,max=100"`
	Description string                 `json:"description" validate:"required"`
	DueDate     entities.Date          `json:"due_date" validate:"required"`
	Status      string                 `json:"status" validate:"required,max=20"`
	Category    *string                `json:"category"`
	Priority    *string                `json:"priority"`
	AssignedTo  []string               `json:"assignedTo"`
	BgColor     *string                `json:"bgcolor"`
	Subtasks    []entities.SubtaskItem `json:"subtasks"`
}

func (req *TaskRequest) toEntity() *entities.Task {
	return &entities.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Category:    req.Category,
		Priority:    req.Priority,
		AssignedTo:  pq.StringArray(req.AssignedTo),
		BgColor:     req.BgColor,
		Subtasks:    entities.SubtaskList(req.Subtasks),
	}
}

// CreateTask persists a new task owned by authorID.
func (s *TaskService) CreateTask(ctx context.Context, authorID int64, req TaskRequest) (*entities.Task, error) {
	task := req.toEntity()
	task.AuthorID = authorID

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("Task created", "task_id", task.ID, "author_id", authorID)
	return task, nil
}

// GetTask retrieves a task by ID. Reads carry no ownership restriction.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// ListTasks retrieves all tasks.
func (s *TaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	return s.taskRepo.List(ctx)
}

// UpdateTask replaces the task's fields. callerID must own the task; a
// non-owner caller gets ErrTaskNotFound, never a forbidden error, so task
// existence is not confirmed to outsiders.
func (s *TaskService) UpdateTask(ctx context.Context, id, callerID int64, req TaskRequest) (*entities.Task, error) {
	task := req.toEntity()
	task.ID = id

	if err := s.taskRepo.UpdateOwned(ctx, task, callerID); err != nil {
		return nil, err
	}

	s.logger.Infow("Task updated", "task_id", id, "author_id", callerID)
	return task, nil
}

// DeleteTask removes the task. Owner scoping matches UpdateTask.
func (s *TaskService) DeleteTask(ctx context.Context, id, callerID int64) error {
	if err := s.taskRepo.DeleteOwned(ctx, id, callerID); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", id, "author_id", callerID)
	return nil
}
