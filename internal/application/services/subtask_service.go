package services

import (
	"context"

	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/logger"
	"github.com/joinboard/api/internal/ports"
)

// SubtaskService handles the standalone subtask records. The primary code
// path carries subtasks embedded on the task; this resource only preserves
// the endpoint shape.
type SubtaskService struct {
	subtaskRepo ports.SubtaskRepository
	logger      *logger.Logger
}

// NewSubtaskService creates a new subtask service
func NewSubtaskService(subtaskRepo ports.SubtaskRepository, logger *logger.Logger) *SubtaskService {
	return &SubtaskService{
		subtaskRepo: subtaskRepo,
		logger:      logger,
	}
}

// SubtaskRequest carries the subtask payload
type SubtaskRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// CreateSubtask persists a new subtask record.
func (s *SubtaskService) CreateSubtask(ctx context.Context, req SubtaskRequest) (*entities.Subtask, error) {
	subtask := &entities.Subtask{Title: req.Title}

	if err := s.subtaskRepo.Create(ctx, subtask); err != nil {
		return nil, err
	}

	return subtask, nil
}

// GetSubtask retrieves a subtask by ID.
func (s *SubtaskService) GetSubtask(ctx context.Context, id int64) (*entities.Subtask, error) {
	return s.subtaskRepo.GetByID(ctx, id)
}

// ListSubtasks retrieves all subtask records.
func (s *SubtaskService) ListSubtasks(ctx context.Context) ([]*entities.Subtask, error) {
	return s.subtaskRepo.List(ctx)
}

// UpdateSubtask replaces the subtask's title.
func (s *SubtaskService) UpdateSubtask(ctx context.Context, id int64, req SubtaskRequest) (*entities.Subtask, error) {
	subtask := &entities.Subtask{ID: id, Title: req.Title}

	if err := s.subtaskRepo.Update(ctx, subtask); err != nil {
		return nil, err
	}

	return subtask, nil
}

// DeleteSubtask removes the subtask record.
func (s *SubtaskService) DeleteSubtask(ctx context.Context, id int64) error {
	return s.subtaskRepo.Delete(ctx, id)
}
