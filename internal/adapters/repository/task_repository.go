package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (title, description, due_date, status, category, priority,
			assigned_to, bgcolor, subtasks, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Status,
		task.Category, task.Priority, task.AssignedTo, task.BgColor,
		task.Subtasks, task.AuthorID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	query := `
		SELECT id, title, description, due_date, status, category, priority,
			assigned_to, bgcolor, subtasks, author_id, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, due_date, status, category, priority,
			assigned_to, bgcolor, subtasks, author_id, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC`

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// UpdateOwned replaces the task's fields. The statement is scoped to the
// author, so a non-owner update reads as not found without a separate
// existence probe.
func (r *TaskRepositoryImpl) UpdateOwned(ctx context.Context, task *entities.Task, authorID int64) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, due_date = $5, status = $6, category = $7,
			priority = $8, assigned_to = $9, bgcolor = $10, subtasks = $11,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND author_id = $2
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, authorID,
		task.Title, task.Description, task.DueDate, task.Status, task.Category,
		task.Priority, task.AssignedTo, task.BgColor, task.Subtasks,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	task.AuthorID = authorID
	return nil
}

func (r *TaskRepositoryImpl) DeleteOwned(ctx context.Context, id, authorID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, authorID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}
