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

// SubtaskRepositoryImpl implements the SubtaskRepository interface
type SubtaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewSubtaskRepository creates a new subtask repository
func NewSubtaskRepository(db *sqlx.DB) ports.SubtaskRepository {
	return &SubtaskRepositoryImpl{db: db}
}

func (r *SubtaskRepositoryImpl) Create(ctx context.Context, subtask *entities.Subtask) error {
	query := `
		INSERT INTO subtasks (title)
		VALUES ($1)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, subtask.Title).Scan(&subtask.ID, &subtask.CreatedAt)
	if err != nil {
		return fmt.Errorf("create subtask: %w", err)
	}

	return nil
}

func (r *SubtaskRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Subtask, error) {
	query := `SELECT id, title, created_at FROM subtasks WHERE id = $1`

	var subtask entities.Subtask
	err := r.db.GetContext(ctx, &subtask, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("get subtask by id: %w", err)
	}

	return &subtask, nil
}

func (r *SubtaskRepositoryImpl) List(ctx context.Context) ([]*entities.Subtask, error) {
	query := `SELECT id, title, created_at FROM subtasks ORDER BY id`

	subtasks := []*entities.Subtask{}
	err := r.db.SelectContext(ctx, &subtasks, query)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}

	return subtasks, nil
}

func (r *SubtaskRepositoryImpl) Update(ctx context.Context, subtask *entities.Subtask) error {
	query := `
		UPDATE subtasks
		SET title = $2
		WHERE id = $1
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, subtask.ID, subtask.Title).Scan(&subtask.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrSubtaskNotFound
		}
		return fmt.Errorf("update subtask: %w", err)
	}

	return nil
}

func (r *SubtaskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM subtasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subtask: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrSubtaskNotFound
	}

	return nil
}
