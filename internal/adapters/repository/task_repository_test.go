package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/joinboard/api/internal/domain/entities"
)

func sampleTask() *entities.Task {
	due, _ := entities.ParseDate("2026-09-15")
	return &entities.Task{
		Title:       "Prepare release notes",
		Description: "Collect changes since the last tag",
		DueDate:     due,
		Status:      "inProgress",
		AssignedTo:  pq.StringArray{"Sofia Mueller"},
		Subtasks:    entities.SubtaskList{{Title: "Draft", Done: false}},
	}
}

func TestTaskCreateScansGeneratedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	task := sampleTask()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO tasks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))

	task.AuthorID = 7
	require.NoError(t, repo.Create(context.Background(), task))
	require.Equal(t, int64(42), task.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdateOwnedByNonOwnerReadsAsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	task := sampleTask()
	task.ID = 42

	// Statement is scoped to the author, so the row is invisible to other
	// callers and RETURNING yields nothing.
	mock.ExpectQuery("UPDATE tasks").
		WillReturnError(sql.ErrNoRows)

	err := repo.UpdateOwned(context.Background(), task, 99)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdateOwnedStampsAuthorAndTimestamps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	task := sampleTask()
	task.ID = 42

	created := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	updated := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)

	// The row's original created_at comes back with the fresh updated_at,
	// so the update response body matches a subsequent read.
	mock.ExpectQuery("UPDATE tasks").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(created, updated))

	require.NoError(t, repo.UpdateOwned(context.Background(), task, 7))
	require.Equal(t, int64(7), task.AuthorID)
	require.Equal(t, created, task.CreatedAt)
	require.Equal(t, updated, task.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskDeleteOwnedByNonOwnerReadsAsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(42), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteOwned(context.Background(), 42, 99)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskDeleteOwnedByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteOwned(context.Background(), 42, 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
