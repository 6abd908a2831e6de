package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/joinboard/api/internal/domain/entities"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestTokenGetOrCreateReturnsSurvivingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	created := time.Now()
	// The stored token wins over the candidate when a row already exists.
	mock.ExpectQuery("INSERT INTO auth_tokens").
		WithArgs(int64(7), "cafecafecafecafecafecafecafecafecafecafe").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "created_at"}).
			AddRow(int64(3), int64(7), "beadbeadbeadbeadbeadbeadbeadbeadbeadbead", created))

	token, err := repo.GetOrCreate(context.Background(), 7, "cafecafecafecafecafecafecafecafecafecafe")
	require.NoError(t, err)
	require.Equal(t, int64(7), token.UserID)
	require.Equal(t, "beadbeadbeadbeadbeadbeadbeadbeadbeadbead", token.Token)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenGetByTokenNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectQuery("SELECT id, user_id, token, created_at").
		WithArgs("0000000000000000000000000000000000000000").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "created_at"}))

	_, err := repo.GetByToken(context.Background(), "0000000000000000000000000000000000000000")
	require.ErrorIs(t, err, entities.ErrTokenNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenDeleteByUserIDIgnoresAbsentRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectExec("DELETE FROM auth_tokens").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByUserID(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
