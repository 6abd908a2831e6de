package ports

import (
	"context"

	"github.com/joinboard/api/internal/domain/entities"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
}

// TokenRepository defines the interface for auth token operations.
type TokenRepository interface {
	// GetOrCreate returns the user's live token, inserting candidate only
	// when no token exists. The operation is atomic per user: concurrent
	// callers observe the same token value.
	GetOrCreate(ctx context.Context, userID int64, candidate string) (*entities.AuthToken, error)
	GetByToken(ctx context.Context, token string) (*entities.AuthToken, error)
	// DeleteByUserID revokes the user's token. Deleting an absent token is
	// not an error.
	DeleteByUserID(ctx context.Context, userID int64) error
}

// TaskRepository defines the interface for task data operations. Update and
// Delete are scoped to the author so a non-owner mutation reads as absence.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	List(ctx context.Context) ([]*entities.Task, error)
	UpdateOwned(ctx context.Context, task *entities.Task, authorID int64) error
	DeleteOwned(ctx context.Context, id, authorID int64) error
}

// ContactRepository defines the interface for contact data operations.
type ContactRepository interface {
	Create(ctx context.Context, contact *entities.Contact) error
	GetByID(ctx context.Context, id int64) (*entities.Contact, error)
	List(ctx context.Context) ([]*entities.Contact, error)
	Update(ctx context.Context, contact *entities.Contact) error
	Delete(ctx context.Context, id int64) error
}

// SubtaskRepository defines the interface for standalone subtask records.
type SubtaskRepository interface {
	Create(ctx context.Context, subtask *entities.Subtask) error
	GetByID(ctx context.Context, id int64) (*entities.Subtask, error)
	List(ctx context.Context) ([]*entities.Subtask, error)
	Update(ctx context.Context, subtask *entities.Subtask) error
	Delete(ctx context.Context, id int64) error
}
