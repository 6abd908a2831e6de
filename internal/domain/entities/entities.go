package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrSubtaskNotFound    = errors.New("subtask not found")
	ErrTokenNotFound      = errors.New("token not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already registered")
)

// User represents a registered account. The password is stored only as a
// bcrypt hash and is never serialized.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// AuthToken is the opaque bearer credential bound 1:1 to a user. It is
// created lazily on first login, returned unchanged on later logins, and
// deleted on logout. Tokens do not expire.
type AuthToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Task represents a board card. AuthorID is set from the authenticated
// identity at creation and is immutable; only the author may update or
// delete the task.
type Task struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	DueDate     Date           `json:"due_date" db:"due_date"`
	Status      string         `json:"status" db:"status"`
	Category    *string        `json:"category" db:"category"`
	Priority    *string        `json:"priority" db:"priority"`
	AssignedTo  pq.StringArray `json:"assignedTo" db:"assigned_to"`
	BgColor     *string        `json:"bgcolor" db:"bgcolor"`
	Subtasks    SubtaskList    `json:"subtasks" db:"subtasks"`
	AuthorID    int64          `json:"author" db:"author_id"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// SubtaskItem is one entry of a task's embedded checklist.
type SubtaskItem struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// SubtaskList stores a task's checklist as a jsonb column.
type SubtaskList []SubtaskItem

// Value implements driver.Valuer.
func (s SubtaskList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *SubtaskList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan subtask list: unsupported type %T", src)
	}
	return json.Unmarshal(data, s)
}

// Contact represents an address book entry. Contacts carry no ownership;
// any authenticated caller may mutate any contact.
type Contact struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Surname   string    `json:"surname" db:"surname"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	BgColor   *string   `json:"bgcolor" db:"bgcolor"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Subtask is the standalone subtask record. The primary code path embeds
// subtasks on the task row; this resource exists for endpoint compatibility.
type Subtask struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
