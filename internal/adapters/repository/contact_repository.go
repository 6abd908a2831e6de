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

// ContactRepositoryImpl implements the ContactRepository interface
type ContactRepositoryImpl struct {
	db *sqlx.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sqlx.DB) ports.ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *entities.Contact) error {
	query := `
		INSERT INTO contacts (name, surname, email, phone, bgcolor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		contact.Name, contact.Surname, contact.Email, contact.Phone, contact.BgColor,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

func (r *ContactRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Contact, error) {
	query := `
		SELECT id, name, surname, email, phone, bgcolor, created_at, updated_at
		FROM contacts
		WHERE id = $1`

	var contact entities.Contact
	err := r.db.GetContext(ctx, &contact, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact by id: %w", err)
	}

	return &contact, nil
}

func (r *ContactRepositoryImpl) List(ctx context.Context) ([]*entities.Contact, error) {
	query := `
		SELECT id, name, surname, email, phone, bgcolor, created_at, updated_at
		FROM contacts
		ORDER BY name, surname`

	contacts := []*entities.Contact{}
	err := r.db.SelectContext(ctx, &contacts, query)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *entities.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, surname = $3, email = $4, phone = $5, bgcolor = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		contact.ID, contact.Name, contact.Surname, contact.Email, contact.Phone, contact.BgColor,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrContactNotFound
		}
		return fmt.Errorf("update contact: %w", err)
	}

	return nil
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contacts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrContactNotFound
	}

	return nil
}
