package services

import (
	"context"

	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/logger"
	"github.com/joinboard/api/internal/ports"
)

// ContactService handles contact operations. Contacts have no owner; any
// authenticated caller may mutate any contact.
type ContactService struct {
	contactRepo ports.ContactRepository
	logger      *logger.Logger
}

// NewContactService creates a new contact service
func NewContactService(contactRepo ports.ContactRepository, logger *logger.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// ContactRequest carries the full contact payload; update is full-replace.
type ContactRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Surname string  `json:"surname" validate:"required,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	BgColor *string `json:"bgcolor"`
}

func (req *ContactRequest) toEntity() *entities.Contact {
	return &entities.Contact{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
		BgColor: req.BgColor,
	}
}

// CreateContact persists a new contact.
func (s *ContactService) CreateContact(ctx context.Context, req ContactRequest) (*entities.Contact, error) {
	contact := req.toEntity()

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Infow("Contact created", "contact_id", contact.ID)
	return contact, nil
}

// GetContact retrieves a contact by ID.
func (s *ContactService) GetContact(ctx context.Context, id int64) (*entities.Contact, error) {
	return s.contactRepo.GetByID(ctx, id)
}

// ListContacts retrieves all contacts.
func (s *ContactService) ListContacts(ctx context.Context) ([]*entities.Contact, error) {
	return s.contactRepo.List(ctx)
}

// UpdateContact replaces the contact's fields.
func (s *ContactService) UpdateContact(ctx context.Context, id int64, req ContactRequest) (*entities.Contact, error) {
	contact := req.toEntity()
	contact.ID = id

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Infow("Contact updated", "contact_id", id)
	return contact, nil
}

// DeleteContact removes the contact.
func (s *ContactService) DeleteContact(ctx context.Context, id int64) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Contact deleted", "contact_id", id)
	return nil
}
