package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joinboard/api/internal/application/services"
	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/logger"
)

// ContactHandler handles contact-related requests
type ContactHandler struct {
	contactService *services.ContactService
	logger         *logger.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// ListContacts handles listing all contacts
func (h *ContactHandler) ListContacts(c echo.Context) error {
	contacts, err := h.contactService.ListContacts(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List contacts failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve contacts")
	}

	return c.JSON(http.StatusOK, contacts)
}

// GetContact handles getting a contact by ID
func (h *ContactHandler) GetContact(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid contact ID")
	}

	contact, err := h.contactService.GetContact(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrContactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
		}
		h.logger.Errorw("Get contact failed", "error", err, "contact_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve contact")
	}

	return c.JSON(http.StatusOK, contact)
}

// CreateContact handles contact creation
func (h *ContactHandler) CreateContact(c echo.Context) error {
	var req services.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	contact, err := h.contactService.CreateContact(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create contact failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create contact")
	}

	return c.JSON(http.StatusCreated, contact)
}

// UpdateContact handles full-replace contact update
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid contact ID")
	}

	var req services.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	contact, err := h.contactService.UpdateContact(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrContactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
		}
		h.logger.Errorw("Update contact failed", "error", err, "contact_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update contact")
	}

	return c.JSON(http.StatusOK, contact)
}

// DeleteContact handles contact deletion
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid contact ID")
	}

	if err := h.contactService.DeleteContact(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrContactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
		}
		h.logger.Errorw("Delete contact failed", "error", err, "contact_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete contact")
	}

	return c.NoContent(http.StatusNoContent)
}
