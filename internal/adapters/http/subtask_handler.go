package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joinboard/api/internal/application/services"
	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/logger"
)

// SubtaskHandler handles the standalone subtask records.
type SubtaskHandler struct {
	subtaskService *services.SubtaskService
	logger         *logger.Logger
}

// NewSubtaskHandler creates a new subtask handler
func NewSubtaskHandler(subtaskService *services.SubtaskService, logger *logger.Logger) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskService: subtaskService,
		logger:         logger,
	}
}

// ListSubtasks handles listing all subtask records
func (h *SubtaskHandler) ListSubtasks(c echo.Context) error {
	subtasks, err := h.subtaskService.ListSubtasks(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List subtasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve subtasks")
	}

	return c.JSON(http.StatusOK, subtasks)
}

// GetSubtask handles getting a subtask by ID
func (h *SubtaskHandler) GetSubtask(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid subtask ID")
	}

	subtask, err := h.subtaskService.GetSubtask(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrSubtaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subtask not found")
		}
		h.logger.Errorw("Get subtask failed", "error", err, "subtask_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve subtask")
	}

	return c.JSON(http.StatusOK, subtask)
}

// CreateSubtask handles subtask creation
func (h *SubtaskHandler) CreateSubtask(c echo.Context) error {
	var req services.SubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	subtask, err := h.subtaskService.CreateSubtask(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create subtask failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create subtask")
	}

	return c.JSON(http.StatusCreated, subtask)
}

// UpdateSubtask handles subtask update
func (h *SubtaskHandler) UpdateSubtask(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid subtask ID")
	}

	var req services.SubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	subtask, err := h.subtaskService.UpdateSubtask(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrSubtaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subtask not found")
		}
		h.logger.Errorw("Update subtask failed", "error", err, "subtask_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update subtask")
	}

	return c.JSON(http.StatusOK, subtask)
}

// DeleteSubtask handles subtask deletion
func (h *SubtaskHandler) DeleteSubtask(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid subtask ID")
	}

	if err := h.subtaskService.DeleteSubtask(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrSubtaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subtask not found")
		}
		h.logger.Errorw("Delete subtask failed", "error", err, "subtask_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete subtask")
	}

	return c.NoContent(http.StatusNoContent)
}
