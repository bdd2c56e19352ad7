package handler

import (
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles session-related HTTP requests
type SessionHandler struct {
	service service.SessionService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Creates a new session for the given quiz with empty funnel metadata
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Session details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	session, err := h.service.StartSession(c.Context(), req.QuizID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetSession godoc
// @Summary Get a session
// @Description Returns the session and its funnel state
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// UpdateFunnel godoc
// @Summary Update funnel state
// @Description Merges a metadata patch and optional screen advance into the session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateFunnelRequest true "Metadata patch"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/funnel [patch]
func (h *SessionHandler) UpdateFunnel(c *fiber.Ctx) error {
	var req dto.UpdateFunnelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	session, err := h.service.UpdateFunnel(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(session)
}
