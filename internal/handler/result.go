package handler

import (
	"time"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ResultHandler handles result computation, insights and projections
type ResultHandler struct {
	resultService  service.ResultService
	insightService service.InsightService
	sessionService service.SessionService
}

// NewResultHandler creates a new ResultHandler instance
func NewResultHandler(
	resultService service.ResultService,
	insightService service.InsightService,
	sessionService service.SessionService,
) *ResultHandler {
	return &ResultHandler{
		resultService:  resultService,
		insightService: insightService,
		sessionService: sessionService,
	}
}

// ComputeResult godoc
// @Summary Compute the session result
// @Description Computes and persists the session's result; returns the existing result when already computed
// @Tags results
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ComputeResultRequest false "Quiz override"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/result [post]
func (h *ResultHandler) ComputeResult(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req dto.ComputeResultRequest
	// The body is optional; the session's own quiz is the default.
	_ = c.BodyParser(&req)

	quizID := req.QuizID
	if quizID == "" {
		session, err := h.sessionService.GetSession(c.Context(), sessionID)
		if err != nil {
			return err
		}
		quizID = session.QuizID
	}

	result, err := h.resultService.ComputeResult(c.Context(), sessionID, quizID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// GetResult godoc
// @Summary Get the session result
// @Description Returns the session's computed result
// @Tags results
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/result [get]
func (h *ResultHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.resultService.GetResult(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// GetInsights godoc
// @Summary Get insight cards
// @Description Returns display-ready insight cards built from the session's anchor answers
// @Tags results
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.InsightsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/insights [get]
func (h *ResultHandler) GetInsights(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	session, err := h.sessionService.GetSession(c.Context(), sessionID)
	if err != nil {
		return err
	}

	insights, err := h.insightService.GetInsights(c.Context(), sessionID, session.QuizID)
	if err != nil {
		return err
	}

	return c.JSON(insights)
}

// GetProjection godoc
// @Summary Calculate a score projection
// @Description Projects the score after the program for a given daily time commitment
// @Tags results
// @Accept json
// @Produce json
// @Param score query int true "Current normalized score (0-100)"
// @Param minutes query int true "Daily time commitment in minutes"
// @Success 200 {object} dto.ProjectionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /projection [get]
func (h *ResultHandler) GetProjection(c *fiber.Ctx) error {
	score := c.Locals("validated_score").(int)
	minutes := c.Locals("validated_minutes").(int)

	projection, err := domain.CalculateProjection(score, minutes, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(dto.ProjectionResponse{
		TargetScore:         projection.TargetScore,
		DisplayCurrentScore: projection.DisplayCurrentScore,
		DisplayTargetScore:  projection.DisplayTargetScore,
		ReductionPercent:    projection.ReductionPercent,
		TargetDate:          projection.TargetDate,
	})
}

// GetNextScreen godoc
// @Summary Get the next funnel screen
// @Description Returns the screen after the given one in the funnel sequence
// @Tags funnel
// @Accept json
// @Produce json
// @Param screen path string true "Current screen"
// @Success 200 {object} dto.ScreenResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /funnel/screens/{screen}/next [get]
func (h *ResultHandler) GetNextScreen(c *fiber.Ctx) error {
	screen := domain.FunnelScreen(c.Params("screen"))
	if !domain.ValidFunnelScreen(screen) {
		return domain.NewInvalidInputError("unknown funnel screen: " + c.Params("screen"))
	}

	next, ok := domain.NextScreen(screen)
	return c.JSON(dto.ScreenResponse{Screen: string(next), End: !ok})
}

// GetPreviousScreen godoc
// @Summary Get the previous funnel screen
// @Description Returns the screen before the given one in the funnel sequence
// @Tags funnel
// @Accept json
// @Produce json
// @Param screen path string true "Current screen"
// @Success 200 {object} dto.ScreenResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /funnel/screens/{screen}/previous [get]
func (h *ResultHandler) GetPreviousScreen(c *fiber.Ctx) error {
	screen := domain.FunnelScreen(c.Params("screen"))
	if !domain.ValidFunnelScreen(screen) {
		return domain.NewInvalidInputError("unknown funnel screen: " + c.Params("screen"))
	}

	previous, ok := domain.PreviousScreen(screen)
	return c.JSON(dto.ScreenResponse{Screen: string(previous), End: !ok})
}
