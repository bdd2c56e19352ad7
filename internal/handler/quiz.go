package handler

import (
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/service"
	"quiz-funnel/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles question listing and answer submission
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetQuestions godoc
// @Summary List quiz questions
// @Description Returns the quiz's questions with options, in display order
// @Tags quiz
// @Accept json
// @Produce json
// @Param quizID path string true "Quiz ID"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{quizID}/questions [get]
func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	questions, err := h.service.GetQuestions(c.Context(), c.Params("quizID"))
	if err != nil {
		return err
	}

	return c.JSON(questions)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Records or replaces the session's answer for one question
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer details"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answers [put]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateSubmitAnswerRequest(req.QuestionID, req.SelectedOptionIDs, req.FreeText); len(errs) > 0 {
		return errs
	}

	answer, err := h.service.SubmitAnswer(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(answer)
}
