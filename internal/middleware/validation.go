package middleware

import (
	"strconv"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("id")

		if errors := vm.validator.ValidateSessionID(sessionID); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals("validated_session_id", sessionID)
		return c.Next()
	}
}

// ValidateProjectionParams validates the projection query parameters
func (vm *ValidationMiddleware) ValidateProjectionParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		score, err := strconv.Atoi(c.Query("score"))
		if err != nil {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("score", c.Query("score")),
			}
		}
		minutes, err := strconv.Atoi(c.Query("minutes"))
		if err != nil {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("minutes", c.Query("minutes")),
			}
		}

		if errors := vm.validator.ValidateProjectionParams(score, minutes); len(errors) > 0 {
			return errors
		}

		// Store validated values in context for handlers to use
		c.Locals("validated_score", score)
		c.Locals("validated_minutes", minutes)
		return c.Next()
	}
}
