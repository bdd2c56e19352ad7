package handler

import (
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/service"
	"quiz-funnel/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	service   service.CheckoutService
	validator *validation.Validator
}

// NewCheckoutHandler creates a new CheckoutHandler instance
func NewCheckoutHandler(service service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateSubscription godoc
// @Summary Create a subscription
// @Description Creates a pending subscription for the offer at the given pricing tier
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.CheckoutRequest true "Checkout details"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/checkout [post]
func (h *CheckoutHandler) CreateSubscription(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateCheckoutRequest(req.OfferID, req.Tier); len(errs) > 0 {
		return errs
	}

	subscription, err := h.service.CreateSubscription(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(subscription)
}

// CancelCheckout godoc
// @Summary Record a checkout cancellation
// @Description Stores the checkout-cancellation signal in the session's funnel metadata
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/checkout/cancel [post]
func (h *CheckoutHandler) CancelCheckout(c *fiber.Ctx) error {
	if err := h.service.RecordCheckoutCanceled(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
