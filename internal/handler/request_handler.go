package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ArmishRehan/Coupon/internal/auth"
	"github.com/ArmishRehan/Coupon/internal/model"
)

// RequestServiceInterface defines the interface for coupon-request logic.
type RequestServiceInterface interface {
	Submit(ctx context.Context, storeUserID int64, req *model.SubmitRequestRequest) (int64, error)
	ListPending(ctx context.Context) ([]model.CouponRequest, error)
	ListAll(ctx context.Context) ([]model.RequestRow, error)
}

// RequestHandler handles HTTP requests for the coupon request ledger.
type RequestHandler struct {
	service   RequestServiceInterface
	validator *validator.Validate
}

// NewRequestHandler creates a new RequestHandler with the given service and validator.
func NewRequestHandler(svc RequestServiceInterface, v *validator.Validate) *RequestHandler {
	return &RequestHandler{service: svc, validator: v}
}

// Submit handles POST /api/coupons/request. Store user only.
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	var req model.SubmitRequestRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	principal := auth.Principal(c)
	id, err := h.service.Submit(c.Context(), principal.UserID, &req)
	if err != nil {
		log.Error().Err(err).Int64("store_user_id", principal.UserID).Msg("failed to submit coupon request")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "msg": "request submitted successfully"})
}

// ListPending handles GET /api/coupons/request/creator. Creator only.
// Every creator sees every pending request; there is no ownership filter.
func (h *RequestHandler) ListPending(c *fiber.Ctx) error {
	requests, err := h.service.ListPending(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list pending requests")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(requests)
}

// ListAll handles GET /api/coupons/request/admin. Admin only.
func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	requests, err := h.service.ListAll(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list all requests")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(requests)
}
