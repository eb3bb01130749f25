package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ArmishRehan/Coupon/internal/auth"
	"github.com/ArmishRehan/Coupon/internal/model"
	"github.com/ArmishRehan/Coupon/internal/service"
)

// CouponServiceInterface defines the interface for coupon lifecycle logic.
type CouponServiceInterface interface {
	Create(ctx context.Context, creatorID int64, req *model.CreateCouponRequest) (*model.CreateCouponResponse, error)
	UpdateFields(ctx context.Context, id int64, patch *model.CouponPatch) error
	SetStatus(ctx context.Context, id int64, status model.Status) error
	Activate(ctx context.Context, creatorID, id int64) error
	Redeem(ctx context.Context, storeUserID, id int64) error
	ListMine(ctx context.Context, storeUserID int64) ([]model.CouponRow, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.CouponRow, error)
	ListAll(ctx context.Context) ([]model.CouponRow, error)
}

// CouponHandler handles HTTP requests for coupon operations.
type CouponHandler struct {
	service   CouponServiceInterface
	validator *validator.Validate
}

// NewCouponHandler creates a new CouponHandler with the given service and validator.
func NewCouponHandler(svc CouponServiceInterface, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, validator: v}
}

// couponID parses the :id route parameter.
func couponID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid coupon id")
	}
	return id, nil
}

// Create handles POST /api/coupons. Creator only.
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var req model.CreateCouponRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	principal := auth.Principal(c)
	resp, err := h.service.Create(c.Context(), principal.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		case errors.Is(err, service.ErrInvalidDateRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validFrom must not be after validTo"})
		}
		log.Error().Err(err).Int64("creator_id", principal.UserID).Str("coupon_name", req.Name).Msg("failed to create coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Int64("coupon_id", resp.ID).
		Int64("creator_id", principal.UserID).
		Str("coupon_name", req.Name).
		Msg("coupon created, waiting for approval")

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListMine handles GET /api/coupons/my. Store user only.
func (h *CouponHandler) ListMine(c *fiber.Ctx) error {
	principal := auth.Principal(c)

	coupons, err := h.service.ListMine(c.Context(), principal.UserID)
	if err != nil {
		log.Error().Err(err).Int64("store_user_id", principal.UserID).Msg("failed to list user coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(coupons)
}

// ListByCreator handles GET /api/coupons/creator. Creator only; sweeps expiry first.
func (h *CouponHandler) ListByCreator(c *fiber.Ctx) error {
	principal := auth.Principal(c)

	coupons, err := h.service.ListByCreator(c.Context(), principal.UserID)
	if err != nil {
		log.Error().Err(err).Int64("creator_id", principal.UserID).Msg("failed to list creator coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(coupons)
}

// ListAll handles GET /api/coupons/all. Admin only; sweeps expiry first.
func (h *CouponHandler) ListAll(c *fiber.Ctx) error {
	coupons, err := h.service.ListAll(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list all coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(coupons)
}

// Update handles PUT /api/coupons/:id. Admin only; partial field/status update.
func (h *CouponHandler) Update(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coupon id"})
	}

	var patch model.CouponPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.UpdateFields(c.Context(), id, &patch); err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
		case errors.Is(err, service.ErrCouponNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "coupon not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "illegal status transition"})
		case errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Int64("coupon_id", id).Msg("failed to update coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "msg": "coupon updated"})
}

// UpdateStatus handles PUT /api/coupons/:id/status. Admin only, restricted enum.
func (h *CouponHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coupon id"})
	}

	var req model.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.SetStatus(c.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status for admin"})
		case errors.Is(err, service.ErrCouponNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "coupon not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "illegal status transition"})
		}
		log.Error().Err(err).Int64("coupon_id", id).Str("status", string(req.Status)).Msg("failed to update coupon status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "msg": "coupon marked as " + string(req.Status)})
}

// Activate handles PUT /api/coupons/:id/activate. Creator only, two-step
// approval deployments.
func (h *CouponHandler) Activate(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coupon id"})
	}

	principal := auth.Principal(c)
	if err := h.service.Activate(c.Context(), principal.UserID, id); err != nil {
		if errors.Is(err, service.ErrNotApproved) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "coupon not found or not approved yet"})
		}
		log.Error().Err(err).Int64("coupon_id", id).Int64("creator_id", principal.UserID).Msg("failed to activate coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"msg": "coupon set to active"})
}

// Redeem handles PUT /api/coupons/:id/redeem. Store user only.
func (h *CouponHandler) Redeem(c *fiber.Ctx) error {
	id, err := couponID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coupon id"})
	}

	principal := auth.Principal(c)
	if err := h.service.Redeem(c.Context(), principal.UserID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "coupon not found"})
		case errors.Is(err, service.ErrNotCouponOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		case errors.Is(err, service.ErrAlreadyUsed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "coupon already used"})
		case errors.Is(err, service.ErrNotActive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "coupon is not active"})
		case errors.Is(err, service.ErrCouponExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "coupon expired"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Int64("coupon_id", id).
			Int64("store_user_id", principal.UserID).
			Msg("failed to redeem coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Int64("coupon_id", id).
		Int64("store_user_id", principal.UserID).
		Msg("coupon redeemed successfully")

	return c.JSON(fiber.Map{"success": true, "msg": "coupon redeemed successfully"})
}
