package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ArmishRehan/Coupon/internal/model"
)

// BrandCatalogInterface defines read access to the brand/branch catalog.
type BrandCatalogInterface interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	ListBranches(ctx context.Context, brandID int64) ([]model.Branch, error)
}

// BrandHandler serves the brand/branch reference lookups.
type BrandHandler struct {
	catalog BrandCatalogInterface
}

// NewBrandHandler creates a new BrandHandler with the given catalog.
func NewBrandHandler(catalog BrandCatalogInterface) *BrandHandler {
	return &BrandHandler{catalog: catalog}
}

// ListBrands handles GET /api/brands.
func (h *BrandHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.catalog.ListBrands(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list brands")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(brands)
}

// ListBranches handles GET /api/brands/:brandId/branches.
func (h *BrandHandler) ListBranches(c *fiber.Ctx) error {
	brandID, err := strconv.ParseInt(c.Params("brandId"), 10, 64)
	if err != nil || brandID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid brand id"})
	}

	branches, err := h.catalog.ListBranches(c.Context(), brandID)
	if err != nil {
		log.Error().Err(err).Int64("brand_id", brandID).Msg("failed to list branches")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(branches)
}
