package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmishRehan/Coupon/internal/model"
)

// mockBrandCatalog is a mock implementation of BrandCatalogInterface.
type mockBrandCatalog struct {
	listBrandsFn   func(ctx context.Context) ([]model.Brand, error)
	listBranchesFn func(ctx context.Context, brandID int64) ([]model.Branch, error)
}

func (m *mockBrandCatalog) ListBrands(ctx context.Context) ([]model.Brand, error) {
	if m.listBrandsFn != nil {
		return m.listBrandsFn(ctx)
	}
	return []model.Brand{}, nil
}

func (m *mockBrandCatalog) ListBranches(ctx context.Context, brandID int64) ([]model.Branch, error) {
	if m.listBranchesFn != nil {
		return m.listBranchesFn(ctx, brandID)
	}
	return []model.Branch{}, nil
}

func setupBrandApp(catalog *mockBrandCatalog) *fiber.App {
	app := fiber.New()
	h := NewBrandHandler(catalog)
	app.Get("/api/brands", h.ListBrands)
	app.Get("/api/brands/:brandId/branches", h.ListBranches)
	return app
}

func TestListBrands_Success(t *testing.T) {
	catalog := &mockBrandCatalog{
		listBrandsFn: func(ctx context.Context) ([]model.Brand, error) {
			return []model.Brand{{ID: 1, Name: "Coffee Co"}}, nil
		},
	}
	app := setupBrandApp(catalog)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/brands", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var brands []model.Brand
	require.NoError(t, json.Unmarshal(raw, &brands))
	require.Len(t, brands, 1)
	assert.Equal(t, "Coffee Co", brands[0].Name)
}

func TestListBranches_Success(t *testing.T) {
	var gotBrandID int64
	catalog := &mockBrandCatalog{
		listBranchesFn: func(ctx context.Context, brandID int64) ([]model.Branch, error) {
			gotBrandID = brandID
			return []model.Branch{{ID: 2, BrandID: brandID, Name: "Downtown"}}, nil
		},
	}
	app := setupBrandApp(catalog)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/brands/1/branches", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), gotBrandID)
}

func TestListBranches_InvalidBrandID(t *testing.T) {
	app := setupBrandApp(&mockBrandCatalog{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/brands/abc/branches", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListBrands_ServiceError(t *testing.T) {
	catalog := &mockBrandCatalog{
		listBrandsFn: func(ctx context.Context) ([]model.Brand, error) {
			return nil, errors.New("connection refused")
		},
	}
	app := setupBrandApp(catalog)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/brands", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
