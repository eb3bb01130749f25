package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmishRehan/Coupon/internal/auth"
	"github.com/ArmishRehan/Coupon/internal/model"
	"github.com/ArmishRehan/Coupon/internal/validator"
)

// mockRequestService is a mock implementation of RequestServiceInterface.
type mockRequestService struct {
	submitFn      func(ctx context.Context, storeUserID int64, req *model.SubmitRequestRequest) (int64, error)
	listPendingFn func(ctx context.Context) ([]model.CouponRequest, error)
	listAllFn     func(ctx context.Context) ([]model.RequestRow, error)
}

func (m *mockRequestService) Submit(ctx context.Context, storeUserID int64, req *model.SubmitRequestRequest) (int64, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, storeUserID, req)
	}
	return 1, nil
}

func (m *mockRequestService) ListPending(ctx context.Context) ([]model.CouponRequest, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(ctx)
	}
	return []model.CouponRequest{}, nil
}

func (m *mockRequestService) ListAll(ctx context.Context) ([]model.RequestRow, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return []model.RequestRow{}, nil
}

func setupRequestApp(mockSvc *mockRequestService) *fiber.App {
	app := fiber.New()
	h := NewRequestHandler(mockSvc, validator.New())

	coupons := app.Group("/api/coupons", auth.Authenticate(testTokens))
	coupons.Post("/request", auth.RequireRole(model.RoleStoreUser), h.Submit)
	coupons.Get("/request/creator", auth.RequireRole(model.RoleCreator), h.ListPending)
	coupons.Get("/request/admin", auth.RequireRole(model.RoleAdmin), h.ListAll)
	return app
}

func TestSubmitRequest_Success(t *testing.T) {
	var gotStoreUserID int64
	var gotName string
	mockSvc := &mockRequestService{
		submitFn: func(ctx context.Context, storeUserID int64, req *model.SubmitRequestRequest) (int64, error) {
			gotStoreUserID = storeUserID
			gotName = req.Name
			return 42, nil
		},
	}
	app := setupRequestApp(mockSvc)

	req := authedRequest(t, http.MethodPost, "/api/coupons/request", `{"name": "10% Coffee"}`, 7, model.RoleStoreUser)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(7), gotStoreUserID)
	assert.Equal(t, "10% Coffee", gotName)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, "request submitted successfully", body["msg"])
}

func TestSubmitRequest_BlankName(t *testing.T) {
	app := setupRequestApp(&mockRequestService{})

	req := authedRequest(t, http.MethodPost, "/api/coupons/request", `{"name": "   "}`, 7, model.RoleStoreUser)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitRequest_CreatorForbidden(t *testing.T) {
	app := setupRequestApp(&mockRequestService{})

	req := authedRequest(t, http.MethodPost, "/api/coupons/request", `{"name": "10% Coffee"}`, 3, model.RoleCreator)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListPendingRequests_Success(t *testing.T) {
	mockSvc := &mockRequestService{
		listPendingFn: func(ctx context.Context) ([]model.CouponRequest, error) {
			return []model.CouponRequest{
				{ID: 1, StoreUserID: 7, Name: "10% Coffee", Status: model.RequestStatusRequested},
			}, nil
		},
	}
	app := setupRequestApp(mockSvc)

	req := authedRequest(t, http.MethodGet, "/api/coupons/request/creator", "", 3, model.RoleCreator)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var rows []model.CouponRequest
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, model.RequestStatusRequested, rows[0].Status)
}

func TestListAllRequests_AdminOnly(t *testing.T) {
	app := setupRequestApp(&mockRequestService{})

	req := authedRequest(t, http.MethodGet, "/api/coupons/request/admin", "", 3, model.RoleCreator)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListAllRequests_ServiceError(t *testing.T) {
	mockSvc := &mockRequestService{
		listAllFn: func(ctx context.Context) ([]model.RequestRow, error) {
			return nil, errors.New("database connection failed")
		},
	}
	app := setupRequestApp(mockSvc)

	req := authedRequest(t, http.MethodGet, "/api/coupons/request/admin", "", 1, model.RoleAdmin)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
