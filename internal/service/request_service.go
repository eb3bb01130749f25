package service

import (
	"context"
	"fmt"

	"github.com/ArmishRehan/Coupon/internal/model"
)

// RequestLedgerInterface defines the request-ledger data access used by RequestService.
type RequestLedgerInterface interface {
	Insert(ctx context.Context, storeUserID int64, name string) (int64, error)
	ListPending(ctx context.Context) ([]model.CouponRequest, error)
	ListAll(ctx context.Context) ([]model.RequestRow, error)
}

// RequestService records store users' coupon requests and exposes them to
// creators (pending only) and admins (all).
type RequestService struct {
	requests RequestLedgerInterface
}

// NewRequestService creates a new RequestService.
func NewRequestService(requests RequestLedgerInterface) *RequestService {
	return &RequestService{requests: requests}
}

// Submit records a request for a named coupon type.
func (s *RequestService) Submit(ctx context.Context, storeUserID int64, req *model.SubmitRequestRequest) (int64, error) {
	if req == nil {
		return 0, ErrInvalidRequest
	}
	id, err := s.requests.Insert(ctx, storeUserID, req.Name)
	if err != nil {
		return 0, fmt.Errorf("submit request: %w", err)
	}
	return id, nil
}

// ListPending returns all requests awaiting fulfillment.
func (s *RequestService) ListPending(ctx context.Context) ([]model.CouponRequest, error) {
	return s.requests.ListPending(ctx)
}

// ListAll returns every request with requester identity for the admin view.
func (s *RequestService) ListAll(ctx context.Context) ([]model.RequestRow, error) {
	return s.requests.ListAll(ctx)
}
