package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/ArmishRehan/Coupon/internal/config"
	"github.com/ArmishRehan/Coupon/internal/model"
	"github.com/ArmishRehan/Coupon/pkg/database"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, coupon *model.Coupon) error
	GetByID(ctx context.Context, id int64) (*model.Coupon, error)
	Update(ctx context.Context, id int64, upd model.CouponUpdate) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Redeem(ctx context.Context, tx database.TxQuerier, id, storeUserID int64) (bool, error)
	MarkExpired(ctx context.Context, id int64, current model.Status) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	ListByStoreUser(ctx context.Context, storeUserID int64) ([]model.CouponRow, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.CouponRow, error)
	ListAll(ctx context.Context) ([]model.CouponRow, error)
}

// RequestRepositoryInterface defines the interface for request data access
// as needed by the coupon lifecycle.
type RequestRepositoryInterface interface {
	MarkFulfilled(ctx context.Context, tx database.TxQuerier, id int64) (bool, error)
	MarkUsed(ctx context.Context, tx database.TxQuerier, id int64) (bool, error)
}

// ArtifactGenerator produces and removes QR artifacts.
type ArtifactGenerator interface {
	Generate() (token, url string, err error)
	Remove(token string) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CouponService owns the coupon lifecycle: creation, admin transitions,
// creator activation, lazy expiry and one-time redemption.
type CouponService struct {
	pool         TxBeginner
	coupons      CouponRepositoryInterface
	requests     RequestRepositoryInterface
	artifacts    ArtifactGenerator
	approvalMode string
	now          func() time.Time
}

// NewCouponService creates a new CouponService with the given pool and dependencies.
func NewCouponService(pool *pgxpool.Pool, coupons CouponRepositoryInterface, requests RequestRepositoryInterface, artifacts ArtifactGenerator, approvalMode string) *CouponService {
	return &CouponService{
		pool:         pool,
		coupons:      coupons,
		requests:     requests,
		artifacts:    artifacts,
		approvalMode: approvalMode,
		now:          time.Now,
	}
}

// NewCouponServiceWithTxBeginner creates a CouponService with a custom TxBeginner.
// Primarily used for testing.
func NewCouponServiceWithTxBeginner(pool TxBeginner, coupons CouponRepositoryInterface, requests RequestRepositoryInterface, artifacts ArtifactGenerator, approvalMode string) *CouponService {
	return &CouponService{
		pool:         pool,
		coupons:      coupons,
		requests:     requests,
		artifacts:    artifacts,
		approvalMode: approvalMode,
		now:          time.Now,
	}
}

// Create issues a new coupon against a store user's request. The QR artifact
// is written before the insert so a coupon row never exists without one; if
// the transaction fails afterwards the artifact is removed again.
// The linked request advances to fulfilled in the same transaction; a request
// that no longer exists is logged and does not fail the creation.
func (s *CouponService) Create(ctx context.Context, creatorID int64, req *model.CreateCouponRequest) (*model.CreateCouponResponse, error) {
	// Defense-in-depth: check for nil pointers even though handler validates
	if req == nil || req.Discount == nil || req.BrandID == nil || req.BranchID == nil ||
		req.StoreUserID == nil || req.RequestID == nil {
		return nil, ErrInvalidRequest
	}

	validFrom, err := time.Parse(model.DateLayout, req.ValidFrom)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	validTo, err := time.Parse(model.DateLayout, req.ValidTo)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	if validFrom.After(validTo) {
		return nil, ErrInvalidDateRange
	}

	token, url, err := s.artifacts.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate qr artifact: %w", err)
	}

	coupon := &model.Coupon{
		StoreUserID: *req.StoreUserID,
		CreatorID:   creatorID,
		BrandID:     *req.BrandID,
		BranchID:    *req.BranchID,
		RequestID:   req.RequestID,
		Name:        req.Name,
		Discount:    *req.Discount,
		ValidFrom:   validFrom,
		ValidTo:     validTo,
		Status:      model.StatusWaitingForApproval,
		QRCodeURL:   url,
	}

	if err := s.createInTx(ctx, coupon, *req.RequestID); err != nil {
		// No coupon row was written; do not leave an orphan artifact behind.
		if rmErr := s.artifacts.Remove(token); rmErr != nil {
			log.Error().Err(rmErr).Str("token", token).Msg("failed to remove orphan qr artifact")
		}
		return nil, err
	}

	return &model.CreateCouponResponse{
		ID:     coupon.ID,
		Status: coupon.Status,
		QRCode: coupon.QRCodeURL,
	}, nil
}

func (s *CouponService) createInTx(ctx context.Context, coupon *model.Coupon, requestID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	if err := s.coupons.Insert(ctx, tx, coupon); err != nil {
		return fmt.Errorf("insert coupon: %w", err)
	}

	fulfilled, err := s.requests.MarkFulfilled(ctx, tx, requestID)
	if err != nil {
		return fmt.Errorf("mark request fulfilled: %w", err)
	}
	if !fulfilled {
		log.Warn().Int64("request_id", requestID).Msg("linked request missing or already fulfilled")
	}

	return tx.Commit(ctx)
}

// UpdateFields applies an admin partial update. Only supplied fields change.
// A supplied status must be a legal outgoing edge from the coupon's current
// status; an empty patch is rejected.
func (s *CouponService) UpdateFields(ctx context.Context, id int64, patch *model.CouponPatch) error {
	if patch == nil || patch.Empty() {
		return ErrNoFieldsToUpdate
	}

	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return ErrCouponNotFound
	}

	upd := model.CouponUpdate{
		Name:     patch.Name,
		Discount: patch.Discount,
	}
	if patch.ValidFrom != nil {
		t, err := time.Parse(model.DateLayout, *patch.ValidFrom)
		if err != nil {
			return ErrInvalidRequest
		}
		upd.ValidFrom = &t
	}
	if patch.ValidTo != nil {
		t, err := time.Parse(model.DateLayout, *patch.ValidTo)
		if err != nil {
			return ErrInvalidRequest
		}
		upd.ValidTo = &t
	}
	if patch.Status != nil {
		next := *patch.Status
		if !next.Valid() {
			return ErrInvalidTransition
		}
		if !coupon.Status.CanTransition(next) {
			return ErrInvalidTransition
		}
		upd.Status = patch.Status
	}

	return s.coupons.Update(ctx, id, upd)
}

// SetStatus applies an admin status-only change. The allowed target set
// depends on the approval mode: direct deployments approve straight to
// active, two-step deployments approve to approved and only the creator
// activates — there the admin may set active solely as the disabled->active
// re-enable. rejected and disabled are allowed in both modes.
func (s *CouponService) SetStatus(ctx context.Context, id int64, status model.Status) error {
	switch status {
	case model.StatusActive, model.StatusRejected, model.StatusDisabled:
	case model.StatusApproved:
		if s.approvalMode != config.ApprovalModeTwoStep {
			return ErrInvalidStatus
		}
	default:
		return ErrInvalidStatus
	}

	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return ErrCouponNotFound
	}

	if status == model.StatusActive &&
		s.approvalMode == config.ApprovalModeTwoStep &&
		coupon.Status != model.StatusDisabled {
		// Activation belongs to the owning creator in two-step mode.
		return ErrInvalidStatus
	}

	if !coupon.Status.CanTransition(status) {
		return ErrInvalidTransition
	}

	return s.coupons.UpdateStatus(ctx, id, status)
}

// Activate is the creator half of the two-step approval flow: only the
// issuing creator may flip an approved coupon to active.
func (s *CouponService) Activate(ctx context.Context, creatorID, id int64) error {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil || coupon.CreatorID != creatorID || coupon.Status != model.StatusApproved {
		return ErrNotApproved
	}

	return s.coupons.UpdateStatus(ctx, id, model.StatusActive)
}

// Redeem consumes an active coupon exactly once. The decisive write is a
// conditional UPDATE keyed on the expected prior status, so of N concurrent
// attempts exactly one succeeds and the rest observe ErrAlreadyUsed.
// An overdue coupon is swept to expired as a side effect.
func (s *CouponService) Redeem(ctx context.Context, storeUserID, id int64) error {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	if coupon.StoreUserID != storeUserID {
		return ErrNotCouponOwner
	}
	switch coupon.Status {
	case model.StatusActive:
	case model.StatusUsed:
		return ErrAlreadyUsed
	case model.StatusExpired:
		return ErrCouponExpired
	default:
		return ErrNotActive
	}
	if coupon.ValidTo.Before(s.now()) {
		if err := s.coupons.MarkExpired(ctx, id, coupon.Status); err != nil {
			log.Error().Err(err).Int64("coupon_id", id).Msg("failed to sweep overdue coupon during redemption")
		}
		return ErrCouponExpired
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	won, err := s.coupons.Redeem(ctx, tx, id, storeUserID)
	if err != nil {
		return fmt.Errorf("redeem coupon: %w", err)
	}
	if !won {
		// Prechecks passed, so a concurrent redemption beat this one.
		return ErrAlreadyUsed
	}

	if coupon.RequestID != nil {
		updated, err := s.requests.MarkUsed(ctx, tx, *coupon.RequestID)
		if err != nil {
			return fmt.Errorf("mark request used: %w", err)
		}
		if !updated {
			log.Warn().Int64("request_id", *coupon.RequestID).Msg("linked request missing on redemption")
		}
	}

	return tx.Commit(ctx)
}

// Sweep lazily transitions every coupon past its validity window to expired.
// Idempotent; used, rejected and disabled coupons are never touched.
func (s *CouponService) Sweep(ctx context.Context) (int64, error) {
	return s.coupons.ExpireOverdue(ctx, s.now())
}

// ListMine returns the coupons held by a store user.
func (s *CouponService) ListMine(ctx context.Context, storeUserID int64) ([]model.CouponRow, error) {
	return s.coupons.ListByStoreUser(ctx, storeUserID)
}

// ListByCreator returns the coupons issued by a creator, sweeping expiry
// first so the listing reflects current state.
func (s *CouponService) ListByCreator(ctx context.Context, creatorID int64) ([]model.CouponRow, error) {
	s.sweepBeforeList(ctx)
	return s.coupons.ListByCreator(ctx, creatorID)
}

// ListAll returns every coupon for the admin view, sweeping expiry first.
func (s *CouponService) ListAll(ctx context.Context) ([]model.CouponRow, error) {
	s.sweepBeforeList(ctx)
	return s.coupons.ListAll(ctx)
}

// sweepBeforeList runs the expiry sweep ahead of a listing. A sweep failure
// is logged but does not block the read.
func (s *CouponService) sweepBeforeList(ctx context.Context) {
	swept, err := s.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("expiry sweep failed")
		return
	}
	if swept > 0 {
		log.Info().Int64("swept", swept).Msg("expired overdue coupons")
	}
}
