package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ArmishRehan/Coupon/internal/model"
	"github.com/ArmishRehan/Coupon/internal/service"
	"github.com/ArmishRehan/Coupon/pkg/database"
)

// CouponRepository provides data access for coupons using pgx.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// Insert inserts a new coupon within a transaction and fills in the generated ID.
func (r *CouponRepository) Insert(ctx context.Context, tx database.TxQuerier, coupon *model.Coupon) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO coupons
		   (store_user_id, creator_id, brand_id, branch_id, request_id, name, discount,
		    valid_from, valid_to, status, qr_code_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		coupon.StoreUserID, coupon.CreatorID, coupon.BrandID, coupon.BranchID,
		coupon.RequestID, coupon.Name, coupon.Discount,
		coupon.ValidFrom, coupon.ValidTo, coupon.Status, coupon.QRCodeURL,
	).Scan(&coupon.ID, &coupon.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByID retrieves a coupon by its ID.
// Returns nil, nil if the coupon is not found (service layer handles this).
func (r *CouponRepository) GetByID(ctx context.Context, id int64) (*model.Coupon, error) {
	query := `SELECT id, store_user_id, creator_id, brand_id, branch_id, request_id,
	                 name, discount, valid_from, valid_to, status, qr_code_url, created_at
	          FROM coupons WHERE id = $1`

	var coupon model.Coupon
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&coupon.ID,
		&coupon.StoreUserID,
		&coupon.CreatorID,
		&coupon.BrandID,
		&coupon.BranchID,
		&coupon.RequestID,
		&coupon.Name,
		&coupon.Discount,
		&coupon.ValidFrom,
		&coupon.ValidTo,
		&coupon.Status,
		&coupon.QRCodeURL,
		&coupon.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get coupon by id %d: %w", id, err)
	}
	return &coupon, nil
}

// Update applies a partial update, writing only the non-nil fields.
// Returns service.ErrCouponNotFound when the coupon does not exist.
func (r *CouponRepository) Update(ctx context.Context, id int64, upd model.CouponUpdate) error {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Discount != nil {
		add("discount", *upd.Discount)
	}
	if upd.ValidFrom != nil {
		add("valid_from", *upd.ValidFrom)
	}
	if upd.ValidTo != nil {
		add("valid_to", *upd.ValidTo)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if len(sets) == 0 {
		return service.ErrNoFieldsToUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE coupons SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update coupon %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// UpdateStatus sets a coupon's status unconditionally.
// Returns service.ErrCouponNotFound when the coupon does not exist.
func (r *CouponRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE coupons SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update coupon %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// Redeem performs the conditional one-time redemption write within a
// transaction. Reports whether this caller won the transition: a false return
// with nil error means the coupon was not active (or not owned) at write time.
func (r *CouponRepository) Redeem(ctx context.Context, tx database.TxQuerier, id, storeUserID int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE coupons SET status = $1 WHERE id = $2 AND store_user_id = $3 AND status = $4`,
		model.StatusUsed, id, storeUserID, model.StatusActive)
	if err != nil {
		return false, fmt.Errorf("redeem coupon %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkExpired moves a single overdue coupon to expired, guarded on its
// current status so a concurrent redemption is never downgraded.
func (r *CouponRepository) MarkExpired(ctx context.Context, id int64, current model.Status) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE coupons SET status = $1 WHERE id = $2 AND status = $3`,
		model.StatusExpired, id, current)
	if err != nil {
		return fmt.Errorf("mark coupon %d expired: %w", id, err)
	}
	return nil
}

// ExpireOverdue transitions every coupon whose validity window has elapsed to
// expired, skipping terminal and disabled coupons. Returns the number of
// coupons swept. Idempotent: a second call with the same clock sweeps nothing.
func (r *CouponRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET status = $1 WHERE valid_to < $2 AND status NOT IN ($3, $4, $5, $6)`,
		model.StatusExpired, now,
		model.StatusUsed, model.StatusExpired, model.StatusDisabled, model.StatusRejected)
	if err != nil {
		return 0, fmt.Errorf("expire overdue coupons: %w", err)
	}
	return tag.RowsAffected(), nil
}

const couponRowColumns = `c.id, c.name, c.discount, c.valid_from, c.valid_to, c.status, c.qr_code_url,
	       b.name AS brand_name, br.name AS branch_name`

const couponRowJoins = `FROM coupons c
	 JOIN branches br ON c.branch_id = br.id
	 JOIN brands b ON br.brand_id = b.id`

// ListByStoreUser returns the coupons held by a store user.
func (r *CouponRepository) ListByStoreUser(ctx context.Context, storeUserID int64) ([]model.CouponRow, error) {
	query := `SELECT ` + couponRowColumns + ` ` + couponRowJoins + `
	 WHERE c.store_user_id = $1
	 ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, storeUserID)
	if err != nil {
		return nil, fmt.Errorf("list coupons for store user %d: %w", storeUserID, err)
	}
	return scanCouponRows(rows, false)
}

// ListByCreator returns the coupons issued by a creator, newest first.
func (r *CouponRepository) ListByCreator(ctx context.Context, creatorID int64) ([]model.CouponRow, error) {
	query := `SELECT ` + couponRowColumns + ` ` + couponRowJoins + `
	 WHERE c.creator_id = $1
	 ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list coupons for creator %d: %w", creatorID, err)
	}
	return scanCouponRows(rows, false)
}

// ListAll returns every coupon with its creator's identity, for the admin view.
func (r *CouponRepository) ListAll(ctx context.Context) ([]model.CouponRow, error) {
	query := `SELECT ` + couponRowColumns + `, u.username, u.email ` + couponRowJoins + `
	 JOIN users u ON c.creator_id = u.id
	 ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all coupons: %w", err)
	}
	return scanCouponRows(rows, true)
}

func scanCouponRows(rows pgx.Rows, withCreator bool) ([]model.CouponRow, error) {
	defer rows.Close()

	var result []model.CouponRow
	for rows.Next() {
		var row model.CouponRow
		dest := []any{
			&row.ID, &row.Name, &row.Discount, &row.ValidFrom, &row.ValidTo,
			&row.Status, &row.QRCodeURL, &row.BrandName, &row.BranchName,
		}
		if withCreator {
			dest = append(dest, &row.CreatorUsername, &row.CreatorEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan coupon row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coupon rows: %w", err)
	}

	// Return empty slice, not nil
	if result == nil {
		result = []model.CouponRow{}
	}
	return result, nil
}
