package repository

import (
	"context"
	"fmt"

	"github.com/ArmishRehan/Coupon/internal/model"
	"github.com/ArmishRehan/Coupon/pkg/database"
)

// RequestRepository provides data access for coupon requests.
type RequestRepository struct {
	pool PoolInterface
}

// NewRequestRepository creates a new RequestRepository with the given pool.
func NewRequestRepository(pool PoolInterface) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Insert records a new request in state requested and returns its ID.
func (r *RequestRepository) Insert(ctx context.Context, storeUserID int64, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO coupon_requests (store_user_id, name) VALUES ($1, $2) RETURNING id`,
		storeUserID, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert coupon request: %w", err)
	}
	return id, nil
}

// ListPending returns all requests still in state requested. Any creator may
// see and claim any pending request; there is no ownership filter.
func (r *RequestRepository) ListPending(ctx context.Context) ([]model.CouponRequest, error) {
	query := `SELECT id, store_user_id, name, status, created_at
	          FROM coupon_requests WHERE status = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, model.RequestStatusRequested)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []model.CouponRequest
	for rows.Next() {
		var req model.CouponRequest
		if err := rows.Scan(&req.ID, &req.StoreUserID, &req.Name, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan coupon request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request rows: %w", err)
	}

	// Return empty slice, not nil
	if requests == nil {
		requests = []model.CouponRequest{}
	}
	return requests, nil
}

// ListAll returns every request with the requester's username, newest first.
func (r *RequestRepository) ListAll(ctx context.Context) ([]model.RequestRow, error) {
	query := `SELECT cr.id, cr.store_user_id, cr.name, cr.status, cr.created_at, u.username
	          FROM coupon_requests cr
	          JOIN users u ON cr.store_user_id = u.id
	          ORDER BY cr.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all requests: %w", err)
	}
	defer rows.Close()

	var result []model.RequestRow
	for rows.Next() {
		var row model.RequestRow
		if err := rows.Scan(&row.ID, &row.StoreUserID, &row.Name, &row.Status, &row.CreatedAt, &row.StoreUser); err != nil {
			return nil, fmt.Errorf("scan request row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request rows: %w", err)
	}

	if result == nil {
		result = []model.RequestRow{}
	}
	return result, nil
}

// MarkFulfilled advances a request from requested to fulfilled within the
// coupon-creation transaction. Reports whether a row was actually updated;
// a vanished request is the caller's to log, not an error.
func (r *RequestRepository) MarkFulfilled(ctx context.Context, tx database.TxQuerier, id int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE coupon_requests SET status = $1 WHERE id = $2 AND status = $3`,
		model.RequestStatusFulfilled, id, model.RequestStatusRequested)
	if err != nil {
		return false, fmt.Errorf("mark request %d fulfilled: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkUsed advances a request to used within the redemption transaction.
func (r *RequestRepository) MarkUsed(ctx context.Context, tx database.TxQuerier, id int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE coupon_requests SET status = $1 WHERE id = $2`,
		model.RequestStatusUsed, id)
	if err != nil {
		return false, fmt.Errorf("mark request %d used: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}
