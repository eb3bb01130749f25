package model

import "time"

// CouponRequest is a store user's ask for a coupon to be created.
type CouponRequest struct {
	ID          int64         `json:"id"`
	StoreUserID int64         `json:"store_user_id"`
	Name        string        `json:"name"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// RequestRow is the admin listing projection with the requester's username joined in.
type RequestRow struct {
	ID          int64         `json:"id"`
	StoreUserID int64         `json:"store_user_id"`
	Name        string        `json:"name"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	StoreUser   string        `json:"storeUser"`
}

// SubmitRequestRequest is the DTO for POST /api/coupons/request.
type SubmitRequestRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}
