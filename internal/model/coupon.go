package model

import "time"

// Coupon is the central entity: an issued discount bound to a brand/branch,
// a validity window and a QR artifact, moving through the status lifecycle.
type Coupon struct {
	ID          int64     `json:"id"`
	StoreUserID int64     `json:"store_user_id"`
	CreatorID   int64     `json:"creator_id"`
	BrandID     int64     `json:"brand_id"`
	BranchID    int64     `json:"branch_id"`
	RequestID   *int64    `json:"request_id,omitempty"`
	Name        string    `json:"name"`
	Discount    int       `json:"discount"`
	ValidFrom   time.Time `json:"valid_from"`
	ValidTo     time.Time `json:"valid_to"`
	Status      Status    `json:"status"`
	QRCodeURL   string    `json:"qr_code"`
	CreatedAt   time.Time `json:"-"`
}

// CouponRow is a list-view projection joining the brand/branch lookup names.
// Creator fields are only populated on the admin listing.
type CouponRow struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Discount        int       `json:"discount"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	Status          Status    `json:"status"`
	QRCodeURL       string    `json:"qr_code"`
	BrandName       string    `json:"brandName"`
	BranchName      string    `json:"branchName"`
	CreatorUsername string    `json:"username,omitempty"`
	CreatorEmail    string    `json:"email,omitempty"`
}

// CreateCouponRequest is the DTO for POST /api/coupons.
type CreateCouponRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Discount    *int   `json:"discount" validate:"required,gte=0,lte=100"`
	BrandID     *int64 `json:"brandId" validate:"required,gt=0"`
	BranchID    *int64 `json:"branchId" validate:"required,gt=0"`
	ValidFrom   string `json:"validFrom" validate:"required,datetime=2006-01-02"`
	ValidTo     string `json:"validTo" validate:"required,datetime=2006-01-02"`
	StoreUserID *int64 `json:"storeUserId" validate:"required,gt=0"`
	RequestID   *int64 `json:"requestId" validate:"required,gt=0"`
}

// CreateCouponResponse is returned on successful creation.
type CreateCouponResponse struct {
	ID     int64  `json:"id"`
	Status Status `json:"status"`
	QRCode string `json:"qrCode"`
}

// CouponPatch is the DTO for PUT /api/coupons/:id. All fields are optional;
// only the supplied ones are written. A patch with no fields set is rejected.
type CouponPatch struct {
	Name      *string `json:"name" validate:"omitempty,notblank,max=255"`
	Discount  *int    `json:"discount" validate:"omitempty,gte=0,lte=100"`
	ValidFrom *string `json:"validFrom" validate:"omitempty,datetime=2006-01-02"`
	ValidTo   *string `json:"validTo" validate:"omitempty,datetime=2006-01-02"`
	Status    *Status `json:"status"`
}

// Empty reports whether the patch carries no fields at all.
func (p CouponPatch) Empty() bool {
	return p.Name == nil && p.Discount == nil && p.ValidFrom == nil &&
		p.ValidTo == nil && p.Status == nil
}

// CouponUpdate carries the resolved fields of a partial update with dates
// parsed. Nil fields are left untouched.
type CouponUpdate struct {
	Name      *string
	Discount  *int
	ValidFrom *time.Time
	ValidTo   *time.Time
	Status    *Status
}

// StatusUpdateRequest is the DTO for PUT /api/coupons/:id/status.
type StatusUpdateRequest struct {
	Status Status `json:"status" validate:"required"`
}

// DateLayout is the wire format for coupon validity dates.
const DateLayout = "2006-01-02"
