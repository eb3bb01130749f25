package service

import "errors"

var (
	// ErrUserExists is returned when signing up with an already-registered email
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when login fails; it deliberately does
	// not distinguish an unknown email from a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCouponNotFound is returned when a coupon cannot be found
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidDateRange is returned when a coupon's validity window is inverted
	ErrInvalidDateRange = errors.New("validFrom must not be after validTo")

	// ErrNoFieldsToUpdate is returned when a partial update carries no fields
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrInvalidStatus is returned when an admin submits a status outside the
	// allowed set for status-only updates
	ErrInvalidStatus = errors.New("invalid status for admin")

	// ErrInvalidTransition is returned when a requested status change is not a
	// legal edge of the coupon lifecycle
	ErrInvalidTransition = errors.New("illegal status transition")

	// ErrNotApproved is returned when a creator tries to activate a coupon they
	// do not own or that has not cleared admin approval
	ErrNotApproved = errors.New("coupon not found or not approved yet")

	// ErrNotActive is returned when redeeming a coupon that is not active
	ErrNotActive = errors.New("coupon is not active")

	// ErrCouponExpired is returned when redeeming a coupon past its validity window
	ErrCouponExpired = errors.New("coupon expired")

	// ErrAlreadyUsed is returned when a coupon has already been redeemed,
	// including when a concurrent redemption won the race
	ErrAlreadyUsed = errors.New("coupon already used")

	// ErrNotCouponOwner is returned when a store user redeems a coupon held by
	// someone else
	ErrNotCouponOwner = errors.New("coupon belongs to another user")
)
