package model

import "time"

// Role identifies what a user is allowed to do. The values are stored verbatim
// in the database and embedded in tokens, so they must never change shape.
type Role string

const (
	RoleStoreUser Role = "store_user"
	RoleCreator   Role = "creator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStoreUser, RoleCreator, RoleAdmin:
		return true
	}
	return false
}

// User is an account in the system. PasswordHash is never exposed in API responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"-"`
}

// SignupRequest is the DTO for POST /api/auth/signup.
// Role defaults to store_user when omitted.
type SignupRequest struct {
	Username string `json:"username" validate:"required,notblank,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=store_user creator admin"`
}

// LoginRequest is the DTO for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token and the public user fields.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo is the public projection of a User.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
