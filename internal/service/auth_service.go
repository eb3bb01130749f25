package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ArmishRehan/Coupon/internal/model"
)

// bcryptCost matches the work factor used for all stored password hashes.
const bcryptCost = 10

// UserRepositoryInterface defines the interface for user data access.
type UserRepositoryInterface interface {
	Insert(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

// AuthService provides signup and login.
type AuthService struct {
	users  UserRepositoryInterface
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepositoryInterface, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup creates a new account. The role is taken from the request and
// defaults to store_user. Returns ErrUserExists for a duplicate email.
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleStoreUser
	}
	if !role.Valid() {
		return ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	return s.users.Insert(ctx, user)
}

// Login verifies credentials and issues a bearer token carrying the user's
// identity and role. Returns ErrInvalidCredentials on any mismatch.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &model.LoginResponse{
		Token: token,
		User: model.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}
