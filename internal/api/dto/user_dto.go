package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks presence; the password policy is enforced by the auth service.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	errs := fieldErrors{}
	if r.Name == "" {
		errs.add("name", "required")
	}
	if r.Email == "" {
		errs.add("email", "required")
	}
	if r.Password == "" {
		errs.add("password", "required")
	}
	return errs.err("invalid registration")
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	errs := fieldErrors{}
	if r.Email == "" {
		errs.add("email", "required")
	}
	if r.Password == "" {
		errs.add("password", "required")
	}
	return errs.err("invalid login")
}

// AuthResponse is returned by login. The token is also set as a cookie.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *domain.User `json:"user"`
	Role        string       `json:"role"`
}

// CreateUserRequest is the admin payload for accounts.
type CreateUserRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	RoleID   *string `json:"roleId"`
}

func (r CreateUserRequest) Validate() (*domain.User, error) {
	if r.Password == "" {
		return nil, fieldErrors{"password": "required"}.err("invalid user")
	}
	return &domain.User{
		Email:    strings.TrimSpace(r.Email),
		Name:     strings.TrimSpace(r.Name),
		Password: r.Password,
		RoleID:   optional(r.RoleID),
	}, nil
}

// UpdateUserRequest payload.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	RoleID   *string `json:"roleId"`
}

func (r UpdateUserRequest) Patch() (domain.UserPatch, error) {
	return domain.UserPatch{
		Email:    trimmed(r.Email),
		Name:     trimmed(r.Name),
		Password: r.Password,
		RoleID:   trimmed(r.RoleID),
	}, nil
}
