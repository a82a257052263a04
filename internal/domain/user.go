package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// User is an account that can sign in and act on tickets.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Password     string    `json:"-"`
	RoleID       *string   `json:"roleId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate checks required fields.
func (u *User) Validate() error {
	details := map[string]any{}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		details["email"] = "must be a valid email address"
	}
	if len(strings.TrimSpace(u.Name)) < 3 {
		details["name"] = "must be at least 3 characters"
	}
	if u.PasswordHash == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid user", details)
	}
	return nil
}

// UserPatch carries the fields of a partial user update. Password is plaintext and is
// replaced by PasswordHash in the service before Apply.
type UserPatch struct {
	Email        *string
	Name         *string
	Password     *string
	PasswordHash *string
	RoleID       *string
}

// Apply merges the provided fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.RoleID != nil {
		u.RoleID = p.RoleID
	}
}

const passwordSpecials = "@$!%*#?&"

// ValidatePassword enforces the plaintext password policy: at least 8 characters drawn
// from letters, digits and @$!%*#?&, with one of each class.
func ValidatePassword(password string) error {
	var letter, digit, special bool
	for _, r := range password {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return apperrors.NewValidationError("invalid password", map[string]any{
				"password": "may only contain letters, digits and " + passwordSpecials,
			})
		}
	}
	if len(password) < 8 || !letter || !digit || !special {
		return apperrors.NewValidationError("invalid password", map[string]any{
			"password": "must be at least 8 characters with a letter, a digit and one of " + passwordSpecials,
		})
	}
	return nil
}
