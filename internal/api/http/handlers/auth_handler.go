package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Authenticator is the part of the auth service the handler needs.
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (*service.Profile, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Me(ctx context.Context, userID string) (*service.Profile, error)
}

// AuthHandler manages registration, login and the session cookie.
type AuthHandler struct {
	auth         Authenticator
	cookieName   string
	secureCookie bool
}

// NewAuthHandler constructs handler. secureCookie marks the session cookie Secure.
func NewAuthHandler(authService Authenticator, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: authService, cookieName: cookieName, secureCookie: secureCookie}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	profile, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// Login POST /auth/login. The token is returned in the body and set as an HTTP-only cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	c.Cookie(h.cookie(session.Token, session.ExpiresAt))
	return c.JSON(dto.AuthResponse{
		AccessToken: session.Token,
		ExpiresAt:   session.ExpiresAt,
		User:        session.User,
		Role:        session.Role,
	})
}

// Logout POST /auth/logout expires the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	cookie := h.cookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.Cookie(cookie)
	return c.JSON(fiber.Map{"message": "logged out"})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	profile, err := h.auth.Me(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AuthHandler) cookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
