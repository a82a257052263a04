package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Authorize reports whether callerRole satisfies the required role set.
// An empty or nil set admits every caller; otherwise the role must be a member.
func Authorize(callerRole string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if strings.EqualFold(role, callerRole) {
			return true
		}
	}
	return false
}

// RequireRoles guards a route. With no roles declared it is a no-op. With roles
// declared a request without a principal gets 401 and a non-member role gets 403.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(roles) == 0 {
			return c.Next()
		}
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Authorize(principal.Role, roles) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAnyRole admits any authenticated caller regardless of role.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
