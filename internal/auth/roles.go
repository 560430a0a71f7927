package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/domain"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role()]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireStaff limits a route to manager and finance accounts.
func RequireStaff() fiber.Handler {
	return RequireRole(domain.RoleManager, domain.RoleFinance)
}
