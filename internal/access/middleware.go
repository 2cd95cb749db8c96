package access

import (
	"stockdesk-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RequirePermission gates a route on the permission-resolution path. Admins
// pass via their wildcard capability, managers via their built-in set, and
// everyone else needs an explicit grant.
func RequirePermission(route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		role, err := auth.CurrentUserRole(c)
		if err != nil {
			return err
		}

		ok, err := HasPermission(userID, role, route)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Permission check failed")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "You do not have permission for this operation")
		}
		return c.Next()
	}
}
