// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/constants"
)

// RequireRoles menolak request bila role user tidak ada di allowed.
func RequireRoles(feature string, allowed ...string) fiber.Handler {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if _, ok := allowedSet[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStaff(feature))
		}
		return c.Next()
	}
}

// OnlyStaff: admin atau trainer.
func OnlyStaff(feature string) fiber.Handler {
	return RequireRoles(feature, constants.StaffRoles...)
}

// OnlyAdmin: admin saja.
func OnlyAdmin(feature string) fiber.Handler {
	return RequireRoles(feature, constants.RoleAdmin)
}
