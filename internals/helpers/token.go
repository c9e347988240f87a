// file: internals/helpers/token.go
package helper

import (
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Klaim user dari Locals
   (diisi oleh middleware auth)
=================================*/

// GetUserIDFromToken mengambil user_id yang sudah diverifikasi middleware.
func GetUserIDFromToken(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("user_id").(string)
	if !ok || id == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user ID tidak ditemukan di token")
	}
	return id, nil
}

// GetUserRoleFromToken: role dari klaim token ("" bila tidak ada).
func GetUserRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}

// GetUserEmailFromToken: email dari klaim token ("" bila tidak ada).
func GetUserEmailFromToken(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	return email
}
