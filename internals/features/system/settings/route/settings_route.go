// file: internals/features/system/settings/route/settings_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/configs"
	settingscontroller "pelatihanku_backend/internals/features/system/settings/controller"
	"pelatihanku_backend/internals/docstore"
	authmw "pelatihanku_backend/internals/middlewares/auth"
)

// Base: /api/a/settings
func SettingsAdminRoutes(r fiber.Router, store docstore.Store, cache *configs.SettingsCache) {
	ctrl := settingscontroller.NewSettingsController(store, cache)

	g := r.Group("/settings")
	g.Get("/", authmw.OnlyStaff("settings"), ctrl.Get)
	g.Put("/", authmw.OnlyAdmin("settings"), ctrl.Update)
}
