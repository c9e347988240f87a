// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	authcontroller "pelatihanku_backend/internals/features/users/auth/controller"
	"pelatihanku_backend/internals/docstore"
	"pelatihanku_backend/internals/middlewares"
	authmw "pelatihanku_backend/internals/middlewares/auth"
)

// Base: /api/auth
func AuthRoutes(r fiber.Router, store docstore.Store) {
	ctrl := authcontroller.NewAuthController(store)

	g := r.Group("/auth")
	g.Post("/register", middlewares.LoginRateLimiter(), ctrl.Register)
	g.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	g.Post("/google", middlewares.LoginRateLimiter(), ctrl.GoogleLogin)
	g.Get("/me", authmw.AuthMiddleware(), ctrl.Me)
}
