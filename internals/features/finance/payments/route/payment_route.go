// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	"pelatihanku_backend/internals/configs"
	paymentcontroller "pelatihanku_backend/internals/features/finance/payments/controller"
	"pelatihanku_backend/internals/middlewares"
)

// Base: /api/u/payments (user login)
func PaymentUserRoutes(r fiber.Router, coord *aggregate.Coordinator, settings *configs.SettingsCache) {
	ctrl := paymentcontroller.NewPaymentController(coord, settings)

	g := r.Group("/payments")
	g.Post("/orders", ctrl.CreateOrder)
	g.Get("/my", ctrl.ListMy)
	g.Get("/:orderId/receipt", ctrl.Receipt)
}

// Base: /api/payments — TANPA auth (callback gateway), dilindungi signature + limiter
func PaymentCallbackRoutes(r fiber.Router, coord *aggregate.Coordinator, settings *configs.SettingsCache) {
	ctrl := paymentcontroller.NewPaymentController(coord, settings)

	g := r.Group("/payments")
	g.Post("/complete", middlewares.PaymentCallbackRateLimiter(), ctrl.Complete)
}
