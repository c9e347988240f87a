// file: internals/features/school/progress/route/progress_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	progresscontroller "pelatihanku_backend/internals/features/school/progress/controller"
	authmw "pelatihanku_backend/internals/middlewares/auth"
)

// Base: /api/u (user login)
func ProgressUserRoutes(r fiber.Router, coord *aggregate.Coordinator) {
	ctrl := progresscontroller.NewProgressController(coord)

	r.Get("/progress", ctrl.ListMine)
	r.Get("/progress/:courseId", ctrl.GetMine)
	r.Post("/enrollments", authmw.OnlyStaff("enrollments"), ctrl.Enroll)
}

// Base: /api/a (staff)
func ProgressAdminRoutes(r fiber.Router, coord *aggregate.Coordinator) {
	ctrl := progresscontroller.NewProgressController(coord)

	r.Post("/progress/reconcile", authmw.OnlyStaff("progress"), ctrl.Reconcile)
}
