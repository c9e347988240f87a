// file: internals/features/school/assignments/route/assignment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	assignmentcontroller "pelatihanku_backend/internals/features/school/assignments/controller"
	authmw "pelatihanku_backend/internals/middlewares/auth"
)

// Base: /api/a/assignments (staff)
func AssignmentAdminRoutes(r fiber.Router, coord *aggregate.Coordinator) {
	ctrl := assignmentcontroller.NewAssignmentController(coord)

	g := r.Group("/assignments", authmw.OnlyStaff("assignments"))
	g.Post("/", ctrl.Create)
	g.Get("/list", ctrl.List)
	g.Get("/:docId", ctrl.GetByID)
	g.Post("/:docId/:name/submissions", ctrl.Submit)
	g.Delete("/:docId/:name", ctrl.Delete)
}

// Base: /api/u/assignments (trainee)
func AssignmentUserRoutes(r fiber.Router, coord *aggregate.Coordinator) {
	ctrl := assignmentcontroller.NewAssignmentController(coord)

	g := r.Group("/assignments")
	g.Post("/:docId/:name/submit", ctrl.SubmitSelf)
}
