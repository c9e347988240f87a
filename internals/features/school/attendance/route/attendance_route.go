// file: internals/features/school/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	attendancecontroller "pelatihanku_backend/internals/features/school/attendance/controller"
	authmw "pelatihanku_backend/internals/middlewares/auth"
)

// Base: /api/a/attendance (staff)
func AttendanceAdminRoutes(r fiber.Router, coord *aggregate.Coordinator) {
	ctrl := attendancecontroller.NewAttendanceController(coord)

	g := r.Group("/attendance", authmw.OnlyStaff("attendance"))
	g.Post("/", ctrl.Record)
	g.Patch("/:recordId", ctrl.Update)
	g.Get("/list", ctrl.List)
	g.Get("/:recordId", ctrl.GetByID)
	g.Delete("/:recordId", ctrl.Delete)
}
