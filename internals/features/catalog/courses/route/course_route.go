// file: internals/features/catalog/courses/route/course_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	coursecontroller "pelatihanku_backend/internals/features/catalog/courses/controller"
	"pelatihanku_backend/internals/docstore"
	authmw "pelatihanku_backend/internals/middlewares/auth"
)

// Base: /api/a/courses (staff) — list & detail juga dipakai FE publik
func CourseAdminRoutes(r fiber.Router, store docstore.Store) {
	ctrl := coursecontroller.NewCourseController(store)

	g := r.Group("/courses")
	g.Get("/list", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Post("/", authmw.OnlyStaff("courses"), ctrl.Create)
	g.Patch("/:id", authmw.OnlyStaff("courses"), ctrl.Patch)
	g.Delete("/:id", authmw.OnlyStaff("courses"), ctrl.Delete)
	g.Post("/:id/thumbnail", authmw.OnlyStaff("courses"), ctrl.UploadThumbnail)
}
