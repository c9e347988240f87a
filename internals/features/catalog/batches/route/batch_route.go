// file: internals/features/catalog/batches/route/batch_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	batchcontroller "pelatihanku_backend/internals/features/catalog/batches/controller"
	"pelatihanku_backend/internals/docstore"
	authmw "pelatihanku_backend/internals/middlewares/auth"
)

// Base: /api/a/batches
func BatchAdminRoutes(r fiber.Router, store docstore.Store) {
	ctrl := batchcontroller.NewBatchController(store)

	g := r.Group("/batches")
	g.Get("/list", ctrl.List)
	g.Get("/resolve/:batchId", ctrl.Resolve)
	g.Get("/:baseId", ctrl.GetByID)
	g.Post("/", authmw.OnlyStaff("batches"), ctrl.Create)
	g.Post("/:baseId/entries", authmw.OnlyStaff("batches"), ctrl.AddEntry)
}
