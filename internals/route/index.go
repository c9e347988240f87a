// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	"pelatihanku_backend/internals/configs"
	"pelatihanku_backend/internals/docstore"
	authmw "pelatihanku_backend/internals/middlewares/auth"

	batchRoute "pelatihanku_backend/internals/features/catalog/batches/route"
	courseRoute "pelatihanku_backend/internals/features/catalog/courses/route"
	paymentRoute "pelatihanku_backend/internals/features/finance/payments/route"
	assignmentRoute "pelatihanku_backend/internals/features/school/assignments/route"
	attendanceRoute "pelatihanku_backend/internals/features/school/attendance/route"
	progressRoute "pelatihanku_backend/internals/features/school/progress/route"
	settingsRoute "pelatihanku_backend/internals/features/system/settings/route"
	authRoute "pelatihanku_backend/internals/features/users/auth/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, store docstore.Store, coord *aggregate.Coordinator, settings *configs.SettingsCache) {
	startTime = time.Now()

	api := app.Group("/api")

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, store)

	// ===================== CALLBACK (tanpa JWT) =====================
	log.Println("[INFO] Setting up Payment callback...")
	paymentRoute.PaymentCallbackRoutes(api, coord, settings)

	// ===================== ADMIN /api/a =====================
	// Guard per-route (OnlyStaff/OnlyAdmin) hidup di masing-masing feature.
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/a", authmw.AuthMiddleware())
	courseRoute.CourseAdminRoutes(admin, store)
	batchRoute.BatchAdminRoutes(admin, store)
	attendanceRoute.AttendanceAdminRoutes(admin, coord)
	assignmentRoute.AssignmentAdminRoutes(admin, coord)
	progressRoute.ProgressAdminRoutes(admin, coord)
	settingsRoute.SettingsAdminRoutes(admin, store, settings)

	// ===================== USER /api/u =====================
	log.Println("[INFO] Setting up USER group...")
	user := api.Group("/u", authmw.AuthMiddleware())
	progressRoute.ProgressUserRoutes(user, coord)
	assignmentRoute.AssignmentUserRoutes(user, coord)
	paymentRoute.PaymentUserRoutes(user, coord, settings)

	BaseRoutes(app)
}
