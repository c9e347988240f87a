// file: internals/features/school/progress/controller/progress_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	dto "pelatihanku_backend/internals/features/school/progress/dto"
	helper "pelatihanku_backend/internals/helpers"
)

type ProgressController struct {
	Coord     *aggregate.Coordinator
	Validator *validator.Validate
}

func NewProgressController(coord *aggregate.Coordinator) *ProgressController {
	return &ProgressController{Coord: coord, Validator: validator.New()}
}

/* =========================
   Handlers
========================= */

// GET /progress (USER) — semua course milik user login
func (ctrl *ProgressController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := ctrl.Coord.GetUser(c.UserContext(), userID)
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonOK(c, "ok", user.Courses)
}

// GET /progress/:courseId (USER)
func (ctrl *ProgressController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := ctrl.Coord.GetUser(c.UserContext(), userID)
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	progress, ok := user.Courses[c.Params("courseId")]
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Anda tidak terdaftar di course ini")
	}
	return helper.JsonOK(c, "ok", progress)
}

// POST /enrollments (STAFF ONLY) — enrollment manual tanpa pembayaran
func (ctrl *ProgressController) Enroll(c *fiber.Ctx) error {
	var body dto.EnrollRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	ctx := c.UserContext()
	user, err := ctrl.Coord.GetUser(ctx, body.UserID)
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	if err := ctrl.Coord.EnrollTrainee(ctx, aggregate.EnrollInput{
		UserID:     body.UserID,
		Name:       user.Name,
		Email:      user.Email,
		CourseID:   body.CourseID,
		BatchID:    body.BatchID,
		EnrolledAt: time.Now(),
	}); err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonCreated(c, "Enrollment berhasil dibuat", fiber.Map{
		"user_id":   body.UserID,
		"course_id": body.CourseID,
		"batch_id":  body.BatchID,
	})
}

// POST /progress/reconcile (STAFF ONLY) — recompute aggregate dari record mentah
func (ctrl *ProgressController) Reconcile(c *fiber.Ctx) error {
	var body dto.ReconcileRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	progress, err := ctrl.Coord.Reconcile(c.UserContext(), body.UserID, body.CourseID)
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonOK(c, "Aggregate berhasil direkonsiliasi", progress)
}
