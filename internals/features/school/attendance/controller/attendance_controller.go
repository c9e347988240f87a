// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	dto "pelatihanku_backend/internals/features/school/attendance/dto"
	"pelatihanku_backend/internals/docstore"
	helper "pelatihanku_backend/internals/helpers"
)

type AttendanceController struct {
	Coord     *aggregate.Coordinator
	Store     docstore.Store
	Validator *validator.Validate
}

func NewAttendanceController(coord *aggregate.Coordinator) *AttendanceController {
	return &AttendanceController{
		Coord:     coord,
		Store:     coord.Store,
		Validator: validator.New(),
	}
}

/* =========================
   Handlers (STAFF ONLY)
========================= */

// POST / — create atau update (tergantung record_id)
func (ctrl *AttendanceController) Record(c *fiber.Ctx) error {
	return ctrl.record(c, "")
}

// PATCH /:recordId — update eksplisit, record id dari path
func (ctrl *AttendanceController) Update(c *fiber.Ctx) error {
	return ctrl.record(c, c.Params("recordId"))
}

func (ctrl *AttendanceController) record(c *fiber.Ctx, recordID string) error {
	var body dto.RecordAttendanceRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if recordID != "" {
		body.RecordID = recordID
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date tidak valid")
	}

	students := make([]aggregate.StudentDetail, 0, len(body.Students))
	for _, s := range body.Students {
		students = append(students, aggregate.StudentDetail{
			StudentID: s.StudentID,
			Status:    aggregate.AttendanceStatus(s.Status),
		})
	}

	actor, _ := helper.GetUserIDFromToken(c)
	recordID, err = ctrl.Coord.RecordAttendance(c.UserContext(), aggregate.RecordAttendanceInput{
		CourseID: body.CourseID,
		BatchID:  body.BatchID,
		RecordID: body.RecordID,
		Date:     date,
		Students: students,
		Actor:    actor,
	})
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}

	resp := dto.RecordAttendanceResponse{RecordID: recordID}
	if body.RecordID == "" {
		return helper.JsonCreated(c, "Absensi berhasil dicatat", resp)
	}
	return helper.JsonUpdated(c, "Absensi berhasil diperbarui", resp)
}

// GET /list?batch_id=&course_id=&limit=
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	eq := map[string]any{}
	if v := c.Query("batch_id"); v != "" {
		eq["batch_id"] = v
	}
	if v := c.Query("course_id"); v != "" {
		eq["course_id"] = v
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	snaps, err := ctrl.Store.Query(c.UserContext(), aggregate.ColAttendance, eq, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	type item struct {
		RecordID string `json:"record_id"`
		aggregate.AttendanceDoc
	}
	out := make([]item, 0, len(snaps))
	for _, s := range snaps {
		var d aggregate.AttendanceDoc
		if derr := docstore.DataTo(s.Data, &d); derr == nil {
			out = append(out, item{RecordID: s.ID, AttendanceDoc: d})
		}
	}
	return helper.JsonList(c, "ok", out)
}

// GET /:recordId
func (ctrl *AttendanceController) GetByID(c *fiber.Ctx) error {
	raw, err := ctrl.Store.Get(c.UserContext(), aggregate.ColAttendance, c.Params("recordId"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Record absensi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var d aggregate.AttendanceDoc
	if err := docstore.DataTo(raw, &d); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", d)
}

// DELETE /:recordId — reversal penuh counter roster & aggregate trainee
func (ctrl *AttendanceController) Delete(c *fiber.Ctx) error {
	if err := ctrl.Coord.DeleteAttendance(c.UserContext(), c.Params("recordId")); err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonDeleted(c, "Absensi berhasil dihapus", fiber.Map{"record_id": c.Params("recordId")})
}
