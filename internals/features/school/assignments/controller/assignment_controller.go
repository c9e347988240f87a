// file: internals/features/school/assignments/controller/assignment_controller.go
package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	dto "pelatihanku_backend/internals/features/school/assignments/dto"
	"pelatihanku_backend/internals/docstore"
	helper "pelatihanku_backend/internals/helpers"
)

type AssignmentController struct {
	Coord     *aggregate.Coordinator
	Store     docstore.Store
	Validator *validator.Validate
}

func NewAssignmentController(coord *aggregate.Coordinator) *AssignmentController {
	return &AssignmentController{
		Coord:     coord,
		Store:     coord.Store,
		Validator: validator.New(),
	}
}

/* =========================
   Handlers
========================= */

// POST / (STAFF ONLY) — upsert ke dokumen harian DD-MM-YY-<batchID>
func (ctrl *AssignmentController) Create(c *fiber.Ctx) error {
	var body dto.CreateAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Batch harus resolvable sebelum tulis apa pun.
	if _, _, err := aggregate.ResolveBatch(c.UserContext(), ctrl.Store, body.BatchID); err != nil {
		return helper.JsonAggregateError(c, err)
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date tidak valid")
	}
	docID := aggregate.DailyRecordID(date, body.BatchID)
	actor, _ := helper.GetUserIDFromToken(c)

	record := aggregate.AssignmentRecord{
		AssignmentName: body.AssignmentName,
		CourseID:       body.CourseID,
		BatchID:        body.BatchID,
		TotalMarks:     body.TotalMarks,
		Submissions:    []aggregate.Submission{},
		CreatedBy:      actor,
	}

	ctx := c.UserContext()
	raw, err := ctrl.Store.Get(ctx, aggregate.ColAssignments, docID)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		doc, derr := docstore.DataFrom(aggregate.AssignmentDoc{
			CourseID:    body.CourseID,
			BatchID:     body.BatchID,
			Date:        date.Format(aggregate.DateLayout),
			Assignments: map[string]aggregate.AssignmentRecord{body.AssignmentName: record},
		})
		if derr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, derr.Error())
		}
		if serr := ctrl.Store.Set(ctx, aggregate.ColAssignments, docID, doc); serr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, serr.Error())
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	default:
		var doc aggregate.AssignmentDoc
		if derr := docstore.DataTo(raw, &doc); derr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, derr.Error())
		}
		if _, exists := doc.Assignments[body.AssignmentName]; exists {
			return helper.JsonError(c, fiber.StatusConflict, "Assignment dengan nama tersebut sudah ada untuk tanggal ini")
		}
		recDoc, derr := docstore.DataFrom(record)
		if derr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, derr.Error())
		}
		fields := map[string]any{"assignments." + body.AssignmentName: map[string]any(recDoc)}
		if uerr := ctrl.Store.Update(ctx, aggregate.ColAssignments, docID, fields); uerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, uerr.Error())
		}
	}

	return helper.JsonCreated(c, "Assignment berhasil dibuat", dto.CreateAssignmentResponse{
		DocID:          docID,
		AssignmentName: body.AssignmentName,
	})
}

// GET /list?batch_id=&course_id=&limit=
func (ctrl *AssignmentController) List(c *fiber.Ctx) error {
	eq := map[string]any{}
	if v := c.Query("batch_id"); v != "" {
		eq["batch_id"] = v
	}
	if v := c.Query("course_id"); v != "" {
		eq["course_id"] = v
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	snaps, err := ctrl.Store.Query(c.UserContext(), aggregate.ColAssignments, eq, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	type item struct {
		DocID string `json:"doc_id"`
		aggregate.AssignmentDoc
	}
	out := make([]item, 0, len(snaps))
	for _, s := range snaps {
		var d aggregate.AssignmentDoc
		if derr := docstore.DataTo(s.Data, &d); derr == nil {
			out = append(out, item{DocID: s.ID, AssignmentDoc: d})
		}
	}
	return helper.JsonList(c, "ok", out)
}

// GET /:docId
func (ctrl *AssignmentController) GetByID(c *fiber.Ctx) error {
	raw, err := ctrl.Store.Get(c.UserContext(), aggregate.ColAssignments, c.Params("docId"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dokumen assignment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var d aggregate.AssignmentDoc
	if err := docstore.DataTo(raw, &d); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", d)
}

// POST /:docId/:name/submissions (STAFF ONLY) — nilai satu trainee
func (ctrl *AssignmentController) Submit(c *fiber.Ctx) error {
	var body dto.SubmitScoreRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	err := ctrl.Coord.SubmitAssignment(c.UserContext(),
		c.Params("docId"), c.Params("name"), body.TraineeID, body.Score, time.Now())
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonCreated(c, "Nilai berhasil dicatat", fiber.Map{
		"doc_id":          c.Params("docId"),
		"assignment_name": c.Params("name"),
		"trainee_id":      body.TraineeID,
	})
}

// POST /:docId/:name/submit (USER) — trainee submit atas nama sendiri
// (quiz self-graded: score ikut terkirim)
func (ctrl *AssignmentController) SubmitSelf(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.SubmitSelfRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	err = ctrl.Coord.SubmitAssignment(c.UserContext(),
		c.Params("docId"), c.Params("name"), userID, body.Score, time.Now())
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonCreated(c, "Submission berhasil dicatat", fiber.Map{
		"doc_id":          c.Params("docId"),
		"assignment_name": c.Params("name"),
	})
}

// DELETE /:docId/:name (STAFF ONLY) — reversal semua submission terkait
func (ctrl *AssignmentController) Delete(c *fiber.Ctx) error {
	if err := ctrl.Coord.DeleteAssignment(c.UserContext(), c.Params("docId"), c.Params("name")); err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonDeleted(c, "Assignment berhasil dihapus", fiber.Map{
		"doc_id":          c.Params("docId"),
		"assignment_name": c.Params("name"),
	})
}
