// file: internals/features/catalog/batches/controller/batch_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelatihanku_backend/internals/aggregate"
	dto "pelatihanku_backend/internals/features/catalog/batches/dto"
	"pelatihanku_backend/internals/docstore"
	helper "pelatihanku_backend/internals/helpers"
)

type BatchController struct {
	Store     docstore.Store
	Validator *validator.Validate
}

func NewBatchController(store docstore.Store) *BatchController {
	return &BatchController{
		Store:     store,
		Validator: validator.New(),
	}
}

func toEntry(req dto.BatchEntryRequest) aggregate.BatchEntry {
	return aggregate.BatchEntry{
		Key:       uuid.NewString(),
		Suffix:    strings.ToUpper(strings.TrimSpace(req.Suffix)),
		Name:      req.Name,
		StartDate: req.StartDate,
		Schedule:  req.Schedule,
	}
}

/* =========================
   Handlers
========================= */

// POST / (STAFF ONLY)
func (ctrl *BatchController) Create(c *fiber.Ctx) error {
	var body dto.CreateBatchRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	baseID := strings.TrimSpace(body.BaseID)
	if strings.Count(baseID, "-") != 2 {
		return helper.JsonError(c, fiber.StatusBadRequest, "base_id harus berformat prefix-code-year")
	}
	if _, err := ctrl.Store.Get(c.UserContext(), aggregate.ColBatches, baseID); err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Batch dengan base_id tersebut sudah ada")
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	batch := aggregate.BatchDoc{BaseID: baseID, CourseID: body.CourseID}
	seen := map[string]struct{}{}
	for _, e := range body.Entries {
		entry := toEntry(e)
		if _, dup := seen[entry.Suffix]; dup {
			return helper.JsonError(c, fiber.StatusBadRequest, "Suffix duplikat: "+entry.Suffix)
		}
		seen[entry.Suffix] = struct{}{}
		batch.Entries = append(batch.Entries, entry)
	}

	doc, err := docstore.DataFrom(batch)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.Store.Set(c.UserContext(), aggregate.ColBatches, baseID, doc); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Batch berhasil dibuat", batch)
}

// POST /:baseId/entries (STAFF ONLY)
func (ctrl *BatchController) AddEntry(c *fiber.Ctx) error {
	var body dto.AddBatchEntryRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	baseID := c.Params("baseId")
	raw, err := ctrl.Store.Get(c.UserContext(), aggregate.ColBatches, baseID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var batch aggregate.BatchDoc
	if err := docstore.DataTo(raw, &batch); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	entry := toEntry(body.Entry)
	for _, e := range batch.Entries {
		if e.Suffix == entry.Suffix {
			return helper.JsonError(c, fiber.StatusConflict, "Suffix "+entry.Suffix+" sudah terpakai")
		}
	}
	batch.Entries = append(batch.Entries, entry)

	doc, err := docstore.DataFrom(batch)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.Store.Set(c.UserContext(), aggregate.ColBatches, baseID, doc); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Entry batch berhasil ditambahkan", entry)
}

// GET /list?course_id=&limit=
func (ctrl *BatchController) List(c *fiber.Ctx) error {
	eq := map[string]any{}
	if cid := c.Query("course_id"); cid != "" {
		eq["course_id"] = cid
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	snaps, err := ctrl.Store.Query(c.UserContext(), aggregate.ColBatches, eq, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	out := make([]aggregate.BatchDoc, 0, len(snaps))
	for _, s := range snaps {
		var b aggregate.BatchDoc
		if derr := docstore.DataTo(s.Data, &b); derr == nil {
			out = append(out, b)
		}
	}
	return helper.JsonList(c, "ok", out)
}

// GET /:baseId
func (ctrl *BatchController) GetByID(c *fiber.Ctx) error {
	raw, err := ctrl.Store.Get(c.UserContext(), aggregate.ColBatches, c.Params("baseId"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var batch aggregate.BatchDoc
	if err := docstore.DataTo(raw, &batch); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", batch)
}

// GET /resolve/:batchId — translasi id komposit ke lokasi storage
func (ctrl *BatchController) Resolve(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	doc, entry, err := aggregate.ResolveBatch(c.UserContext(), ctrl.Store, batchID)
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ResolveBatchResponse{
		BatchID:  batchID,
		BaseID:   doc.BaseID,
		Suffix:   entry.Suffix,
		FieldKey: entry.Key,
		Name:     entry.Name,
	})
}
