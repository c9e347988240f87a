// file: internals/features/catalog/courses/controller/course_controller.go
package controller

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelatihanku_backend/internals/aggregate"
	"pelatihanku_backend/internals/configs"
	dto "pelatihanku_backend/internals/features/catalog/courses/dto"
	model "pelatihanku_backend/internals/features/catalog/courses/model"
	"pelatihanku_backend/internals/docstore"
	helper "pelatihanku_backend/internals/helpers"
	osshelper "pelatihanku_backend/internals/helpers/oss"
)

type CourseController struct {
	Store     docstore.Store
	Validator *validator.Validate
}

func NewCourseController(store docstore.Store) *CourseController {
	return &CourseController{
		Store:     store,
		Validator: validator.New(),
	}
}

func (ctrl *CourseController) load(c *fiber.Ctx, id string) (model.CourseDoc, error) {
	raw, err := ctrl.Store.Get(c.UserContext(), aggregate.ColCourses, id)
	if err != nil {
		return model.CourseDoc{}, err
	}
	var course model.CourseDoc
	if err := docstore.DataTo(raw, &course); err != nil {
		return model.CourseDoc{}, err
	}
	return course, nil
}

func (ctrl *CourseController) save(c *fiber.Ctx, course model.CourseDoc) error {
	doc, err := docstore.DataFrom(course)
	if err != nil {
		return err
	}
	return ctrl.Store.Set(c.UserContext(), aggregate.ColCourses, course.CourseID, doc)
}

/* =========================
   Handlers
========================= */

// POST / (STAFF ONLY)
func (ctrl *CourseController) Create(c *fiber.Ctx) error {
	var body dto.CreateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actor, _ := helper.GetUserIDFromToken(c)
	currency := body.Currency
	if currency == "" {
		currency = configs.DefaultPortalSettings().Currency
	}

	now := time.Now().UTC()
	course := model.CourseDoc{
		CourseID:    uuid.NewString(),
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Currency:    currency,
		Active:      true,
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := ctrl.save(c, course); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Course berhasil dibuat", course)
}

// GET /list?active=&limit=
func (ctrl *CourseController) List(c *fiber.Ctx) error {
	eq := map[string]any{}
	if active := c.Query("active"); active != "" {
		eq["active"] = active == "true"
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	snaps, err := ctrl.Store.Query(c.UserContext(), aggregate.ColCourses, eq, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	out := make([]model.CourseDoc, 0, len(snaps))
	for _, s := range snaps {
		var course model.CourseDoc
		if derr := docstore.DataTo(s.Data, &course); derr == nil {
			out = append(out, course)
		}
	}
	return helper.JsonList(c, "ok", out)
}

// GET /:id
func (ctrl *CourseController) GetByID(c *fiber.Ctx) error {
	course, err := ctrl.load(c, c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", course)
}

// PATCH /:id (STAFF ONLY)
func (ctrl *CourseController) Patch(c *fiber.Ctx) error {
	var body dto.UpdateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course, err := ctrl.load(c, c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if body.Name != nil {
		course.Name = *body.Name
	}
	if body.Description != nil {
		course.Description = *body.Description
	}
	if body.Price != nil {
		course.Price = *body.Price
	}
	if body.Currency != nil {
		course.Currency = *body.Currency
	}
	if body.Active != nil {
		course.Active = *body.Active
	}
	course.UpdatedAt = time.Now().UTC()

	if err := ctrl.save(c, course); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Course berhasil diupdate", course)
}

// DELETE /:id (STAFF ONLY)
func (ctrl *CourseController) Delete(c *fiber.Ctx) error {
	course, err := ctrl.load(c, c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctrl.Store.Delete(c.UserContext(), aggregate.ColCourses, course.CourseID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// thumbnail di OSS dibersihkan best-effort
	if course.Thumbnail != nil {
		if cli, oerr := osshelper.Default(); oerr == nil {
			if derr := cli.Destroy(course.Thumbnail.PublicID); derr != nil {
				log.Printf("[COURSE] gagal hapus thumbnail %s: %v", course.Thumbnail.PublicID, derr)
			}
		}
	}
	return helper.JsonDeleted(c, "Course berhasil dihapus", fiber.Map{"course_id": course.CourseID})
}

// POST /:id/thumbnail (STAFF ONLY, multipart field "file")
func (ctrl *CourseController) UploadThumbnail(c *fiber.Ctx) error {
	course, err := ctrl.load(c, c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File thumbnail wajib diisi")
	}
	data, err := helper.ConvertToWebP(fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	cli, err := osshelper.Default()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	uploaded, err := cli.Upload(data, "courses/thumbnails", ".webp")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// hapus thumbnail lama best-effort
	if course.Thumbnail != nil {
		if derr := cli.Destroy(course.Thumbnail.PublicID); derr != nil {
			log.Printf("[COURSE] gagal hapus thumbnail lama %s: %v", course.Thumbnail.PublicID, derr)
		}
	}

	course.Thumbnail = &model.CourseThumbnail{PublicID: uploaded.PublicID, URL: uploaded.URL}
	course.UpdatedAt = time.Now().UTC()
	if err := ctrl.save(c, course); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Thumbnail berhasil diupload", course.Thumbnail)
}
