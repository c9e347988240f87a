// file: internals/features/system/settings/controller/settings_controller.go
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pelatihanku_backend/internals/aggregate"
	"pelatihanku_backend/internals/configs"
	"pelatihanku_backend/internals/docstore"
	helper "pelatihanku_backend/internals/helpers"
)

const settingsDocID = "portal"
const settingsTTL = 5 * time.Minute

// FetchPortalSettings: sumber data untuk SettingsCache. Dokumen belum ada ->
// default, bukan error.
func FetchPortalSettings(store docstore.Store) func(ctx context.Context) (configs.PortalSettings, error) {
	return func(ctx context.Context) (configs.PortalSettings, error) {
		raw, err := store.Get(ctx, aggregate.ColSettings, settingsDocID)
		if errors.Is(err, docstore.ErrNotFound) {
			return configs.DefaultPortalSettings(), nil
		}
		if err != nil {
			return configs.PortalSettings{}, err
		}
		var s configs.PortalSettings
		if err := docstore.DataTo(raw, &s); err != nil {
			return configs.PortalSettings{}, err
		}
		return s, nil
	}
}

type SettingsController struct {
	Store     docstore.Store
	Cache     *configs.SettingsCache
	Validator *validator.Validate
}

func NewSettingsController(store docstore.Store, cache *configs.SettingsCache) *SettingsController {
	return &SettingsController{Store: store, Cache: cache, Validator: validator.New()}
}

// GET /settings (STAFF)
func (ctrl *SettingsController) Get(c *fiber.Ctx) error {
	s, err := ctrl.Cache.GetOrRefresh(c.UserContext(), settingsTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", s)
}

type updateSettingsRequest struct {
	InstituteName string `json:"institute_name" validate:"required,max=120"`
	Currency      string `json:"currency" validate:"required,len=3"`
	ReceiptFooter string `json:"receipt_footer" validate:"max=300"`
	Maintenance   bool   `json:"maintenance"`
}

// PUT /settings (ADMIN ONLY)
func (ctrl *SettingsController) Update(c *fiber.Ctx) error {
	var body updateSettingsRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	next := configs.PortalSettings{
		InstituteName: body.InstituteName,
		Currency:      body.Currency,
		ReceiptFooter: body.ReceiptFooter,
		Maintenance:   body.Maintenance,
	}
	doc, err := docstore.DataFrom(next)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.Store.Set(c.UserContext(), aggregate.ColSettings, settingsDocID, doc); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	ctrl.Cache.Invalidate()
	return helper.JsonUpdated(c, "Pengaturan portal berhasil disimpan", next)
}
