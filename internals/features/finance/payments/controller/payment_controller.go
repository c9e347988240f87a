// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelatihanku_backend/internals/aggregate"
	"pelatihanku_backend/internals/configs"
	"pelatihanku_backend/internals/constants"
	coursemodel "pelatihanku_backend/internals/features/catalog/courses/model"
	dto "pelatihanku_backend/internals/features/finance/payments/dto"
	"pelatihanku_backend/internals/features/finance/payments/model"
	"pelatihanku_backend/internals/features/finance/payments/service"
	"pelatihanku_backend/internals/docstore"
	helper "pelatihanku_backend/internals/helpers"
	"pelatihanku_backend/internals/helpers/pdf"
)

const settingsTTL = 5 * time.Minute

type PaymentController struct {
	Coord     *aggregate.Coordinator
	Store     docstore.Store
	Settings  *configs.SettingsCache
	Validator *validator.Validate
}

func NewPaymentController(coord *aggregate.Coordinator, settings *configs.SettingsCache) *PaymentController {
	return &PaymentController{
		Coord:     coord,
		Store:     coord.Store,
		Settings:  settings,
		Validator: validator.New(),
	}
}

func (ctrl *PaymentController) getOrder(ctx context.Context, orderID string) (model.OrderDoc, error) {
	var order model.OrderDoc
	raw, err := ctrl.Store.Get(ctx, aggregate.ColOrders, orderID)
	if err != nil {
		return order, err
	}
	err = docstore.DataTo(raw, &order)
	return order, err
}

func (ctrl *PaymentController) saveOrder(ctx context.Context, order model.OrderDoc) error {
	doc, err := docstore.DataFrom(order)
	if err != nil {
		return err
	}
	return ctrl.Store.Set(ctx, aggregate.ColOrders, order.OrderID, doc)
}

/* =========================
   Handlers
========================= */

// POST /orders (USER) — buat order pending + Snap token
func (ctrl *PaymentController) CreateOrder(c *fiber.Ctx) error {
	var body dto.CreateOrderRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	ctx := c.UserContext()

	rawCourse, err := ctrl.Store.Get(ctx, aggregate.ColCourses, body.CourseID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var course coursemodel.CourseDoc
	if err := docstore.DataTo(rawCourse, &course); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !course.Active {
		return helper.JsonError(c, fiber.StatusConflict, "Course sedang tidak aktif")
	}
	if _, _, err := aggregate.ResolveBatch(ctx, ctrl.Store, body.BatchID); err != nil {
		return helper.JsonAggregateError(c, err)
	}

	user, err := ctrl.Coord.GetUser(ctx, userID)
	if err != nil {
		return helper.JsonAggregateError(c, err)
	}
	if _, enrolled := user.Courses[body.CourseID]; enrolled {
		return helper.JsonError(c, fiber.StatusConflict, "Anda sudah terdaftar di course ini")
	}

	order := model.OrderDoc{
		OrderID:   uuid.NewString(),
		UserID:    userID,
		Name:      user.Name,
		Email:     user.Email,
		CourseID:  body.CourseID,
		BatchID:   body.BatchID,
		Amount:    course.Price,
		Currency:  course.Currency,
		Status:    model.OrderPending,
		CreatedAt: time.Now(),
	}

	token, redirect, err := service.GenerateSnapToken(order, course.Name)
	if err != nil {
		log.Println("[PAYMENT] gagal membuat Snap token:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran")
	}
	order.SnapToken = token
	order.RedirectURL = redirect

	if err := ctrl.saveOrder(ctx, order); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Order berhasil dibuat", dto.CreateOrderResponse{
		OrderID:     order.OrderID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		SnapToken:   order.SnapToken,
		RedirectURL: order.RedirectURL,
	})
}

// POST /complete — TANPA auth middleware; identitas dibuktikan lewat signature.
func (ctrl *PaymentController) Complete(c *fiber.Ctx) error {
	var body dto.CompletePaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if !service.VerifyCompletionSignature(body.OrderID, body.PaymentID, configs.MidtransServerKey, body.Signature) {
		log.Println("🚨 [PAYMENT] signature tidak valid untuk order:", body.OrderID)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Signature tidak valid")
	}

	ctx := c.UserContext()
	order, err := ctrl.getOrder(ctx, body.OrderID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Order tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Idempoten: callback gateway bisa terkirim lebih dari sekali.
	if order.Status == model.OrderPaid {
		return helper.JsonOK(c, "Order sudah lunas", fiber.Map{"order_id": order.OrderID})
	}

	now := time.Now()
	order.Status = model.OrderPaid
	order.PaymentID = body.PaymentID
	order.PaidAt = &now
	if err := ctrl.saveOrder(ctx, order); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctrl.Coord.EnrollTrainee(ctx, aggregate.EnrollInput{
		UserID:     order.UserID,
		Name:       order.Name,
		Email:      order.Email,
		CourseID:   order.CourseID,
		BatchID:    order.BatchID,
		EnrolledAt: now,
	}); err != nil {
		// Order tetap paid; enrollment menyusul lewat reconcile manual.
		log.Println("[PAYMENT] enrollment gagal setelah pembayaran:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Pembayaran tercatat, enrollment gagal diproses")
	}

	return helper.JsonOK(c, "Pembayaran berhasil & enrollment dibuat", fiber.Map{
		"order_id": order.OrderID,
		"user_id":  order.UserID,
	})
}

// GET /my (USER)
func (ctrl *PaymentController) ListMy(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	snaps, err := ctrl.Store.Query(c.UserContext(), aggregate.ColOrders, map[string]any{"user_id": userID}, 0)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	out := make([]model.OrderDoc, 0, len(snaps))
	for _, s := range snaps {
		var o model.OrderDoc
		if derr := docstore.DataTo(s.Data, &o); derr == nil {
			o.SnapToken = "" // jangan bocorkan token lama
			out = append(out, o)
		}
	}
	return helper.JsonList(c, "ok", out)
}

// GET /:orderId/receipt (USER) — PDF bukti pembayaran
func (ctrl *PaymentController) Receipt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	ctx := c.UserContext()

	order, err := ctrl.getOrder(ctx, c.Params("orderId"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Order tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	role := helper.GetUserRoleFromToken(c)
	if order.UserID != userID && role != constants.RoleAdmin && role != constants.RoleTrainer {
		return helper.JsonError(c, fiber.StatusForbidden, "Bukan order Anda")
	}
	if order.Status != model.OrderPaid {
		return helper.JsonError(c, fiber.StatusConflict, "Order belum lunas")
	}

	settings, err := ctrl.Settings.GetOrRefresh(ctx, settingsTTL)
	if err != nil {
		settings = configs.DefaultPortalSettings()
	}

	courseName := order.CourseID
	if rawCourse, cerr := ctrl.Store.Get(ctx, aggregate.ColCourses, order.CourseID); cerr == nil {
		var course coursemodel.CourseDoc
		if derr := docstore.DataTo(rawCourse, &course); derr == nil {
			courseName = course.Name
		}
	}

	paidAt := time.Now()
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}
	buf, err := pdf.RenderReceipt(pdf.ReceiptData{
		InstituteName: settings.InstituteName,
		OrderID:       order.OrderID,
		PaymentID:     order.PaymentID,
		TraineeName:   order.Name,
		TraineeEmail:  order.Email,
		CourseName:    courseName,
		BatchID:       order.BatchID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		PaidAt:        paidAt,
		Footer:        settings.ReceiptFooter,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+order.OrderID+`.pdf"`)
	return c.Send(buf)
}
