// file: internals/features/finance/payments/dto/payment_dto.go
package dto

type CreateOrderRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
	BatchID  string `json:"batch_id" validate:"required"`
}

type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

// CompletePaymentRequest datang dari redirect gateway, bukan dari user login.
type CompletePaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
