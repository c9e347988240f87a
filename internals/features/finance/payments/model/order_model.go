// file: internals/features/finance/payments/model/order_model.go
package model

import "time"

const (
	OrderPending  = "pending"
	OrderPaid     = "paid"
	OrderExpired  = "expired"
	OrderCanceled = "canceled"
)

// OrderDoc: satu order pembayaran course (collection "orders").
// Enrollment baru dibuat setelah order berstatus paid.
type OrderDoc struct {
	OrderID  string `json:"order_id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	CourseID string `json:"course_id"`
	BatchID  string `json:"batch_id"`
	// amount dalam minor units (sen)
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	PaymentID   string     `json:"payment_id,omitempty"`
	SnapToken   string     `json:"snap_token,omitempty"`
	RedirectURL string     `json:"redirect_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}
