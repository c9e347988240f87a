// file: internals/features/finance/payments/service/midtrans.go
package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"pelatihanku_backend/internals/features/finance/payments/model"
)

var SnapClient snap.Client

// Panggil saat bootstrap app (sandbox)
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// Buat Snap token + redirect_url untuk satu order
func GenerateSnapToken(o model.OrderDoc, courseName string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  o.OrderID,
			GrossAmt: o.Amount / 100, // midtrans pakai major units
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: o.Name,
			Email: o.Email,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    o.CourseID,
			Name:  courseName,
			Price: o.Amount / 100,
			Qty:   1,
		}},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
