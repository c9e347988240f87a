// file: internals/features/finance/payments/service/signature.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CompletionSignature: HMAC-SHA256 atas "orderId|paymentId" dengan server key.
func CompletionSignature(orderID, paymentID, serverKey string) string {
	mac := hmac.New(sha256.New, []byte(serverKey))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCompletionSignature membandingkan constant-time.
func VerifyCompletionSignature(orderID, paymentID, serverKey, signature string) bool {
	want := CompletionSignature(orderID, paymentID, serverKey)
	return hmac.Equal([]byte(want), []byte(signature))
}
