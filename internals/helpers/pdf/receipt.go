// file: internals/helpers/pdf/receipt.go
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

/* ===============================
   Receipt renderer (PDF stream)
=================================*/

type ReceiptData struct {
	InstituteName string
	OrderID       string
	PaymentID     string
	TraineeName   string
	TraineeEmail  string
	CourseName    string
	BatchID       string
	Amount        int64 // minor units
	Currency      string
	PaidAt        time.Time
	Footer        string
}

// RenderReceipt menghasilkan dokumen biner siap download.
func RenderReceipt(data ReceiptData) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Payment Receipt "+data.OrderID, false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 12, data.InstituteName)
	doc.Ln(14)

	doc.SetFont("Helvetica", "B", 13)
	doc.Cell(0, 8, "Bukti Pembayaran")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Order ID", data.OrderID},
		{"Payment ID", data.PaymentID},
		{"Nama", data.TraineeName},
		{"Email", data.TraineeEmail},
		{"Course", data.CourseName},
		{"Batch", data.BatchID},
		{"Jumlah", formatAmount(data.Amount, data.Currency)},
		{"Dibayar", data.PaidAt.Format("02 Jan 2006 15:04")},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	if data.Footer != "" {
		doc.Ln(8)
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, 6, data.Footer, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(minor int64, currency string) string {
	// minor units -> 2 desimal
	return fmt.Sprintf("%s %d.%02d", currency, minor/100, minor%100)
}
