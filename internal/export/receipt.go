package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// ReceiptData carries everything printed on a distribution hand-over
// receipt. It is built from the stored record, so the paper copy can be
// regenerated at any time.
type ReceiptData struct {
	ID           string
	DeviceSerial string
	DeviceType   string
	BorrowUnit   string
	BorrowerName string
	BorrowerNIP  string
	OfficialName string
	OfficialNIP  string
	Date         time.Time
}

// Receipt renders the fixed-layout loan receipt: a title block, the device
// and borrower details, and the two signature boxes.
func Receipt(data ReceiptData) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	pageW, _ := doc.GetPageSize()
	printable := pageW - 40

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(printable, 8, "TANDA TERIMA", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(printable, 6, "DISTRIBUSI PERALATAN SANDI", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(printable, 6, fmt.Sprintf("Nomor: %s", data.ID), "", 1, "C", false, 0, "")
	doc.Ln(6)

	line := func(label, value string) {
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		doc.CellFormat(5, 7, ":", "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(printable-55, 7, value, "", 1, "L", false, 0, "")
	}

	line("Jenis Alat", data.DeviceType)
	line("Nomor Seri", data.DeviceSerial)
	line("Unit Peminjam", data.BorrowUnit)
	line("Nama Peminjam", data.BorrowerName)
	if data.BorrowerNIP != "" {
		line("NIP Peminjam", data.BorrowerNIP)
	}
	line("Tanggal", data.Date.Format("02-01-2006"))
	doc.Ln(10)

	doc.SetFont("Helvetica", "", 10)
	half := printable / 2
	doc.CellFormat(half, 6, "Yang Menyerahkan,", "", 0, "C", false, 0, "")
	doc.CellFormat(half, 6, "Yang Menerima,", "", 1, "C", false, 0, "")
	doc.Ln(24)

	doc.SetFont("Helvetica", "BU", 10)
	doc.CellFormat(half, 6, data.OfficialName, "", 0, "C", false, 0, "")
	doc.CellFormat(half, 6, data.BorrowerName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(half, 6, nipLine(data.OfficialNIP), "", 0, "C", false, 0, "")
	doc.CellFormat(half, 6, nipLine(data.BorrowerNIP), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func nipLine(nip string) string {
	if nip == "" {
		return "NIP. -"
	}
	return "NIP. " + nip
}
