// Package docs renders the post-booking receipt PDF.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/utils"
)

type Receipt struct {
	ReceiptNo  string
	Package    string
	StartDate  string
	Days       int
	People     int
	Hotel      string
	Detail     domain.PriceDetail
	Cashback   int64
	PaidOnline bool
}

// NewReceipt builds a receipt from the booked payload. The receipt number
// is generated client-side; the booking reference stays with the backend.
func NewReceipt(p models.BookingPayload, detail domain.PriceDetail, cashback int64, paidOnline bool) Receipt {
	return Receipt{
		ReceiptNo:  "RCPT-" + strings.ToUpper(uuid.NewString()[:8]),
		Package:    p.PackageName,
		StartDate:  p.StartDate,
		Days:       p.PackageDays,
		People:     p.People,
		Hotel:      p.Hotel,
		Detail:     detail,
		Cashback:   cashback,
		PaidOnline: paidOnline,
	}
}

// PDF renders the receipt, returning the document bytes and a filename.
func (r Receipt) PDF() ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	payment := "Pay later"
	if r.PaidOnline {
		payment = "Paid online"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No   : %s", r.ReceiptNo),
		fmt.Sprintf("Issued       : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Package      : %s", safe(r.Package, "-")),
		fmt.Sprintf("Start Date   : %s", safe(dateOnly(r.StartDate), "-")),
		fmt.Sprintf("Duration     : %d days", r.Days),
		fmt.Sprintf("People       : %d", r.People),
		fmt.Sprintf("Hotel        : %s", safe(r.Hotel, "none")),
		fmt.Sprintf("Payment      : %s", payment),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Price breakdown:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Base (%d x %d days x %s/day): %s",
		r.Detail.People, r.Detail.Days,
		utils.FormatRupeeASCII(r.Detail.PricePerDay), utils.FormatRupeeASCII(r.Detail.BaseTotal)))
	pdf.Ln(6)
	if r.Detail.TierSurcharge > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Hotel %s surcharge: %s",
			r.Detail.Hotel, utils.FormatRupeeASCII(r.Detail.TierSurcharge)))
		pdf.Ln(6)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupeeASCII(r.Detail.Total))
	pdf.Ln(8)

	if r.Cashback > 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, "Cashback earned: "+utils.FormatRupeeASCII(r.Cashback))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Keep this receipt for your records. The bookings page lists the live status of your trip.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s_%s.pdf", safeFilenamePart(r.Package), r.ReceiptNo)
	return buf.Bytes(), filename, nil
}

// Write renders the receipt into dir. Best-effort: callers log and move on.
func (r Receipt) Write(dir string) (string, error) {
	data, filename, err := r.PDF()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func safeFilenamePart(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "booking"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(v)
}
